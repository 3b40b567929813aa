// Package logging builds the process logger.
//
// Loggers are plain *slog.Logger values backed by a JSON or text handler.
// Every handler is wrapped in a RedactingHandler that masks credentials
// (passwords, DSNs, user:password@ pairs) and, when RedactMessages is set,
// chat content and SQL statements.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
// Components derive their loggers from the default:
//
//	logger := slog.Default().With("component", "chatlog.writer")
package logging
