package bus

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// maxLineSize bounds a single JSON event line.
const maxLineSize = 1 << 20

// StreamSource reads newline-delimited JSON events from a reader,
// typically the process's stdin.
type StreamSource struct {
	r      io.Reader
	logger *slog.Logger
}

// NewStreamSource creates a source reading from r.
func NewStreamSource(r io.Reader, logger *slog.Logger) *StreamSource {
	if logger == nil {
		logger = slog.Default().With("component", "bus.stream")
	}
	return &StreamSource{r: r, logger: logger}
}

// Run implements Source. It returns nil at end of input. Blank lines are
// skipped; malformed lines are logged and skipped.
func (s *StreamSource) Run(ctx context.Context, handle HandlerFunc) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := bytes.Clone(scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read events: %w", err)
					}
				default:
				}
				s.logger.Info("event stream closed", "lines", lineNo)
				return nil
			}
			lineNo++

			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}

			ev, err := Decode(line)
			if err != nil {
				s.logger.Warn("skipping malformed event", "line", lineNo, "error", err)
				continue
			}

			if err := handle(ctx, ev); err != nil {
				s.logger.Error("event handler failed", "line", lineNo, "event_type", ev.Type, "error", err)
			}
		}
	}
}
