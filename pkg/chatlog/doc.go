// Package chatlog provides the persisted record model for captured chat
// messages.
//
// # Records
//
// A captured message is one of three variants sharing the read-only Record
// interface:
//
//   - PublicMessage: said to everyone (kind "ALL")
//   - TeamMessage: said to the sender's team (kind "TEAM")
//   - PrivateMessage: sent to a single addressee (kind "PM")
//
// Public and team messages persist the six base columns
// (message_time, kind, source_id, source_name, source_team, text). Private
// messages add target_id, target_name and target_team.
//
// # Statements
//
// Records are written as plain statement strings; there is no parameter
// binding. Every free-text field is turned into a literal by a Dialect:
//
//	stmt := chatlog.InsertStatement(chatlog.MySQL, "chatlog", time.Now().Unix(), rec)
//
// The MySQL dialect applies Escape (backslashes first, then double quotes)
// and wraps the result in double quotes. The SQLite dialect doubles single
// quotes instead, since SQLite does not understand backslash escapes.
//
// # Writing
//
// A Writer binds an Executor, a Dialect and a table name. Save performs a
// single best-effort insert: failures are logged and returned, never retried.
//
//	w := chatlog.NewWriter(store, store.Dialect(), "chatlog")
//	if _, err := w.Save(ctx, rec); err != nil {
//	    // the record is dropped
//	}
package chatlog
