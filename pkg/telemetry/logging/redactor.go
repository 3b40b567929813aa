package logging

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// Attribute keys that carry chat content.
var messageKeys = map[string]bool{
	"text":        true,
	"query":       true,
	"source_name": true,
	"target_name": true,
}

// Key fragments that always mark a credential.
var sensitiveKeys = []string{"password", "passwd", "secret", "token", "dsn"}

// user:password@ in DSNs and URLs.
var credentialPattern = regexp.MustCompile(`([A-Za-z0-9_.-]+):[^@/\s]+@`)

// Redactor decides which log attributes are hidden.
type Redactor struct {
	messages bool
}

// NewRedactor creates a redactor. When messages is true chat content is
// hidden along with credentials.
func NewRedactor(messages bool) *Redactor {
	return &Redactor{messages: messages}
}

// RedactString masks inline credentials in value.
func (r *Redactor) RedactString(value string) string {
	return credentialPattern.ReplaceAllString(value, "$1:"+redacted+"@")
}

// RedactAttr returns a, masked if its key or value is sensitive.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	key := strings.ToLower(a.Key)
	if r.messages && messageKeys[key] {
		return slog.String(a.Key, redacted)
	}
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, redacted)
		}
	}
	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, r.RedactString(a.Value.String()))
	}
	return a
}

// RedactingHandler applies a Redactor to every record before passing it on.
type RedactingHandler struct {
	next     slog.Handler
	redactor *Redactor
}

// NewRedactingHandler wraps next.
func NewRedactingHandler(next slog.Handler, redactor *Redactor) *RedactingHandler {
	return &RedactingHandler{next: next, redactor: redactor}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redactor.RedactAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.redactor.RedactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(out), redactor: h.redactor}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name), redactor: h.redactor}
}
