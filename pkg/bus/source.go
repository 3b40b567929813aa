// Package bus delivers host chat events to the chat logger.
//
// The host publishes one JSON object per chat event:
//
//	{"type":"say","client":{"id":12,"cid":"3","name":"Alice","team":2},"data":"hello"}
//
// A Source decodes these and hands them, one at a time, to a handler.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mercator-hq/chatlogger/pkg/chatlog/adapter"
)

// ErrMalformedEvent is returned by Decode for payloads that are not a
// chat event.
var ErrMalformedEvent = errors.New("malformed event")

// HandlerFunc processes one event. Sources call it serially.
type HandlerFunc func(ctx context.Context, ev adapter.Event) error

// Source produces host events.
type Source interface {
	// Run delivers events to handle until ctx is cancelled or the source
	// is exhausted. Handler errors are logged and do not stop the source.
	Run(ctx context.Context, handle HandlerFunc) error
}

// Decode parses one JSON event payload.
func Decode(payload []byte) (adapter.Event, error) {
	var ev adapter.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return adapter.Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.Type == "" {
		return adapter.Event{}, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}
	return ev, nil
}

// Nop is a source that delivers nothing and returns when ctx is done.
type Nop struct{}

// Run implements Source.
func (Nop) Run(ctx context.Context, _ HandlerFunc) error {
	<-ctx.Done()
	return nil
}
