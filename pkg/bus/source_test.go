package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/chatlogger/pkg/chatlog/adapter"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    adapter.Event
		wantErr bool
	}{
		{
			name:    "public message",
			payload: `{"type":"say","client":{"id":12,"cid":"3","name":"Alice","team":2},"data":"hello"}`,
			want: adapter.Event{
				Type:   adapter.EventSay,
				Client: &adapter.Client{ID: 12, CID: "3", Name: "Alice", Team: 2},
				Data:   "hello",
			},
		},
		{
			name:    "private message",
			payload: `{"type":"private_say","client":{"id":1,"cid":"1","name":"A"},"target":{"id":2,"cid":"2","name":"B"},"data":"O'Hara\\path"}`,
			want: adapter.Event{
				Type:   adapter.EventPrivateSay,
				Client: &adapter.Client{ID: 1, CID: "1", Name: "A"},
				Target: &adapter.Client{ID: 2, CID: "2", Name: "B"},
				Data:   `O'Hara\path`,
			},
		},
		{name: "not json", payload: `say hello`, wantErr: true},
		{name: "missing type", payload: `{"data":"hello"}`, wantErr: true},
		{name: "wrong field type", payload: `{"type":"say","client":{"id":"x"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.payload))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedEvent) {
					t.Errorf("Decode() error = %v, want ErrMalformedEvent", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if got.Type != tt.want.Type || got.Data != tt.want.Data {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
			if *got.Client != *tt.want.Client {
				t.Errorf("Client = %+v, want %+v", got.Client, tt.want.Client)
			}
			if (got.Target == nil) != (tt.want.Target == nil) {
				t.Fatalf("Target = %v, want %v", got.Target, tt.want.Target)
			}
			if got.Target != nil && *got.Target != *tt.want.Target {
				t.Errorf("Target = %+v, want %+v", got.Target, tt.want.Target)
			}
		})
	}
}

func TestNop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Nop{}.Run(ctx, func(context.Context, adapter.Event) error {
		t.Error("Nop delivered an event")
		return nil
	})
	if err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
