package adapter

import (
	"errors"
	"testing"

	"mercator-hq/chatlogger/pkg/chatlog"
)

func TestAdapt(t *testing.T) {
	sender := &Client{ID: 12, CID: "3", Name: "Courgette", Team: 2}
	target := &Client{ID: 40, CID: "5", Name: "Anubis", Team: 3}

	tests := []struct {
		name     string
		event    Event
		wantKind chatlog.Kind
		wantNil  bool
		wantErr  error
	}{
		{
			name:     "say",
			event:    Event{Type: EventSay, Client: sender, Data: "hello"},
			wantKind: chatlog.KindAll,
		},
		{
			name:     "team say",
			event:    Event{Type: EventTeamSay, Client: sender, Data: "regroup"},
			wantKind: chatlog.KindTeam,
		},
		{
			name:     "private say",
			event:    Event{Type: EventPrivateSay, Client: sender, Target: target, Data: "psst"},
			wantKind: chatlog.KindPrivate,
		},
		{
			name:    "private say without target",
			event:   Event{Type: EventPrivateSay, Client: sender, Data: "psst"},
			wantNil: true,
			wantErr: ErrMissingTarget,
		},
		{
			name:    "no client",
			event:   Event{Type: EventSay, Data: "ghost"},
			wantNil: true,
		},
		{
			name:    "unregistered client",
			event:   Event{Type: EventSay, Client: &Client{ID: 1, Name: "joining"}, Data: "hi"},
			wantNil: true,
		},
		{
			name:    "empty data",
			event:   Event{Type: EventSay, Client: sender},
			wantNil: true,
		},
		{
			name:    "private say without target but empty data is ignored",
			event:   Event{Type: EventPrivateSay, Client: sender},
			wantNil: true,
		},
		{
			name:    "unknown type",
			event:   Event{Type: "client_kill", Client: sender, Data: "x"},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Adapt(tt.event)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Adapt() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Adapt() unexpected error: %v", err)
			}

			if tt.wantNil {
				if rec != nil {
					t.Errorf("Adapt() = %#v, want nil", rec)
				}
				return
			}

			if rec == nil {
				t.Fatal("Adapt() returned nil record")
			}
			if rec.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", rec.Kind(), tt.wantKind)
			}
			if rec.Text() != tt.event.Data {
				t.Errorf("Text() = %q, want %q", rec.Text(), tt.event.Data)
			}
			if rec.Source().ID != sender.ID || rec.Source().Name != sender.Name {
				t.Errorf("Source() = %+v", rec.Source())
			}
		})
	}
}

func TestAdapt_TeamIsSnapshot(t *testing.T) {
	sender := &Client{ID: 1, CID: "0", Name: "switcher", Team: 2}
	target := &Client{ID: 2, CID: "1", Name: "other", Team: 3}

	rec, err := Adapt(Event{Type: EventPrivateSay, Client: sender, Target: target, Data: "bye"})
	if err != nil {
		t.Fatalf("Adapt() failed: %v", err)
	}

	sender.Team = 3
	target.Team = 1

	pm, ok := rec.(chatlog.PrivateMessage)
	if !ok {
		t.Fatalf("record is %T, want chatlog.PrivateMessage", rec)
	}
	if pm.Source().Team != 2 || pm.Target().Team != 3 {
		t.Errorf("teams changed with the live client: source=%d target=%d", pm.Source().Team, pm.Target().Team)
	}
}
