// Package adapter converts host chat events into chatlog records.
package adapter

import (
	"errors"
	"fmt"

	"mercator-hq/chatlogger/pkg/chatlog"
)

// EventType is the host's declared event tag.
type EventType string

const (
	// EventSay is a public chat message.
	EventSay EventType = "say"
	// EventTeamSay is a team chat message.
	EventTeamSay EventType = "team_say"
	// EventPrivateSay is a private message between two clients.
	EventPrivateSay EventType = "private_say"
)

// Types lists the event types the adapter turns into records.
var Types = []EventType{EventSay, EventTeamSay, EventPrivateSay}

// ErrMissingTarget means the host emitted a private message without an
// addressee. It signals a broken event contract and is never swallowed.
var ErrMissingTarget = errors.New("private message event has no target")

// Client is a connected player as the host describes it.
type Client struct {
	// ID is the player's persistent database identifier.
	ID int64 `json:"id"`

	// CID is the host's connection slot identifier. Empty until the
	// client is fully registered.
	CID string `json:"cid"`

	Name string `json:"name"`
	Team int    `json:"team"`
}

// Event is a chat event emitted by the host event bus.
type Event struct {
	Type   EventType `json:"type"`
	Client *Client   `json:"client,omitempty"`
	Target *Client   `json:"target,omitempty"`
	Data   string    `json:"data"`
}

// Adapt maps ev onto the matching record variant.
//
// It returns (nil, nil) when the event is ignored: no client, a client not
// yet registered, empty text, or a type that is not logged. A private
// message with no target returns ErrMissingTarget.
func Adapt(ev Event) (chatlog.Record, error) {
	if ev.Client == nil || ev.Client.CID == "" || len(ev.Data) == 0 {
		return nil, nil
	}

	from := identity(ev.Client)

	switch ev.Type {
	case EventSay:
		return chatlog.PublicMessage{From: from, Message: ev.Data}, nil
	case EventTeamSay:
		return chatlog.TeamMessage{From: from, Message: ev.Data}, nil
	case EventPrivateSay:
		if ev.Target == nil {
			return nil, fmt.Errorf("%w (client_id=%d)", ErrMissingTarget, ev.Client.ID)
		}
		return chatlog.PrivateMessage{From: from, To: identity(ev.Target), Message: ev.Data}, nil
	default:
		return nil, nil
	}
}

func identity(c *Client) chatlog.Identity {
	return chatlog.Identity{ID: c.ID, Name: c.Name, Team: c.Team}
}
