package chatlog

import (
	"strconv"
	"strings"
)

// Kind discriminates the record variants.
type Kind string

const (
	// KindAll marks a message said to every player.
	KindAll Kind = "ALL"
	// KindTeam marks a message said to the sender's team.
	KindTeam Kind = "TEAM"
	// KindPrivate marks a message sent to a single player.
	KindPrivate Kind = "PM"
)

// Base columns shared by every variant, in statement order.
var baseColumns = []string{
	"message_time",
	"kind",
	"source_id",
	"source_name",
	"source_team",
	"text",
}

// Columns added by PrivateMessage, in statement order.
var targetColumns = []string{
	"target_id",
	"target_name",
	"target_team",
}

// Identity is a snapshot of a client at the moment a message was sent.
// Team is copied by value so later team changes never touch history.
type Identity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team int    `json:"team"`
}

// Record is the read-only view shared by all persisted chat variants.
// The set of implementations is closed: PublicMessage, TeamMessage and
// PrivateMessage.
type Record interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Source returns the sender snapshot.
	Source() Identity

	// Text returns the raw (unescaped) message content.
	Text() string

	// Columns returns the column names this variant writes, in order.
	Columns() []string

	// Values returns SQL literals matching Columns, with every free-text
	// field quoted through d.
	Values(d Dialect, messageTime int64) []string

	sealed()
}

// PublicMessage is a message said to every player.
type PublicMessage struct {
	From    Identity
	Message string
}

// Kind implements Record.
func (m PublicMessage) Kind() Kind { return KindAll }

// Source implements Record.
func (m PublicMessage) Source() Identity { return m.From }

// Text implements Record.
func (m PublicMessage) Text() string { return m.Message }

// Columns implements Record.
func (m PublicMessage) Columns() []string { return cloneColumns(baseColumns) }

// Values implements Record.
func (m PublicMessage) Values(d Dialect, messageTime int64) []string {
	return baseValues(d, messageTime, KindAll, m.From, m.Message)
}

func (PublicMessage) sealed() {}

// TeamMessage is a message said to the sender's team. It has the same
// shape as PublicMessage.
type TeamMessage struct {
	From    Identity
	Message string
}

// Kind implements Record.
func (m TeamMessage) Kind() Kind { return KindTeam }

// Source implements Record.
func (m TeamMessage) Source() Identity { return m.From }

// Text implements Record.
func (m TeamMessage) Text() string { return m.Message }

// Columns implements Record.
func (m TeamMessage) Columns() []string { return cloneColumns(baseColumns) }

// Values implements Record.
func (m TeamMessage) Values(d Dialect, messageTime int64) []string {
	return baseValues(d, messageTime, KindTeam, m.From, m.Message)
}

func (TeamMessage) sealed() {}

// PrivateMessage is a message sent to a single addressee.
type PrivateMessage struct {
	From    Identity
	To      Identity
	Message string
}

// Kind implements Record.
func (m PrivateMessage) Kind() Kind { return KindPrivate }

// Source implements Record.
func (m PrivateMessage) Source() Identity { return m.From }

// Target returns the addressee snapshot.
func (m PrivateMessage) Target() Identity { return m.To }

// Text implements Record.
func (m PrivateMessage) Text() string { return m.Message }

// Columns implements Record.
func (m PrivateMessage) Columns() []string {
	cols := make([]string, 0, len(baseColumns)+len(targetColumns))
	cols = append(cols, baseColumns...)
	return append(cols, targetColumns...)
}

// Values implements Record.
func (m PrivateMessage) Values(d Dialect, messageTime int64) []string {
	vals := baseValues(d, messageTime, KindPrivate, m.From, m.Message)
	return append(vals,
		strconv.FormatInt(m.To.ID, 10),
		d.Quote(m.To.Name),
		strconv.Itoa(m.To.Team),
	)
}

func (PrivateMessage) sealed() {}

// InsertStatement renders the complete insert for r into table.
// The table name is embedded as is; callers validate it up front.
func InsertStatement(d Dialect, table string, messageTime int64, r Record) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(r.Columns(), ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(r.Values(d, messageTime), ", "))
	sb.WriteString(")")
	return sb.String()
}

func baseValues(d Dialect, messageTime int64, kind Kind, from Identity, text string) []string {
	vals := make([]string, 0, len(baseColumns)+len(targetColumns))
	return append(vals,
		strconv.FormatInt(messageTime, 10),
		d.Quote(string(kind)),
		strconv.FormatInt(from.ID, 10),
		d.Quote(from.Name),
		strconv.Itoa(from.Team),
		d.Quote(text),
	)
}

func cloneColumns(cols []string) []string {
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}
