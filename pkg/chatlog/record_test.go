package chatlog

import (
	"reflect"
	"strings"
	"testing"
)

var (
	alice = Identity{ID: 12, Name: `O'Hara\path`, Team: 2}
	bob   = Identity{ID: 7, Name: `Bob "the" Builder`, Team: 3}
)

func TestRecord_Columns(t *testing.T) {
	base := []string{"message_time", "kind", "source_id", "source_name", "source_team", "text"}
	private := append(append([]string{}, base...), "target_id", "target_name", "target_team")

	tests := []struct {
		name   string
		record Record
		kind   Kind
		want   []string
	}{
		{name: "public", record: PublicMessage{From: alice, Message: "hi"}, kind: KindAll, want: base},
		{name: "team", record: TeamMessage{From: alice, Message: "hi"}, kind: KindTeam, want: base},
		{name: "private", record: PrivateMessage{From: alice, To: bob, Message: "hi"}, kind: KindPrivate, want: private},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.record.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", tt.record.Kind(), tt.kind)
			}
			if got := tt.record.Columns(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Columns() = %v, want %v", got, tt.want)
			}
			vals := tt.record.Values(MySQL, 1)
			if len(vals) != len(tt.want) {
				t.Errorf("Values() has %d entries, want %d", len(vals), len(tt.want))
			}
		})
	}
}

func TestRecord_ColumnsNotShared(t *testing.T) {
	cols := PublicMessage{}.Columns()
	cols[0] = "mutated"
	if got := (TeamMessage{}).Columns()[0]; got != "message_time" {
		t.Errorf("Columns() shares backing array, got %q", got)
	}
}

func TestInsertStatement_MySQL(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "public",
			record: PublicMessage{From: alice, Message: `say "hi"`},
			want: `INSERT INTO chatlog (message_time, kind, source_id, source_name, source_team, text) ` +
				`VALUES (1700000000, "ALL", 12, "O'Hara\\path", 2, "say \"hi\"")`,
		},
		{
			name:   "team",
			record: TeamMessage{From: alice, Message: "go go go"},
			want: `INSERT INTO chatlog (message_time, kind, source_id, source_name, source_team, text) ` +
				`VALUES (1700000000, "TEAM", 12, "O'Hara\\path", 2, "go go go")`,
		},
		{
			name:   "private",
			record: PrivateMessage{From: alice, To: bob, Message: `c:\temp`},
			want: `INSERT INTO chatlog (message_time, kind, source_id, source_name, source_team, text, target_id, target_name, target_team) ` +
				`VALUES (1700000000, "PM", 12, "O'Hara\\path", 2, "c:\\temp", 7, "Bob \"the\" Builder", 3)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InsertStatement(MySQL, "chatlog", 1700000000, tt.record)
			if got != tt.want {
				t.Errorf("InsertStatement()\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestInsertStatement_SQLite(t *testing.T) {
	got := InsertStatement(SQLite, "b3_chat", 42, PublicMessage{From: alice, Message: "it's"})
	want := `INSERT INTO b3_chat (message_time, kind, source_id, source_name, source_team, text) ` +
		`VALUES (42, 'ALL', 12, 'O''Hara\path', 2, 'it''s')`
	if got != want {
		t.Errorf("InsertStatement()\n got: %s\nwant: %s", got, want)
	}
}

func TestInsertStatement_HostileTextStaysInLiteral(t *testing.T) {
	hostile := `"); DELETE FROM chatlog; --\`
	stmt := InsertStatement(MySQL, "chatlog", 1, PublicMessage{From: alice, Message: hostile})

	lit := MySQL.Quote(hostile)
	if !strings.HasSuffix(stmt, ", "+lit+")") {
		t.Fatalf("statement does not end with the quoted text literal: %s", stmt)
	}
	if got := unquoteMySQL(t, lit); got != hostile {
		t.Errorf("text literal parses back to %q, want %q", got, hostile)
	}
}

func TestPrivateMessage_Target(t *testing.T) {
	pm := PrivateMessage{From: alice, To: bob, Message: "psst"}
	if pm.Target() != bob {
		t.Errorf("Target() = %+v, want %+v", pm.Target(), bob)
	}
	if pm.Source() != alice {
		t.Errorf("Source() = %+v, want %+v", pm.Source(), alice)
	}
	if pm.Text() != "psst" {
		t.Errorf("Text() = %q", pm.Text())
	}
}
