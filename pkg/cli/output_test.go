package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type report struct {
	Table string `json:"table"`
	Days  int    `json:"max_age_days"`
}

func (r report) String() string { return r.Table }

func TestWrite(t *testing.T) {
	r := report{Table: "chatlog", Days: 30}

	t.Run("text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := Write(buf, FormatText, r); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if buf.String() != "chatlog\n" {
			t.Errorf("Write() = %q", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := Write(buf, FormatJSON, r); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		var got report
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if got != r {
			t.Errorf("decoded %+v, want %+v", got, r)
		}
		if !bytes.Contains(buf.Bytes(), []byte("\n  \"table\"")) {
			t.Errorf("JSON output is not indented: %s", buf.String())
		}
	})
}

func TestParseOutputFormat(t *testing.T) {
	for _, s := range []string{"text", "json"} {
		if _, err := ParseOutputFormat(s); err != nil {
			t.Errorf("ParseOutputFormat(%q) error = %v", s, err)
		}
	}

	_, err := ParseOutputFormat("csv")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "output" {
		t.Errorf("ParseOutputFormat(csv) error = %v, want ConfigError on output", err)
	}
}
