package chatlog

import (
	"fmt"
	"regexp"
)

// Table names are spliced into statements unquoted, so only plain
// identifiers are accepted.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidateTableName returns an error if name cannot be used as a table.
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q: must match %s", name, tableNamePattern)
	}
	return nil
}
