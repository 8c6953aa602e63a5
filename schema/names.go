package schema

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrInvalidTableName = errors.New("invalid table name")

var tableNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateTableName accepts unquoted CQL identifiers only. Table names double
// as folder names of the memory backend.
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("%w `%s`: letters, digits and underscores, starting with a letter", ErrInvalidTableName, name)
	}
	return nil
}
