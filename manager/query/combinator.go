package query

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCombinator = errors.New("unknown combinator")

// Combinator joins the filters of one query.
type Combinator byte

const (
	And Combinator = iota
	Or
)

func (c Combinator) String() string {
	switch c {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return fmt.Sprintf("Combinator(%d)", c)
	}
}

func ParseCombinator(s string) (Combinator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AND":
		return And, nil
	case "OR":
		return Or, nil
	default:
		return 0, fmt.Errorf("%w `%s`", ErrUnknownCombinator, s)
	}
}
