package query

import (
	"errors"
	"fmt"
)

var ErrUnsupportedOperator = errors.New("unsupported comparison operator")

type Operator byte

const (
	EQ Operator = iota
	NE
	LT
	GT
	LE
	GE
)

var operatorSymbols = [...]string{
	EQ: "=",
	NE: "!=",
	LT: "<",
	GT: ">",
	LE: "<=",
	GE: ">=",
}

func (o Operator) Valid() bool {
	return int(o) < len(operatorSymbols)
}

// Native reports whether the storage query language can express the
// operator in a WHERE clause. There is no native not-equal.
func (o Operator) Native() bool {
	switch o {
	case EQ, LT, GT, LE, GE:
		return true
	default:
		return false
	}
}

func (o Operator) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operator(%d)", o)
	}
	return operatorSymbols[o]
}

func ParseOperator(symbol string) (Operator, error) {
	for op, it := range operatorSymbols {
		if it == symbol {
			return Operator(op), nil
		}
	}

	if symbol == "<>" {
		return NE, nil
	}

	return 0, fmt.Errorf("%w: `%s`", ErrUnsupportedOperator, symbol)
}
