package transaction

import (
	"fmt"
	"strings"
)

// Type is the direction of a transaction. The string values are what the
// store persists.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeOutcome Type = "OUTCOME"
)

// Validate rejects anything but the two known types.
func (t Type) Validate() error {
	switch t {
	case TypeIncome, TypeOutcome:
		return nil
	}
	return fmt.Errorf("unknown transaction type: %q", string(t))
}

func (t Type) String() string {
	return string(t)
}

// DisplayName returns a human-readable name of the type.
func (t Type) DisplayName() string {
	switch t {
	case TypeIncome:
		return "Income"
	case TypeOutcome:
		return "Outcome"
	default:
		return "Unknown"
	}
}

// ParseType accepts the persisted names case-insensitively, plus "expense"
// as an alias for outcome.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME", "IN":
		return TypeIncome, nil
	case "OUTCOME", "OUT", "EXPENSE":
		return TypeOutcome, nil
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}
