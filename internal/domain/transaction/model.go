package transaction

import (
	"fmt"
	"strings"
)

const MaxCategoryLen = 64

// Transaction is a single income or outcome entry. Amount is in minor units
// (cents).
type Transaction struct {
	ID       int64  `json:"id"`
	Type     Type   `json:"type"`
	Date     Date   `json:"date"`
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note,omitempty"`
}

// Validate checks the caller contract of the store: known type, real date,
// positive amount and a category.
func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}

	if err := t.Date.Validate(); err != nil {
		return err
	}

	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	category := strings.TrimSpace(t.Category)
	if category == "" {
		return fmt.Errorf("category must not be empty")
	}
	if len(category) > MaxCategoryLen {
		return fmt.Errorf("category must be at most %d characters", MaxCategoryLen)
	}

	return nil
}

// Signed returns the amount with outcome negated.
func (t Transaction) Signed() int64 {
	if t.Type == TypeOutcome {
		return -t.Amount
	}
	return t.Amount
}
