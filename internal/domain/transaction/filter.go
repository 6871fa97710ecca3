package transaction

import (
	"fmt"
)

type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterDate
	FilterMonth
	FilterCategory
)

func (k FilterKind) String() string {
	switch k {
	case FilterAll:
		return "all"
	case FilterDate:
		return "date"
	case FilterMonth:
		return "month"
	case FilterCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Filter restricts listings and totals. Build it with All, OnDate, InMonth
// or InCategory.
type Filter struct {
	kind  FilterKind
	value string
}

func All() Filter {
	return Filter{kind: FilterAll}
}

// OnDate matches transactions of exactly one day.
func OnDate(d Date) Filter {
	return Filter{kind: FilterDate, value: string(d)}
}

// InMonth matches transactions whose date starts with month ("YYYY-MM").
func InMonth(month string) Filter {
	return Filter{kind: FilterMonth, value: month}
}

// InCategory matches the category exactly.
func InCategory(category string) Filter {
	return Filter{kind: FilterCategory, value: category}
}

func (f Filter) Kind() FilterKind {
	return f.kind
}

func (f Filter) Value() string {
	return f.value
}

func (f Filter) Validate() error {
	switch f.kind {
	case FilterAll:
		return nil
	case FilterDate:
		return Date(f.value).Validate()
	case FilterMonth:
		_, err := ParseMonth(f.value)
		return err
	case FilterCategory:
		if f.value == "" {
			return fmt.Errorf("category must not be empty")
		}
		return nil
	}
	return fmt.Errorf("unknown filter kind %d", f.kind)
}

func (f Filter) String() string {
	if f.kind == FilterAll {
		return f.kind.String()
	}
	return f.kind.String() + "=" + f.value
}
