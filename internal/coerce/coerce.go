// Package coerce turns loosely-typed form input into safe values at the
// HTTP boundary: empty or malformed numbers become 0, empty or malformed dates
// become null. Nothing is left to the storage engine's own conversions.
package coerce

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006/01/02",
}

// ParseInt reads an integer, accepting "12", "12.0" and surrounding spaces.
// Anything else yields 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		if n, ok := Whole(d); ok {
			return n
		}
	}
	return 0
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt)
	minInt = decimal.NewFromInt(math.MinInt)
)

// Whole converts d to an int when it is integral and within int range.
func Whole(d decimal.Decimal) (int, bool) {
	if !d.IsInteger() || d.GreaterThan(maxInt) || d.LessThan(minInt) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// ParseDecimal reads a decimal amount; thousands separators are dropped.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate reads a calendar date. Empty or unknown formats yield nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// raw extracts the textual form of a JSON scalar. Objects and arrays are
// treated as empty.
func raw(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ""
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ""
		}
		return s
	}
	if b[0] == '{' || b[0] == '[' {
		return ""
	}
	return string(b)
}

// ── Int ──────────────────────────────────────────────────────────────────────

// Int is an integer field that never fails to decode.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	*i = Int(ParseInt(raw(b)))
	return nil
}

// UnmarshalParam lets gin bind query and form values.
func (i *Int) UnmarshalParam(s string) error {
	*i = Int(ParseInt(s))
	return nil
}

func (i Int) Int() int { return int(i) }

// ── Decimal ──────────────────────────────────────────────────────────────────

// Decimal is a money field that never fails to decode.
type Decimal struct{ decimal.Decimal }

func (d *Decimal) UnmarshalJSON(b []byte) error {
	d.Decimal = ParseDecimal(raw(b))
	return nil
}

func (d *Decimal) UnmarshalParam(s string) error {
	d.Decimal = ParseDecimal(s)
	return nil
}

// Value returns the underlying decimal.
func (d Decimal) Value() decimal.Decimal { return d.Decimal }

// ── Date ─────────────────────────────────────────────────────────────────────

// Date is an optional calendar date. The zero value means null.
type Date struct{ t *time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	d.t = ParseDate(raw(b))
	return nil
}

func (d *Date) UnmarshalParam(s string) error {
	d.t = ParseDate(s)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format("2006-01-02"))
}

// Ptr returns the date or nil.
func (d Date) Ptr() *time.Time { return d.t }

// NewDate wraps t; handy for building requests in code.
func NewDate(t *time.Time) Date { return Date{t: t} }
