// Package ledger tracks the vacation days an employee has taken or requested.
// The stored form is a JSON array of ISO dates on the employee row; older rows
// may still carry a pipe/comma-delimited blob, which is normalized on read and
// never written back.
package ledger

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
)

// AnnualAllowance is the fixed vacation quota in days per employee per year.
const AnnualAllowance = 30

const dateLayout = "2006-01-02"

// ErrMalformedLedger signals a stored payload that parses in neither the JSON
// nor the legacy delimited format. Callers recover with an empty set.
var ErrMalformedLedger = errors.New("malformed vacation ledger payload")

type Ledger struct {
	Taken   []string `json:"dias"`
	Pending []string `json:"pendientes"`
}

func (l Ledger) TakenCount() int {
	return len(l.Taken)
}

// Remaining is clamped at zero; the allowance is not configurable per employee.
func (l Ledger) Remaining() int {
	remaining := AnnualAllowance - len(l.Taken)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ToggleDay removes date from days when present and adds it otherwise.
// Toggling the same date twice returns the original set.
func ToggleDay(days []string, date string) []string {
	out := make([]string, 0, len(days)+1)
	removed := false
	for _, day := range days {
		if day == date {
			removed = true
			continue
		}
		out = append(out, day)
	}
	if !removed {
		out = append(out, date)
	}
	sort.Strings(out)
	return out
}

func ValidDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// Parse accepts a JSON array of ISO dates or a legacy pipe/comma-delimited
// blob. Invalid tokens are dropped; duplicates collapse. When neither format
// yields anything from a non-empty payload, it returns an empty set together
// with ErrMalformedLedger.
func Parse(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}

	var parsed []string
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return normalize(parsed), nil
	}

	tokens := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '|' || r == ','
	})
	days := normalize(tokens)
	if len(days) == 0 {
		return []string{}, ErrMalformedLedger
	}
	return days, nil
}

// Serialize always emits the JSON-array form, sorted ascending.
func Serialize(days []string) string {
	payload, err := json.Marshal(normalize(days))
	if err != nil {
		return "[]"
	}
	return string(payload)
}

func normalize(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	days := make([]string, 0, len(tokens))
	for _, token := range tokens {
		day := strings.TrimSpace(token)
		if !ValidDate(day) {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
