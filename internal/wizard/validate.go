package wizard

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Accepted layouts for date and datetime fields. The datetime-local layout is
// what HTML forms post; RFC 3339 covers API clients.
var (
	deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}
	dateLayouts     = []string{"2006-01-02", time.RFC3339}
)

// ValidationError reports the fields that blocked a step advance or submit.
// Fields are listed in form order so callers can highlight them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// validateStep evaluates the required fields for (category, step) against the
// current field values. Returns nil when every required field passes.
func validateStep(c Category, step int, fields map[string]string) *ValidationError {
	var unmet []string
	for _, name := range RequiredFields(c, step) {
		if !fieldValid(name, fields) {
			unmet = append(unmet, name)
		}
	}
	if len(unmet) > 0 {
		return &ValidationError{Fields: unmet}
	}
	return nil
}

// validateAll evaluates every step's required fields for the category.
func validateAll(c Category, fields map[string]string) *ValidationError {
	var unmet []string
	for step := 1; step <= TotalSteps; step++ {
		for _, name := range RequiredFields(c, step) {
			if !fieldValid(name, fields) {
				unmet = append(unmet, name)
			}
		}
	}
	if len(unmet) > 0 {
		return &ValidationError{Fields: unmet}
	}
	return nil
}

// fieldValid applies the per-field predicate. The baseline rule is non-empty;
// a handful of fields carry stricter checks.
func fieldValid(name string, fields map[string]string) bool {
	raw := fields[name]
	value := strings.TrimSpace(raw)
	if value == "" {
		return false
	}

	switch name {
	case FieldEmail, FieldContactEmail:
		_, err := mail.ParseAddress(value)
		return err == nil
	case FieldQuantity:
		n, err := strconv.Atoi(value)
		return err == nil && n > 0
	case FieldDeadline:
		// Parseable is enough; past deadlines are accepted so hospitals can
		// backfill records.
		return parseAny(value, deadlineLayouts)
	case FieldDateOfBirth:
		return parseAny(value, dateLayouts)
	case FieldConfirm:
		// Case-sensitive string equality against the password field, no
		// trimming: passwords are taken verbatim.
		return fields[FieldPassword] != "" && raw == fields[FieldPassword]
	case FieldTerms:
		return value == "true"
	default:
		return true
	}
}

func parseAny(value string, layouts []string) bool {
	_, err := parseFirst(value, layouts)
	return err == nil
}

func parseFirst(value string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ValidateFields checks every step's required fields for the category,
// mirroring what a completed flow enforces at submit time. Single-shot API
// clients use this instead of stepping a Flow.
func ValidateFields(c Category, fields map[string]string) error {
	if verr := validateAll(c, fields); verr != nil {
		return verr
	}
	return nil
}

// ParseDeadline parses a deadline field value using the accepted layouts.
func ParseDeadline(value string) (time.Time, error) {
	return parseFirst(strings.TrimSpace(value), deadlineLayouts)
}

// ParseDate parses a date-only field value such as dateOfBirth.
func ParseDate(value string) (time.Time, error) {
	return parseFirst(strings.TrimSpace(value), dateLayouts)
}
