package editor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Year bounds accepted for education entries.
const (
	MinYear = 1900
	MaxYear = 2100
)

var (
	validate = validator.New()

	// yearMonthPattern matches YYYY-MM values produced by month inputs.
	yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// validateEmail accepts blank values (incomplete drafts are tolerated) and
// otherwise requires a standard email grammar.
func validateEmail(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if err := validate.Var(value, "email"); err != nil {
		return &FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

// validateURL accepts blank values and otherwise requires an absolute URL.
func validateURL(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if err := validate.Var(value, "url"); err != nil {
		return &FieldError{Field: field, Message: "must be a valid absolute URL"}
	}
	return nil
}

// validateYearMonth accepts blank values and otherwise requires YYYY-MM with
// a plausible year.
func validateYearMonth(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if !yearMonthPattern.MatchString(value) {
		return &FieldError{Field: field, Message: "must be in YYYY-MM format"}
	}
	year, _ := strconv.Atoi(value[:4])
	if year < MinYear || year > MaxYear {
		return &FieldError{Field: field, Message: fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)}
	}
	return nil
}

// validateYear accepts blank values and otherwise requires a 4-digit year in
// the plausible range.
func validateYear(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	year, err := strconv.Atoi(value)
	if err != nil || len(value) != 4 {
		return &FieldError{Field: field, Message: "must be a 4-digit year"}
	}
	if year < MinYear || year > MaxYear {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)}
	}
	return nil
}
