package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Field is a named request value checked by MissingFields.
type Field struct {
	Name  string
	Value string
}

// MissingFields returns an error naming every empty required field in the
// order given, or nil when all are present.
func MissingFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("Missing required fields: %s", strings.Join(missing, ", "))
}
