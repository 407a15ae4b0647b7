package validation

import (
	"fmt"
	"strings"
)

// ValidateName validates a required display name
func ValidateName(name string) error {
	return ValidateText("name", name, 50)
}

// ValidateText checks that a required text value is present and at most max characters.
func ValidateText(label, value string, max int) error {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return fmt.Errorf("please add a %s", label)
	}

	if len([]rune(trimmed)) > max {
		return fmt.Errorf("%s can not be more than %d characters", label, max)
	}

	return nil
}
