package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Phone number pattern - 10 digits
	PhonePattern = `^[0-9]{10}$`

	// Register number pattern - alphanumeric, 6 to 20 characters
	RegisterNumberPattern = `^[A-Za-z0-9]{6,20}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Phone          *regexp.Regexp
	RegisterNumber *regexp.Regexp
}{
	Phone:          regexp.MustCompile(PhonePattern),
	RegisterNumber: regexp.MustCompile(RegisterNumberPattern),
}
