// internal/common/validation/validators.go
package validation

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	naicsPattern = regexp.MustCompile(`^\d{6}$`)
	ueiPattern   = regexp.MustCompile(`^[A-Z1-9][A-Z0-9]{11}$`)
	cagePattern  = regexp.MustCompile(`^[A-Z0-9]{5}$`)
)

// ValidateEmail validates email format.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateNAICSCode validates a 6-digit NAICS industry code.
func ValidateNAICSCode(code string) bool {
	return naicsPattern.MatchString(code)
}

// ValidateUEI validates a SAM.gov Unique Entity Identifier (12 alphanumeric,
// no leading zero, letters upper case).
func ValidateUEI(uei string) bool {
	return ueiPattern.MatchString(uei)
}

// ValidateCAGECode validates a 5-character CAGE code.
func ValidateCAGECode(cage string) bool {
	return cagePattern.MatchString(cage)
}
