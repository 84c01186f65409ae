package validation

import (
	"regexp"

	"github.com/google/uuid"
)

// RFC 5321 caps an address at 254 octets; the pattern handles the shape.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like a deliverable email address.
func IsValidEmail(s string) bool {
	return len(s) <= 254 && emailPattern.MatchString(s)
}

// IsValidUUID reports whether s is a canonical 36-character UUID. Parse
// alone is too lenient: it also accepts un-dashed and urn-prefixed forms,
// which the API should reject.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
