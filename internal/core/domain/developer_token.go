package domain

import (
	"regexp"
	"unicode/utf8"
)

// MinDeveloperTokenLength is the shortest developer token accepted.
const MinDeveloperTokenLength = 20

var developerTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TokenValidation is the outcome of checking a developer token.
type TokenValidation struct {
	Valid   bool
	Message string
}

// ValidateDeveloperToken checks the developer token format.
// Length is counted in characters, not bytes.
func ValidateDeveloperToken(token string) TokenValidation {
	switch {
	case token == "":
		return TokenValidation{Message: "Developer token is required"}
	case utf8.RuneCountInString(token) < MinDeveloperTokenLength:
		return TokenValidation{Message: "Developer token should be at least 20 characters"}
	case !developerTokenPattern.MatchString(token):
		return TokenValidation{Message: "Invalid token format"}
	default:
		return TokenValidation{Valid: true}
	}
}

// IsValidDeveloperToken is shorthand for ValidateDeveloperToken(token).Valid.
func IsValidDeveloperToken(token string) bool {
	return ValidateDeveloperToken(token).Valid
}

// MaskToken hides all but the last four characters of a secret.
func MaskToken(token string) string {
	runes := []rune(token)
	if len(runes) <= 4 {
		return "****"
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < len(runes)-4 {
			masked[i] = '*'
		} else {
			masked[i] = runes[i]
		}
	}
	return string(masked)
}
