package cli

import "strings"

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?~` + "`"

// passwordStrength scores a candidate password 0..3:
//
//	0 — under 6 characters
//	1 — long enough
//	2 — mixes letters and digits
//	3 — also at least 10 characters or contains a special character
//
// Registration requires a score of at least 2.
func passwordStrength(password string) int {
	if len(password) < 6 {
		return 0
	}

	score := 1

	var hasLetters, hasDigits, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasLetters = true
		case r >= '0' && r <= '9':
			hasDigits = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if hasLetters && hasDigits {
		score = 2
	}
	if score == 2 && (len(password) >= 10 || hasSpecial) {
		score = 3
	}
	return score
}
