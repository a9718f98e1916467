package domain

const passwordMinLength = 16

const passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// ValidPassword reports whether candidate meets the account password
// policy: at least 16 characters with at least one uppercase letter, one
// lowercase letter, one digit and one symbol. Pure predicate; any string
// input is acceptable and an empty string is simply rejected.
func ValidPassword(candidate string) bool {
	if len(candidate) < passwordMinLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			for _, s := range passwordSymbols {
				if r == s {
					symbol = true
					break
				}
			}
		}
	}
	return upper && lower && digit && symbol
}
