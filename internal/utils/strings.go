// internal/utils/strings.go
package utils

import (
	"strings"
)

// ToSnakeCase converts camelCase or PascalCase to snake_case
// Example: "UserName" -> "user_name", "userID" -> "user_id"
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)
	isUpper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	for i, r := range runes {
		if i > 0 && isUpper(r) {
			// Break before an uppercase letter that starts a new word, but keep
			// a run of capitals such as "ID" together.
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if !isUpper(runes[i-1]) || nextLower {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// ContainsAny checks if string contains any of the substrings
// This is a more efficient version that avoids repeated string operations
func ContainsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
