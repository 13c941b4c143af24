package errors

import (
	"fmt"
	"strings"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestDistance = 3

// SuggestName proposes the known name closest to unknown, compared case
// insensitively. Without a close match it lists the first known names.
func SuggestName(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, name := range known {
		if d := editDistance(strings.ToLower(unknown), strings.ToLower(name)); d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}

	const listed = 5
	if len(known) > listed {
		return fmt.Sprintf("Valid names include: %s, ...", strings.Join(known[:listed], ", "))
	}
	return fmt.Sprintf("Valid names: %s", strings.Join(known, ", "))
}

// SuggestMissingField proposes adding a required field, with an example
// value when one is given.
func SuggestMissingField(fieldName, exampleValue string) string {
	if exampleValue == "" {
		return fmt.Sprintf("Add a '%s' field to the document", fieldName)
	}
	return fmt.Sprintf("Add '%s: %s' to the document", fieldName, exampleValue)
}

// editDistance is the Levenshtein distance of a and b, computed over bytes
// with two rows.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
