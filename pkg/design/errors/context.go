package errors

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// contextLines is how many lines around an error AddContextToError shows.
const contextLines = 2

// ExtractContext returns the lines of the document within radius of
// location, numbered, with the offending line marked by ">" and a caret
// under its column. It returns "" when the file cannot be read.
func ExtractContext(location Location, radius int) string {
	if !location.IsValid() {
		return ""
	}
	data, err := os.ReadFile(location.File)
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	target := location.Line - 1
	if target >= len(lines) {
		return ""
	}
	first, last := max(target-radius, 0), min(target+radius, len(lines)-1)
	width := len(strconv.Itoa(last + 1))

	var sb strings.Builder
	for i := first; i <= last; i++ {
		marker := ' '
		if i == target {
			marker = '>'
		}
		fmt.Fprintf(&sb, "  %c %*d | %s\n", marker, width, i+1, lines[i])
		if i == target && location.Column > 0 {
			fmt.Fprintf(&sb, "    %*s | %*s\n", width, "", location.Column, "^")
		}
	}
	return sb.String()
}

// AddContextToError fills err.Context from its document and returns err.
func AddContextToError(err *Error) *Error {
	if err.Context == "" {
		err.Context = ExtractContext(err.Location, contextLines)
	}
	return err
}
