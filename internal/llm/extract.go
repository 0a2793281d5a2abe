package llm

import (
	"errors"
	"strings"
)

// ErrNoJSONArray is returned when a completion contains no bracketed array.
var ErrNoJSONArray = errors.New("no JSON array found in model response")

// ExtractJSONArray pulls the first-`[`-to-last-`]` substring out of a
// model completion. Model output is untrusted text that routinely wraps
// the requested JSON in prose, so this heuristic is the designated
// parsing boundary; callers still have to json.Unmarshal the result.
func ExtractJSONArray(content string) (string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return "", ErrNoJSONArray
	}
	return content[start : end+1], nil
}
