package advice

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/store"
)

// ErrNoJSON is returned when a model reply contains no JSON object.
var ErrNoJSON = errors.New("no JSON object found in response")

// ParseResponse decodes the first well-formed JSON object in raw into an
// AIResponse and rejects it unless all three fields are non-empty.
func ParseResponse(raw string) (*store.AIResponse, error) {
	resp, err := decodeFirstObject[store.AIResponse](raw)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid advice shape")
	}
	return &resp, nil
}

// decodeFirstObject tries the whole reply first, then every balanced
// brace-delimited candidate in order until one decodes. Each candidate is
// decoded into a fresh value so a rejected one leaves nothing behind.
func decodeFirstObject[T any](raw string) (T, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if v, err := decodeObject[T](cleaned); err == nil {
		return v, nil
	}

	for start := strings.IndexByte(cleaned, '{'); start >= 0; {
		end := matchBrace(cleaned, start)
		if end < 0 {
			break
		}
		if v, err := decodeObject[T](cleaned[start : end+1]); err == nil {
			return v, nil
		}
		next := strings.IndexByte(cleaned[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	var zero T
	return zero, ErrNoJSON
}

func decodeObject[T any](s string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// matchBrace returns the index of the brace closing the one at start,
// ignoring braces inside string literals. It returns -1 if unbalanced.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
