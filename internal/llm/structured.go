package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes a JSON object of type T from raw model output. JSON
// mode usually yields a bare object, but fences and chatter around it are
// tolerated, including stray braces before the real object. Blank output
// and "{}" placeholders are reported as ErrEmptyResponse.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return zero, ErrEmptyResponse
	}

	result, err := firstDecodable[T](stripCodeFences(trimmed))
	if err != nil {
		return zero, err
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// stripCodeFences drops markdown fence lines (```json, ```), keeping the
// content between them.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanner walks JSON text tracking whether the cursor is inside a string.
type scanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural (outside a string).
func (sc *scanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	}
	return !sc.inString
}

// firstDecodable tries each top-level balanced block in s in order and
// returns the first that decodes into T. When none does, the error of the
// first block is returned.
func firstDecodable[T any](s string) (T, error) {
	var zero T
	var firstErr error

	for {
		obj, end := nextObject(s)
		if obj == "" {
			break
		}
		s = s[end:]

		result, err := decodeObject[T](obj)
		if err == nil {
			return result, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	return zero, firstErr
}

func decodeObject[T any](obj string) (T, error) {
	var result T
	obj = stripJSONComments(obj)
	if compact := strings.Join(strings.Fields(obj), ""); compact == "{}" {
		return result, ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return result, nil
}

// nextObject returns the first balanced { ... } block in s and the offset
// just past it. An unbalanced tail yields "".
func nextObject(s string) (string, int) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", 0
	}

	var sc scanner
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], i + 1
			}
		}
	}
	return "", 0
}

// stripJSONComments removes // and /* */ comments outside string values.
// Models sometimes annotate JSON despite instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var sc scanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) && c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				i += 2
				for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
					i++
				}
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
