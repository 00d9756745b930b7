// Package command recognizes structured commands embedded in free-form model
// output. The grammar is ACTION:<NAME>(key="value", ...); anything that does
// not match is ordinary conversation, never an error.
package command

import (
	"regexp"
	"strings"
)

// Known command names. The parser does not enforce them; validating the name
// is the dispatcher's concern.
const (
	CreateEvent = "CREATE_EVENT"
	ReadEvents  = "READ_EVENTS"
	UpdateEvent = "UPDATE_EVENT"
	DeleteEvent = "DELETE_EVENT"
)

// Command is a single structured request extracted from raw text. Params is a
// free-form string mapping; required keys and value types are validated at
// dispatch time, not here.
type Command struct {
	Name   string
	Params map[string]string
}

var actionPattern = regexp.MustCompile(`ACTION:([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// Parse scans text for a single ACTION:<NAME>(<ARGS>) block. It returns the
// command and true on a match, or nil and false when the text contains no
// command. Values are double-quoted and may span lines; \" unescapes to a
// literal quote. Duplicate keys overwrite sequentially, so the last occurrence
// wins. A block whose closing parenthesis or quote never arrives is treated as
// no command. The scan is a single pass over the input and always terminates.
func Parse(text string) (*Command, bool) {
	loc := actionPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}

	name := text[loc[2]:loc[3]]
	params, ok := parseArgs(text[loc[1]:])
	if !ok {
		return nil, false
	}
	return &Command{Name: name, Params: params}, true
}

func parseArgs(rest string) (map[string]string, bool) {
	params := map[string]string{}
	i := 0
	for i < len(rest) {
		switch c := rest[i]; {
		case c == ')':
			return params, true
		case isKeyByte(c):
			key, value, next, ok := parsePair(rest, i)
			if !ok {
				return nil, false
			}
			params[key] = value
			i = next
		default:
			// Whitespace, commas, and any stray bytes between pairs are
			// skipped rather than rejected.
			i++
		}
	}
	// Ran out of input before the closing parenthesis.
	return nil, false
}

func parsePair(rest string, i int) (key, value string, next int, ok bool) {
	start := i
	for i < len(rest) && isKeyByte(rest[i]) {
		i++
	}
	key = rest[start:i]

	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t' || rest[i] == '\n' || rest[i] == '\r') {
		i++
	}
	if i >= len(rest) || rest[i] != '=' {
		return "", "", 0, false
	}
	i++
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t' || rest[i] == '\n' || rest[i] == '\r') {
		i++
	}
	if i >= len(rest) || rest[i] != '"' {
		return "", "", 0, false
	}
	i++

	var b strings.Builder
	for i < len(rest) {
		switch {
		case rest[i] == '\\' && i+1 < len(rest) && rest[i+1] == '"':
			b.WriteByte('"')
			i += 2
		case rest[i] == '"':
			return key, b.String(), i + 1, true
		default:
			b.WriteByte(rest[i])
			i++
		}
	}
	// Never-closing quote.
	return "", "", 0, false
}

func isKeyByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
