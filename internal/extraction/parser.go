// Package extraction parses model responses into catalogue field mappings.
package extraction

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// DescriptionField is the free-text field that receives the whole response
// when no structured JSON can be recovered.
const DescriptionField = "EADScopeAndContent"

// scopeContentAlias is the key the slide prompt asks the model to use for
// the scope-and-content description
const scopeContentAlias = "EADScope+Content"

// Fields is a best-effort mapping of catalogue field names to values
// recovered from one model response.
type Fields map[string]string

// Parse attempts to read a model response as a JSON object. The response may
// be bare JSON, JSON inside markdown code fences, or JSON embedded in
// conversational prose. The fallback chain is: strict parse of the fence-
// stripped text, then the first balanced {...} span, then the whole raw text
// as the scope-and-content description. The returned bool reports whether
// structured parsing succeeded; Parse itself never fails.
func Parse(raw string) (Fields, bool) {
	text := stripFences(raw)

	fields, err := parseObject(text)
	if err == nil {
		return fields, true
	}

	if span, ok := firstObjectSpan(text); ok {
		fields, spanErr := parseObject(span)
		if spanErr == nil {
			return fields, true
		}
	}

	slog.Warn("Failed to parse JSON response, using raw output", "error", err)
	return Fields{DescriptionField: raw}, false
}

// parseObject decodes a single JSON object into string fields. Non-string
// values keep their JSON encoding so nothing the model supplied is lost.
func parseObject(text string) (Fields, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}

	fields := make(Fields, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case nil:
			fields[k] = ""
		default:
			encoded, err := json.Marshal(val)
			if err != nil {
				continue
			}
			fields[k] = string(encoded)
		}
	}

	// The prompt asks for "EADScope+Content"; store it under the schema name
	if v, ok := fields[scopeContentAlias]; ok {
		if _, exists := fields[DescriptionField]; !exists {
			fields[DescriptionField] = v
		}
		delete(fields, scopeContentAlias)
	}

	return fields, nil
}

// stripFences trims markdown code block markers around a response
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// firstObjectSpan returns the first balanced top-level {...} substring of
// text. Braces inside JSON strings are ignored. Responses containing several
// JSON-like substrings resolve deterministically to the earliest balanced
// span.
func firstObjectSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

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
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
