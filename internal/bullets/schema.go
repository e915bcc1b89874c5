package bullets

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSchema means the model reply does not match the expected JSON payload.
var ErrSchema = errors.New("bullet payload does not match schema")

var codeFenceRe = regexp.MustCompile("(?im)^```(?:json)?\\s*|\\s*```$")

// ExtractJSONObject strips code fences and returns the text from the first
// "{" to the last "}".
func ExtractJSONObject(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrSchema)
	}
	cleaned := codeFenceRe.ReplaceAllString(strings.TrimSpace(text), "")
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrSchema)
	}
	return cleaned[start : end+1], nil
}

// Payload is a validated model reply.
type Payload struct {
	Bullets              []string `json:"bullets"`
	Assumptions          []string `json:"assumptions"`
	MissingInfoQuestions []string `json:"missing_info_questions"`
}

// Decode extracts and parses the JSON object in text.
func Decode(text string) (map[string]any, error) {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrSchema, err)
	}
	return payload, nil
}

// ValidatePayload checks a decoded reply. Bullets must be a list of strings
// with at least minBullets acceptable entries and are cut to maxBullets.
// Malformed assumptions or questions are replaced with empty lists.
func ValidatePayload(payload map[string]any, minBullets, maxBullets int) (Payload, error) {
	if payload == nil {
		return Payload{}, fmt.Errorf("%w: payload is not an object", ErrSchema)
	}

	bullets, ok := stringList(payload["bullets"])
	if !ok {
		return Payload{}, fmt.Errorf("%w: 'bullets' must be a list of strings", ErrSchema)
	}
	bullets = filterAcceptable(bullets)
	if len(bullets) < minBullets {
		return Payload{}, fmt.Errorf("%w: need at least %d bullets, got %d", ErrSchema, minBullets, len(bullets))
	}
	if maxBullets > 0 && len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}

	assumptions, _ := stringList(payload["assumptions"])
	questions, _ := stringList(payload["missing_info_questions"])

	return Payload{
		Bullets:              bullets,
		Assumptions:          assumptions,
		MissingInfoQuestions: questions,
	}, nil
}

// stringList returns the trimmed non-blank strings of v. A missing key is an
// empty list; anything other than a list of strings is not ok.
func stringList(v any) ([]string, bool) {
	if v == nil {
		return []string{}, true
	}
	items, ok := v.([]any)
	if !ok {
		return []string{}, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return []string{}, false
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}
