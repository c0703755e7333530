package translation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

// listSeparator joins array values the model returns for a text field.
const listSeparator = "; "

// ParseResponse decodes the completion text into a TranslationResponse.
// Text around the outermost JSON object (a code fence, a preamble) is ignored.
// Only translation is required and must be a string; the other fields are
// coerced to text when the model returns another JSON type.
func ParseResponse(raw string) (*domain.TranslationResponse, error) {
	body, err := extractJSON(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResponseParse, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResponseParse, err)
	}

	var translation string
	if err := json.Unmarshal(fields["translation"], &translation); err != nil || domain.IsBlank(translation) {
		return nil, fmt.Errorf("%w: translation is missing or not a string", domain.ErrResponseShape)
	}

	return &domain.TranslationResponse{
		Translation:              translation,
		Romaji:                   textValue(fields["romaji"]),
		DetectedSpeakerPronouns:  textValue(fields["detectedSpeakerPronouns"]),
		DetectedListenerPronouns: textValue(fields["detectedListenerPronouns"]),
		FormalityUsed:            textValue(fields["formalityUsed"]),
		Notes:                    textValue(fields["notes"]),
	}, nil
}

// textValue renders an optional field as text. Strings are kept, numbers and
// booleans use their JSON spelling, arrays are joined, null and objects are dropped.
func textValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s := textValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, listSeparator)
	case '{', 'n':
		return ""
	default:
		return string(raw)
	}
}

// extractJSON returns the span between the first '{' and the last '}'.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
