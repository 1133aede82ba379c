package visualizations

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PayloadKind discriminates the three wire shapes the webhook accepts.
type PayloadKind int

const (
	KindUnknown PayloadKind = iota
	KindPlainText
	KindLegacy
	KindLleverage
)

func (k PayloadKind) String() string {
	switch k {
	case KindPlainText:
		return "plain_text"
	case KindLegacy:
		return "legacy_json"
	case KindLleverage:
		return "lleverage_json"
	}
	return "unknown"
}

// lleverageMarkers are the fields whose presence selects the Lleverage shape.
var lleverageMarkers = []string{"userId", "sessionId", "processName", "efficiencyGain", "analysisComplete"}

// Classify sniffs the payload shape from the raw bytes and declared content
// type. For JSON payloads the decoded object is returned so the selected
// parser does not decode twice. Malformed JSON is a parse error; a JSON
// object matching neither shape is reported as KindUnknown and left for the
// parser to turn into an accumulated validation error.
func Classify(raw []byte, contentType string) (PayloadKind, map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	ct := normalizeContentType(contentType)

	if ct == "text/plain" || (ct != "application/json" && len(trimmed) > 0 && trimmed[0] != '{') {
		return KindPlainText, nil, nil
	}
	// Declared JSON that is not an object (array, string, null) is a
	// structural problem, not a missing-fields one.
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return KindUnknown, nil, &ParseError{Reason: "JSON payload must be an object"}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return KindUnknown, nil, &ParseError{Reason: "malformed JSON", Err: err}
	}

	for _, marker := range lleverageMarkers {
		if _, ok := obj[marker]; ok {
			return KindLleverage, obj, nil
		}
	}
	if _, ok := obj["recommendation"]; ok {
		return KindLegacy, obj, nil
	}
	// A bare task/current/future object is the legacy shape's loose cousin;
	// treat it as legacy and let field validation accumulate what is missing.
	if _, ok := obj["currentState"]; ok {
		return KindLegacy, obj, nil
	}
	return KindUnknown, obj, nil
}

func normalizeContentType(contentType string) string {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// supportedContentType gates the declared content type before parsing.
// An absent content type is allowed; shape sniffing handles it.
func supportedContentType(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "", "application/json", "text/plain":
		return true
	}
	return false
}
