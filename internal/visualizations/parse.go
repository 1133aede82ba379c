package visualizations

// ParsePayload converts raw webhook bytes into a validated Record. The
// shape is sniffed once and each shape has its own parser so defaulting
// rules stay isolated.
func ParsePayload(raw []byte, contentType string) (Record, error) {
	kind, obj, err := Classify(raw, contentType)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	switch kind {
	case KindPlainText:
		rec, err = parsePlainText(raw)
	case KindLegacy:
		rec, err = parseLegacy(obj)
	case KindLleverage:
		rec, err = parseLleverage(obj)
	default:
		return Record{}, &ValidationError{Fields: []string{
			"payload: matches neither the recommendation, plain-text nor Lleverage shape",
			"recommendation: required for the legacy JSON shape",
			"userId/sessionId/processName/efficiencyGain/analysisComplete: at least one required for the Lleverage shape",
		}}
	}
	if err != nil {
		return Record{}, err
	}

	rec.deriveImprovement()
	if err := rec.validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}
