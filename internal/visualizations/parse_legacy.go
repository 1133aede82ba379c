package visualizations

import (
	"encoding/json"
)

// legacyPayload is the original webhook JSON shape: a recommendation object
// plus optional before/after states. It passes through with minimal
// reshaping.
type legacyPayload struct {
	UserInfo       *UserInfo `json:"userInfo"`
	Recommendation *struct {
		Type        string `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"recommendation"`
	CurrentState *legacyState `json:"currentState"`
	FutureState  *legacyState `json:"futureState"`
	Frequency    string       `json:"frequency"`
	Task         string       `json:"task"`
}

type legacyState struct {
	Description string   `json:"description"`
	PainPoints  []string `json:"painPoints"`
	Benefits    []string `json:"benefits"`
	Metrics     struct {
		TimeSpent    json.RawMessage `json:"timeSpent"`
		ErrorRate    *float64        `json:"errorRate"`
		Capacity     *float64        `json:"capacity"`
		Cost         *float64        `json:"cost"`
		ResponseTime json.RawMessage `json:"responseTime"`
	} `json:"metrics"`
}

func parseLegacy(obj map[string]json.RawMessage) (Record, error) {
	buf, err := json.Marshal(obj)
	if err != nil {
		return Record{}, &ParseError{Reason: "re-encoding payload", Err: err}
	}
	var p legacyPayload
	if err := json.Unmarshal(buf, &p); err != nil {
		return Record{}, &ParseError{Reason: "decoding legacy payload", Err: err}
	}

	var missing []string
	if p.Recommendation == nil {
		missing = append(missing, "recommendation: required")
	} else if p.Recommendation.Type == "" {
		missing = append(missing, "recommendation.type: required")
	}
	if len(missing) > 0 {
		return Record{}, &ValidationError{Fields: missing}
	}

	task := defaultString(p.Task, "this process")
	solutionType := SolutionType(p.Recommendation.Type)

	rec := Record{
		UserInfo:  legacyUserInfo(p.UserInfo),
		Frequency: defaultString(p.Frequency, "daily"),
		Solution: Solution{
			Type:        solutionType,
			Title:       defaultString(p.Recommendation.Title, solutionTitle(solutionType, task)),
			Description: defaultString(p.Recommendation.Description, solutionDescription(solutionType, task)),
		},
	}

	rec.CurrentState = legacyStateToModel(p.CurrentState)
	rec.FutureState = legacyStateToModel(p.FutureState)
	if len(rec.CurrentState.PainPoints) == 0 {
		rec.CurrentState.PainPoints = synthesizePainPoints(solutionType, task)
	}
	if len(rec.FutureState.Benefits) == 0 {
		rec.FutureState.Benefits = synthesizeBenefits(solutionType, task)
	}

	cur, fut := rec.CurrentState.Metrics.TimeSpent, rec.FutureState.Metrics.TimeSpent
	if cur != nil && fut != nil {
		rec.Confidence = confidenceScore(cur.Minutes, fut.Minutes)
	}
	rec.Timeline = implementationTimeline(solutionType)
	return rec, nil
}

func legacyUserInfo(info *UserInfo) UserInfo {
	if info == nil {
		return UserInfo{Name: "Anonymous", Email: "anonymous@spaik.io"}
	}
	out := *info
	out.Name = defaultString(out.Name, "Anonymous")
	out.Email = defaultString(out.Email, "anonymous@spaik.io")
	return out
}

func legacyStateToModel(s *legacyState) State {
	if s == nil {
		return State{}
	}
	out := State{
		Description: s.Description,
		PainPoints:  s.PainPoints,
		Benefits:    s.Benefits,
		Metrics: StateMetrics{
			ErrorRate: s.Metrics.ErrorRate,
			Capacity:  s.Metrics.Capacity,
			Cost:      s.Metrics.Cost,
		},
	}
	out.Metrics.TimeSpent = legacyTimeValue(s.Metrics.TimeSpent)
	out.Metrics.ResponseTime = legacyTimeValue(s.Metrics.ResponseTime)
	return out
}

// legacyTimeValue decodes a timeSpent wire value. Legacy numeric values are
// hours per occurrence (the chatbot reports daily hours); string values go
// through the normal time-expression parser.
func legacyTimeValue(raw json.RawMessage) *TimeValue {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		tv := HoursValue(n)
		return &tv
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		tv := ParseTimeValue(s)
		return &tv
	}
	return nil
}
