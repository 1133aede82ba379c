package visualizations

import (
	"encoding/json"
	"fmt"
)

// lleveragePayload is the shape emitted by the Lleverage chatbot flow. It
// is recognized by any of the marker fields and leans heavily on default
// synthesis since the flow often reports only a process name and an
// efficiency gain.
type lleveragePayload struct {
	UserID           string          `json:"userId"`
	SessionID        string          `json:"sessionId"`
	ProcessName      string          `json:"processName"`
	EfficiencyGain   *float64        `json:"efficiencyGain"`
	AnalysisComplete *bool           `json:"analysisComplete"`
	SavingType       string          `json:"savingType"`
	CurrentTime      json.RawMessage `json:"currentTime"`
	FutureTime       json.RawMessage `json:"futureTime"`
	Frequency        string          `json:"frequency"`
	UserName         string          `json:"userName"`
	UserEmail        string          `json:"userEmail"`
	Company          string          `json:"company"`
	Industry         string          `json:"industry"`
}

// Baseline minutes assumed for a Lleverage process that reports no explicit
// current time.
const lleverageDefaultCurrentMinutes = 120

func parseLleverage(obj map[string]json.RawMessage) (Record, error) {
	buf, err := json.Marshal(obj)
	if err != nil {
		return Record{}, &ParseError{Reason: "re-encoding payload", Err: err}
	}
	var p lleveragePayload
	if err := json.Unmarshal(buf, &p); err != nil {
		return Record{}, &ParseError{Reason: "decoding Lleverage payload", Err: err}
	}

	task := defaultString(p.ProcessName, "your process")

	current := lleverageTimeValue(p.CurrentTime)
	if current == nil {
		tv := MinutesValue(lleverageDefaultCurrentMinutes)
		current = &tv
	}
	future := lleverageTimeValue(p.FutureTime)
	if future == nil {
		tv := MinutesValue(synthesizeFutureMinutes(current.Minutes, p.EfficiencyGain))
		future = &tv
	}

	solutionType := inferSolutionType(p.SavingType, p.EfficiencyGain, current.Minutes, future.Minutes)

	rec := Record{
		UserInfo: UserInfo{
			Name:     defaultString(p.UserName, lleverageUserName(p.UserID)),
			Email:    defaultString(p.UserEmail, "anonymous@spaik.io"),
			Company:  p.Company,
			Industry: p.Industry,
		},
		Frequency: defaultString(p.Frequency, "daily"),
		Solution: Solution{
			Type:        solutionType,
			Title:       solutionTitle(solutionType, task),
			Description: solutionDescription(solutionType, task),
		},
		CurrentState: State{
			Description: fmt.Sprintf("Manual handling of %s", task),
			PainPoints:  synthesizePainPoints(solutionType, task),
			Metrics:     StateMetrics{TimeSpent: current},
		},
		FutureState: State{
			Description: fmt.Sprintf("Automated handling of %s", task),
			Benefits:    synthesizeBenefits(solutionType, task),
			Metrics:     StateMetrics{TimeSpent: future},
		},
		Timeline:   implementationTimeline(solutionType),
		Confidence: confidenceScore(current.Minutes, future.Minutes),
	}
	return rec, nil
}

// lleverageTimeValue decodes a time field: bare numbers are minutes, strings
// go through the time-expression parser.
func lleverageTimeValue(raw json.RawMessage) *TimeValue {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		tv := MinutesValue(n)
		return &tv
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		tv := ParseTimeValue(s)
		return &tv
	}
	return nil
}

// synthesizeFutureMinutes projects the automated time from the reported
// efficiency gain, halving the current time when no gain was reported.
func synthesizeFutureMinutes(currentMinutes float64, gain *float64) float64 {
	if gain != nil && *gain > 0 && *gain < 100 {
		return roundTo(currentMinutes*(1-*gain/100), 2)
	}
	if gain != nil && *gain >= 100 {
		return 0
	}
	return roundTo(currentMinutes*0.5, 2)
}

func lleverageUserName(userID string) string {
	if userID == "" {
		return "Anonymous"
	}
	return "Lleverage user " + userID
}
