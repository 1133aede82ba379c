package visualizations

import (
	"regexp"
	"strings"
	"time"
)

// SolutionType classifies the automation opportunity a record describes.
type SolutionType string

const (
	TypeTimeSaving       SolutionType = "time_saving"
	TypeErrorReduction   SolutionType = "error_reduction"
	TypeCapacityIncrease SolutionType = "capacity_increase"
	TypeCostReduction    SolutionType = "cost_reduction"
	TypeResponseTime     SolutionType = "response_time"
	TypeGeneric          SolutionType = "generic"
)

// Valid reports whether t is one of the six recognized solution types.
func (t SolutionType) Valid() bool {
	switch t {
	case TypeTimeSaving, TypeErrorReduction, TypeCapacityIncrease,
		TypeCostReduction, TypeResponseTime, TypeGeneric:
		return true
	}
	return false
}

// UserInfo identifies the lead a record belongs to.
type UserInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// Solution describes the recommended automation.
type Solution struct {
	Type        SolutionType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
}

// TimeValue is a duration normalized to minutes with the source unit
// retained for display formatting.
type TimeValue struct {
	Minutes float64 `json:"minutes"`
	Unit    string  `json:"unit"`
	Raw     string  `json:"raw,omitempty"`
}

// StateMetrics holds the measurable figures of a process snapshot. All
// fields are optional; the calculator works off whatever is present.
type StateMetrics struct {
	TimeSpent    *TimeValue `json:"timeSpent,omitempty"`
	ErrorRate    *float64   `json:"errorRate,omitempty"`
	Capacity     *float64   `json:"capacity,omitempty"`
	Cost         *float64   `json:"cost,omitempty"`
	ResponseTime *TimeValue `json:"responseTime,omitempty"`
}

// State is one side of the before/after comparison.
type State struct {
	Description string       `json:"description,omitempty"`
	PainPoints  []string     `json:"painPoints,omitempty"`
	Benefits    []string     `json:"benefits,omitempty"`
	Metrics     StateMetrics `json:"metrics"`
}

// Improvement is derived from the two states, never set independently.
type Improvement struct {
	Percentage    float64 `json:"percentage"`
	AbsoluteValue float64 `json:"absoluteValue"`
	Unit          string  `json:"unit"`
	Description   string  `json:"description"`
}

// Record is the canonical unit processed and stored. Records are immutable
// after creation; the store only appends and evicts.
type Record struct {
	ID           string       `json:"id"`
	UserInfo     UserInfo     `json:"userInfo"`
	Solution     Solution     `json:"solution"`
	CurrentState State        `json:"currentState"`
	FutureState  State        `json:"futureState"`
	Improvement  Improvement  `json:"improvement"`
	Metrics      *Metrics     `json:"metrics,omitempty"`
	Frequency    string       `json:"frequency,omitempty"`
	Timeline     string       `json:"implementationTimeline,omitempty"`
	Confidence   float64      `json:"confidence,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the same loose pattern the frontend uses.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// validate checks the cross-field invariants after parsing. Problems are
// accumulated so the caller sees every one at once.
func (r *Record) validate() error {
	var fields []string
	if !r.Solution.Type.Valid() {
		fields = append(fields, "solution.type: must be one of time_saving, error_reduction, capacity_increase, cost_reduction, response_time, generic")
	}
	if r.UserInfo.Email == "" {
		fields = append(fields, "userInfo.email: required")
	} else if !ValidEmail(r.UserInfo.Email) {
		fields = append(fields, "userInfo.email: invalid format")
	}
	cur, fut := r.CurrentState.Metrics.TimeSpent, r.FutureState.Metrics.TimeSpent
	if cur != nil && fut != nil && fut.Minutes >= cur.Minutes {
		fields = append(fields, "futureState.metrics.timeSpent: must be less than currentState.metrics.timeSpent")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// deriveImprovement fills the computed improvement block from the two time
// snapshots.
func (r *Record) deriveImprovement() {
	cur, fut := r.CurrentState.Metrics.TimeSpent, r.FutureState.Metrics.TimeSpent
	if cur == nil || fut == nil || cur.Minutes <= 0 {
		return
	}
	pct := (cur.Minutes - fut.Minutes) / cur.Minutes * 100
	r.Improvement = Improvement{
		Percentage:    roundTo(pct, 2),
		AbsoluteValue: roundTo(cur.Minutes-fut.Minutes, 2),
		Unit:          "minutes",
		Description:   improvementDescription(pct),
	}
}
