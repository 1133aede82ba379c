package visualizations

import (
	"fmt"
	"strings"
)

// parsePlainText handles the key:value line format the chatbot falls back
// to when it cannot emit JSON:
//
//	task:invoices
//	current:3_hours
//	future:20_minutes
//	type:time_saving
//	frequency:daily
func parsePlainText(raw []byte) (Record, error) {
	fields := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	var missing []string
	for _, required := range []string{"task", "current", "future"} {
		if fields[required] == "" {
			missing = append(missing, required+": required")
		}
	}
	if rawType := fields["type"]; rawType != "" && !SolutionType(rawType).Valid() {
		missing = append(missing, fmt.Sprintf("type: %q is not a recognized solution type", rawType))
	}
	if len(missing) > 0 {
		return Record{}, &ValidationError{Fields: missing}
	}

	task := fields["task"]
	current := ParseTimeValue(fields["current"])
	future := ParseTimeValue(fields["future"])
	solutionType := inferSolutionType(fields["type"], nil, current.Minutes, future.Minutes)

	rec := Record{
		UserInfo:  plainTextUserInfo(fields),
		Frequency: defaultString(fields["frequency"], "daily"),
		Solution: Solution{
			Type:        solutionType,
			Title:       solutionTitle(solutionType, task),
			Description: solutionDescription(solutionType, task),
		},
		CurrentState: State{
			Description: fmt.Sprintf("Manual handling of %s", task),
			PainPoints:  synthesizePainPoints(solutionType, task),
			Metrics:     StateMetrics{TimeSpent: &current},
		},
		FutureState: State{
			Description: fmt.Sprintf("Automated handling of %s", task),
			Benefits:    synthesizeBenefits(solutionType, task),
			Metrics:     StateMetrics{TimeSpent: &future},
		},
		Timeline:   implementationTimeline(solutionType),
		Confidence: confidenceScore(current.Minutes, future.Minutes),
	}
	return rec, nil
}

func plainTextUserInfo(fields map[string]string) UserInfo {
	return UserInfo{
		Name:     defaultString(fields["name"], "Anonymous"),
		Email:    defaultString(fields["email"], "anonymous@spaik.io"),
		Company:  fields["company"],
		Industry: fields["industry"],
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
