package visualizations

import (
	"fmt"
	"math"
	"strings"
)

// inferSolutionType applies the classification ladder: an explicit valid
// savingType wins, then efficiency-gain thresholds, then the share of time
// saved between the two snapshots.
func inferSolutionType(savingType string, efficiencyGain *float64, currentMin, futureMin float64) SolutionType {
	if t := SolutionType(strings.TrimSpace(savingType)); savingType != "" && t.Valid() {
		return t
	}
	if efficiencyGain != nil {
		switch g := *efficiencyGain; {
		case g >= 70:
			return TypeTimeSaving
		case g >= 40:
			return TypeCapacityIncrease
		case g >= 20:
			return TypeCostReduction
		}
		return TypeGeneric
	}
	if currentMin > 0 {
		switch pct := (currentMin - futureMin) / currentMin * 100; {
		case pct > 50:
			return TypeTimeSaving
		case pct > 20:
			return TypeCapacityIncrease
		}
	}
	return TypeGeneric
}

// confidenceScore maps the future/current time ratio onto five discrete
// bands; the bigger the reduction, the higher the confidence.
func confidenceScore(currentMin, futureMin float64) float64 {
	if currentMin <= 0 {
		return 0.55
	}
	switch ratio := futureMin / currentMin; {
	case ratio <= 0.1:
		return 0.95
	case ratio <= 0.25:
		return 0.85
	case ratio <= 0.5:
		return 0.75
	case ratio <= 0.75:
		return 0.65
	default:
		return 0.55
	}
}

// implementationTimelines is the fixed per-type rollout estimate shown to
// prospects.
var implementationTimelines = map[SolutionType]string{
	TypeTimeSaving:       "2-4 weeks",
	TypeErrorReduction:   "3-5 weeks",
	TypeCapacityIncrease: "4-6 weeks",
	TypeCostReduction:    "3-4 weeks",
	TypeResponseTime:     "2-3 weeks",
	TypeGeneric:          "4-8 weeks",
}

func implementationTimeline(t SolutionType) string {
	if tl, ok := implementationTimelines[t]; ok {
		return tl
	}
	return implementationTimelines[TypeGeneric]
}

func solutionTitle(t SolutionType, task string) string {
	task = taskOrDefault(task)
	switch t {
	case TypeTimeSaving:
		return fmt.Sprintf("Automate %s to reclaim your team's time", task)
	case TypeErrorReduction:
		return fmt.Sprintf("Eliminate manual errors in %s", task)
	case TypeCapacityIncrease:
		return fmt.Sprintf("Scale %s without adding headcount", task)
	case TypeCostReduction:
		return fmt.Sprintf("Cut the cost of %s", task)
	case TypeResponseTime:
		return fmt.Sprintf("Respond faster on %s", task)
	default:
		return fmt.Sprintf("Streamline %s with AI", task)
	}
}

func solutionDescription(t SolutionType, task string) string {
	task = taskOrDefault(task)
	switch t {
	case TypeTimeSaving:
		return fmt.Sprintf("An AI workflow takes over the repetitive parts of %s so your team only handles exceptions.", task)
	case TypeErrorReduction:
		return fmt.Sprintf("Automated checks catch mistakes in %s before they reach customers.", task)
	case TypeCapacityIncrease:
		return fmt.Sprintf("Automation absorbs volume growth in %s, freeing capacity for higher-value work.", task)
	case TypeCostReduction:
		return fmt.Sprintf("Reducing manual effort in %s lowers the recurring cost of running it.", task)
	case TypeResponseTime:
		return fmt.Sprintf("Instant automated handling shortens turnaround on %s dramatically.", task)
	default:
		return fmt.Sprintf("AI-assisted automation simplifies %s end to end.", task)
	}
}

func synthesizePainPoints(t SolutionType, task string) []string {
	task = taskOrDefault(task)
	points := []string{
		fmt.Sprintf("Hours lost every week on %s", task),
		"Work is repetitive and draining for the team",
	}
	switch t {
	case TypeErrorReduction:
		points = append(points, "Manual handling keeps introducing costly mistakes")
	case TypeCapacityIncrease:
		points = append(points, "Growth is capped by how much the team can process")
	case TypeResponseTime:
		points = append(points, "Customers wait too long for a response")
	default:
		points = append(points, "Skilled people are stuck doing low-value work")
	}
	return points
}

func synthesizeBenefits(t SolutionType, task string) []string {
	task = taskOrDefault(task)
	benefits := []string{
		fmt.Sprintf("%s runs largely hands-free", strings.ToUpper(task[:1]) + task[1:]),
		"Team time shifts to work that moves the business",
	}
	switch t {
	case TypeErrorReduction:
		benefits = append(benefits, "Consistent output with errors caught automatically")
	case TypeCapacityIncrease:
		benefits = append(benefits, "Same team handles multiples of today's volume")
	case TypeResponseTime:
		benefits = append(benefits, "Responses go out in minutes instead of hours")
	default:
		benefits = append(benefits, "Results are predictable and auditable")
	}
	return benefits
}

func improvementDescription(pct float64) string {
	return fmt.Sprintf("%.0f%% reduction in time spent", pct)
}

func taskOrDefault(task string) string {
	task = strings.TrimSpace(task)
	if task == "" {
		return "this process"
	}
	return task
}

// occurrencesPerWeek converts a reported frequency into weekly occurrences.
// Daily means work days. Unknown or absent frequencies count as daily, which
// is what the chatbot sends for the vast majority of processes.
func occurrencesPerWeek(frequency string) float64 {
	switch strings.ToLower(strings.TrimSpace(frequency)) {
	case "weekly":
		return 1
	case "monthly":
		return 1 / WeeksPerMonth
	default:
		return 5
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
