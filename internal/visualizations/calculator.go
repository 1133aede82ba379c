package visualizations

import "math"

// Fixed business constants. These are contract values shared with the
// frontend copy, not tunables.
const (
	WeeksPerMonth = 4.33
	WeeksPerYear  = 52.0
	// HourlyRate prices saved hours when no explicit cost figures arrive.
	HourlyRate = 150.0
	// ImplementationCost is the assumed one-off automation cost.
	ImplementationCost = 5000.0
)

// PeriodFigures carries hours and cost at weekly, monthly and yearly
// granularity. Monthly and yearly are always exact multiples of weekly.
type PeriodFigures struct {
	HoursPerWeek  float64 `json:"hoursPerWeek"`
	HoursPerMonth float64 `json:"hoursPerMonth"`
	HoursPerYear  float64 `json:"hoursPerYear"`
	CostPerWeek   float64 `json:"costPerWeek"`
	CostPerMonth  float64 `json:"costPerMonth"`
	CostPerYear   float64 `json:"costPerYear"`
}

// ROI summarizes the payback math. BreakEvenWeeks and YearOneROI are nil,
// not zero, when weekly savings are non-positive: null signals "cannot
// compute" to the frontend.
type ROI struct {
	ImplementationCost float64 `json:"implementationCost"`
	BreakEvenWeeks     *int    `json:"breakEvenWeeks"`
	YearOneROI         *int    `json:"yearOneROI"`
}

// Metrics is the computed block attached to every stored record.
type Metrics struct {
	Current PeriodFigures `json:"current"`
	Future  PeriodFigures `json:"future"`
	Savings PeriodFigures `json:"savings"`
	ROI     ROI           `json:"roi"`
}

// CalculateMetrics derives the savings and ROI block from the record's two
// time snapshots. It returns nil when either snapshot lacks a time figure.
func CalculateMetrics(rec *Record) *Metrics {
	cur, fut := rec.CurrentState.Metrics.TimeSpent, rec.FutureState.Metrics.TimeSpent
	if cur == nil || fut == nil {
		return nil
	}
	perWeek := occurrencesPerWeek(rec.Frequency)

	current := periodFigures(cur.Minutes/60*perWeek, rec.CurrentState.Metrics.Cost)
	future := periodFigures(fut.Minutes/60*perWeek, rec.FutureState.Metrics.Cost)

	// Monthly and yearly are computed from the weekly figure, never rounded
	// independently, so they stay exact x4.33 / x52 multiples.
	hoursSaved := roundTo(current.HoursPerWeek-future.HoursPerWeek, 2)
	weeklyCostSaved := roundTo(current.CostPerWeek-future.CostPerWeek, 2)
	savings := PeriodFigures{
		HoursPerWeek:  hoursSaved,
		HoursPerMonth: hoursSaved * WeeksPerMonth,
		HoursPerYear:  hoursSaved * WeeksPerYear,
		CostPerWeek:   weeklyCostSaved,
		CostPerMonth:  weeklyCostSaved * WeeksPerMonth,
		CostPerYear:   weeklyCostSaved * WeeksPerYear,
	}

	return &Metrics{
		Current: current,
		Future:  future,
		Savings: savings,
		ROI:     calculateROI(weeklyCostSaved),
	}
}

// periodFigures expands weekly hours into the three granularities. Explicit
// snapshot costs are weekly figures and take precedence over the hourly
// rate.
func periodFigures(hoursPerWeek float64, explicitWeeklyCost *float64) PeriodFigures {
	costPerWeek := hoursPerWeek * HourlyRate
	if explicitWeeklyCost != nil {
		costPerWeek = *explicitWeeklyCost
	}
	hoursPerWeek = roundTo(hoursPerWeek, 2)
	costPerWeek = roundTo(costPerWeek, 2)
	return PeriodFigures{
		HoursPerWeek:  hoursPerWeek,
		HoursPerMonth: hoursPerWeek * WeeksPerMonth,
		HoursPerYear:  hoursPerWeek * WeeksPerYear,
		CostPerWeek:   costPerWeek,
		CostPerMonth:  costPerWeek * WeeksPerMonth,
		CostPerYear:   costPerWeek * WeeksPerYear,
	}
}

func calculateROI(weeklyCostSaved float64) ROI {
	roi := ROI{ImplementationCost: ImplementationCost}
	if weeklyCostSaved <= 0 {
		return roi
	}
	breakEven := int(math.Ceil(ImplementationCost / weeklyCostSaved))
	yearly := weeklyCostSaved * WeeksPerYear
	yearOne := int(math.Round((yearly - ImplementationCost) / ImplementationCost * 100))
	roi.BreakEvenWeeks = &breakEven
	roi.YearOneROI = &yearOne
	return roi
}
