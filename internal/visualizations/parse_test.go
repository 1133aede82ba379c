package visualizations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		kind        PayloadKind
	}{
		{"plain text by content type", "task:invoices", "text/plain", KindPlainText},
		{"plain text by shape", "task:invoices\ncurrent:3 hours", "", KindPlainText},
		{"legacy json", `{"recommendation":{"type":"time_saving"}}`, "application/json", KindLegacy},
		{"legacy json by state", `{"currentState":{}}`, "application/json", KindLegacy},
		{"lleverage by userId", `{"userId":"u1"}`, "application/json", KindLleverage},
		{"lleverage by efficiencyGain", `{"efficiencyGain":75}`, "application/json", KindLleverage},
		{"lleverage by analysisComplete", `{"analysisComplete":true}`, "application/json", KindLleverage},
		{"unknown object", `{"foo":"bar"}`, "application/json", KindUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, _, err := Classify([]byte(tc.body), tc.contentType)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, kind)
		})
	}
}

func TestClassifyMalformedJSON(t *testing.T) {
	_, _, err := Classify([]byte(`{"task":`), "application/json")
	var pErr *ParseError
	require.ErrorAs(t, err, &pErr)
}

func TestClassifyDeclaredJSONNonObject(t *testing.T) {
	// A declared-JSON body that is not an object is a structural problem;
	// it must not drift into the plain-text parser.
	for _, body := range []string{`[1,2]`, `null`, `"task:invoices"`, `42`} {
		t.Run(body, func(t *testing.T) {
			_, _, err := Classify([]byte(body), "application/json")
			var pErr *ParseError
			require.ErrorAs(t, err, &pErr, "body %s", body)
		})
	}
}

func TestParsePlainTextFixture(t *testing.T) {
	body := "task:invoices\ncurrent:3_hours\nfuture:20_minutes\ntype:time_saving\nfrequency:daily"
	rec, err := ParsePayload([]byte(body), "text/plain")
	require.NoError(t, err)

	assert.Equal(t, TypeTimeSaving, rec.Solution.Type)
	require.NotNil(t, rec.CurrentState.Metrics.TimeSpent)
	require.NotNil(t, rec.FutureState.Metrics.TimeSpent)
	assert.InDelta(t, 180, rec.CurrentState.Metrics.TimeSpent.Minutes, 1e-9)
	assert.InDelta(t, 20, rec.FutureState.Metrics.TimeSpent.Minutes, 1e-9)
	assert.Equal(t, "daily", rec.Frequency)
	assert.Positive(t, rec.Improvement.Percentage)
	assert.NotEmpty(t, rec.Solution.Title)
	assert.NotEmpty(t, rec.CurrentState.PainPoints)
	assert.NotEmpty(t, rec.FutureState.Benefits)
	assert.Equal(t, "2-4 weeks", rec.Timeline)
}

func TestParsePlainTextAccumulatesMissingFields(t *testing.T) {
	_, err := ParsePayload([]byte("frequency:daily"), "text/plain")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3) // task, current, future all reported at once
}

func TestParsePlainTextUnknownTypeRejected(t *testing.T) {
	body := "task:invoices\ncurrent:3 hours\nfuture:20 minutes\ntype:warp_speed"
	_, err := ParsePayload([]byte(body), "text/plain")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields[0], "warp_speed")
}

func TestParseLegacy(t *testing.T) {
	body := `{
		"userInfo": {"name": "Dana", "email": "dana@example.com", "company": "Acme"},
		"recommendation": {"type": "time_saving", "title": "Automate invoicing"},
		"currentState": {"description": "manual entry", "metrics": {"timeSpent": 6}},
		"futureState": {"metrics": {"timeSpent": 1}},
		"frequency": "daily"
	}`
	rec, err := ParsePayload([]byte(body), "application/json")
	require.NoError(t, err)

	assert.Equal(t, "Dana", rec.UserInfo.Name)
	assert.Equal(t, "Automate invoicing", rec.Solution.Title)
	// Legacy numeric timeSpent is hours per occurrence.
	assert.InDelta(t, 360, rec.CurrentState.Metrics.TimeSpent.Minutes, 1e-9)
	assert.InDelta(t, 60, rec.FutureState.Metrics.TimeSpent.Minutes, 1e-9)
	assert.InDelta(t, 83.33, rec.Improvement.Percentage, 0.01)
}

func TestParseLegacyFutureNotBetterRejected(t *testing.T) {
	body := `{
		"recommendation": {"type": "time_saving"},
		"currentState": {"metrics": {"timeSpent": 1}},
		"futureState": {"metrics": {"timeSpent": 6}}
	}`
	_, err := ParsePayload([]byte(body), "application/json")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields[0], "futureState.metrics.timeSpent")
}

func TestParseLegacyInvalidEmailRejected(t *testing.T) {
	body := `{
		"userInfo": {"email": "not-an-email"},
		"recommendation": {"type": "time_saving"}
	}`
	_, err := ParsePayload([]byte(body), "application/json")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields[0], "userInfo.email")
}

func TestParseUnknownShapeListsAllProblems(t *testing.T) {
	_, err := ParsePayload([]byte(`{"foo":"bar"}`), "application/json")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.GreaterOrEqual(t, len(vErr.Fields), 2)
}

func TestParseLleverageTypeLadder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SolutionType
	}{
		{"explicit savingType wins", `{"userId":"u1","savingType":"error_reduction","efficiencyGain":90}`, TypeErrorReduction},
		{"gain 70 and above", `{"userId":"u1","efficiencyGain":75}`, TypeTimeSaving},
		{"gain 40 to 69", `{"userId":"u1","efficiencyGain":55}`, TypeCapacityIncrease},
		{"gain 20 to 39", `{"userId":"u1","efficiencyGain":25}`, TypeCostReduction},
		{"gain below 20", `{"userId":"u1","efficiencyGain":5}`, TypeGeneric},
		{"no gain, big time saving", `{"userId":"u1","currentTime":100,"futureTime":10}`, TypeTimeSaving},
		{"no gain, moderate time saving", `{"userId":"u1","currentTime":100,"futureTime":60}`, TypeCapacityIncrease},
		{"no gain, small time saving", `{"userId":"u1","currentTime":100,"futureTime":90}`, TypeGeneric},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ParsePayload([]byte(tc.body), "application/json")
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.Solution.Type)
		})
	}
}

func TestParseLleverageDefaultSynthesis(t *testing.T) {
	rec, err := ParsePayload([]byte(`{"processName":"order intake","efficiencyGain":80}`), "application/json")
	require.NoError(t, err)

	require.NotNil(t, rec.CurrentState.Metrics.TimeSpent)
	require.NotNil(t, rec.FutureState.Metrics.TimeSpent)
	assert.InDelta(t, 120, rec.CurrentState.Metrics.TimeSpent.Minutes, 1e-9)
	assert.InDelta(t, 24, rec.FutureState.Metrics.TimeSpent.Minutes, 1e-9)
	assert.Contains(t, rec.Solution.Title, "order intake")
	assert.NotEmpty(t, rec.UserInfo.Email)
}

func TestConfidenceBands(t *testing.T) {
	tests := []struct {
		current, future float64
		want            float64
	}{
		{100, 5, 0.95},
		{100, 20, 0.85},
		{100, 40, 0.75},
		{100, 70, 0.65},
		{100, 90, 0.55},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, confidenceScore(tc.current, tc.future), 1e-9,
			"current=%v future=%v", tc.current, tc.future)
	}
}
