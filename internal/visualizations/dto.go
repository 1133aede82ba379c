package visualizations

// IngestResponse is the 200 body for a processed delivery. viewUrl is the
// frontend route that renders the visualization; fullUrl is the absolute
// variant the chatbot hands to prospects.
type IngestResponse struct {
	Success       bool     `json:"success"`
	ID            string   `json:"id"`
	ViewURL       string   `json:"viewUrl"`
	FullURL       string   `json:"fullUrl"`
	Metrics       *Metrics `json:"metrics"`
	SolutionType  string   `json:"solutionType"`
	SolutionTitle string   `json:"solutionTitle"`
}

func toIngestResponse(rec Record, baseURL string) IngestResponse {
	viewURL := "/visualization?id=" + rec.ID
	return IngestResponse{
		Success:       true,
		ID:            rec.ID,
		ViewURL:       viewURL,
		FullURL:       baseURL + viewURL,
		Metrics:       rec.Metrics,
		SolutionType:  string(rec.Solution.Type),
		SolutionTitle: rec.Solution.Title,
	}
}
