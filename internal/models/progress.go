package models

// JobProgress holds the counters for one fetch+score run. All counters are
// monotonically non-decreasing for the lifetime of the job.
type JobProgress struct {
	JobID        string `json:"jobId"`
	TotalPages   int    `json:"totalPages"`
	FetchedPages int    `json:"fetchedPages"`
	TotalTexts   int    `json:"totalTexts"`
	ScoredTexts  int    `json:"scoredTexts"`
}
