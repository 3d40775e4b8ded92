package progress

import (
	"sync"

	"github.com/sentitube/sentitube/internal/models"
)

// Update is a partial set of counter values to merge into a job's progress.
// Nil fields are left untouched; counters never decrease.
type Update struct {
	TotalPages   *int
	FetchedPages *int
	TotalTexts   *int
	ScoredTexts  *int
}

// Tracker keeps per-job progress counters for polling. Entries are never
// deleted; the map grows for the lifetime of the process.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]models.JobProgress
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]models.JobProgress)}
}

// Start initializes a job's counters to zero. Starting an existing job id
// resets it; uniqueness is the caller's responsibility.
func (t *Tracker) Start(jobID string) {
	if jobID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[jobID] = models.JobProgress{JobID: jobID}
}

// Apply merges an update into the job's counters, keeping them
// non-decreasing. Updates for unknown jobs create the entry.
func (t *Tracker) Apply(jobID string, u Update) {
	if jobID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.jobs[jobID]
	p.JobID = jobID
	merge(&p.TotalPages, u.TotalPages)
	merge(&p.FetchedPages, u.FetchedPages)
	merge(&p.TotalTexts, u.TotalTexts)
	merge(&p.ScoredTexts, u.ScoredTexts)
	t.jobs[jobID] = p
}

// Read returns the job's counters, or zeroed counters for an unknown id.
func (t *Tracker) Read(jobID string) models.JobProgress {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if p, ok := t.jobs[jobID]; ok {
		return p
	}
	return models.JobProgress{JobID: jobID}
}

func merge(dst *int, src *int) {
	if src != nil && *src > *dst {
		*dst = *src
	}
}

// Int is a convenience for building Updates from literals.
func Int(v int) *int { return &v }
