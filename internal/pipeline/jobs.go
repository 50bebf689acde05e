package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/saiganesh-d/doccompare/internal/compare"
)

// JobStatus represents the state of a comparison job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusComparing JobStatus = "comparing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document comparison. Two uploaded
// files ride along until the worker has parsed them.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	UserID string `json:"user_id"`

	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	FilenameA string    `json:"filename_a"`
	FilenameB string    `json:"filename_b"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileA  []byte
	fileB  []byte
	report *compare.Report
	errors []string
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetFiles stores the raw uploaded bytes for both documents.
func (j *Job) SetFiles(a, b []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileA = a
	j.fileB = b
}

// Files returns the raw uploaded bytes.
func (j *Job) Files() (a, b []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileA, j.fileB
}

// SetReport attaches the finished comparison and releases the uploads.
func (j *Job) SetReport(r *compare.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = r
	j.fileA = nil
	j.fileB = nil
	j.UpdatedAt = time.Now()
}

// Report returns the finished comparison, or nil while running.
func (j *Job) Report() *compare.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	UserID    string    `json:"user_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	FilenameA string    `json:"filename_a"`
	FilenameB string    `json:"filename_b"`
	Errors    []string  `json:"errors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:        j.ID,
		UserID:    j.UserID,
		Status:    j.Status,
		Phase:     j.Phase,
		FilenameA: j.FilenameA,
		FilenameB: j.FilenameB,
		// Non-nil so the status JSON carries [] rather than null.
		Errors: append([]string{}, j.errors...),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
