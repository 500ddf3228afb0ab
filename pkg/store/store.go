// Package store keeps render jobs submitted through the API.
//
// A [Job] records the request, its status, summary statistics and the
// produced artifacts. Two backends implement [Store]:
//   - [MemoryStore]: in-process map, for development and tests
//   - [MongoStore]: MongoDB collection with a TTL index, for deployments
//
// Jobs expire after [DefaultTTL]. Memory stores drop expired jobs on read and
// on Cleanup; MongoDB removes them through the expires_at TTL index.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/pipeline"
)

// DefaultTTL is how long a job and its artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultListLimit caps List when the caller passes a limit <= 0.
const DefaultListLimit = 50

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one render request and its outcome.
type Job struct {
	ID         string             `json:"id" bson:"_id"`
	Status     Status             `json:"status" bson:"status"`
	Request    pipeline.Options   `json:"request" bson:"request"`
	Formats    []string           `json:"formats" bson:"formats"`
	LayoutHash string             `json:"layout_hash,omitempty" bson:"layout_hash,omitempty"`
	Stats      pipeline.Stats     `json:"stats" bson:"stats"`
	CacheInfo  pipeline.CacheInfo `json:"cache" bson:"cache"`
	Error      string             `json:"error,omitempty" bson:"error,omitempty"`
	Artifacts  map[string][]byte  `json:"-" bson:"artifacts,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
	ExpiresAt  time.Time          `json:"expires_at" bson:"expires_at"`
}

// NewJob creates a pending job with a fresh uuid.
func NewJob(req pipeline.Options, ttl time.Duration) *Job {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Request:   req,
		Formats:   req.Formats,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the job has passed its expiry time.
func (j *Job) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// Done reports whether the job has finished, successfully or not.
func (j *Job) Done() bool {
	return j.Status == StatusSucceeded || j.Status == StatusFailed
}

// Complete records a successful pipeline result.
func (j *Job) Complete(res *pipeline.Result) {
	j.Status = StatusSucceeded
	j.LayoutHash = res.LayoutHash
	j.Stats = res.Stats
	j.CacheInfo = res.CacheInfo
	j.Artifacts = res.Artifacts
	j.UpdatedAt = time.Now().UTC()
}

// Fail records a pipeline error.
func (j *Job) Fail(err error) {
	j.Status = StatusFailed
	j.Error = errors.UserMessage(err)
	j.UpdatedAt = time.Now().UTC()
}

// Artifact returns the artifact for format, or NOT_FOUND.
func (j *Job) Artifact(format string) ([]byte, error) {
	data, ok := j.Artifacts[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "job %s has no %s artifact", j.ID, format)
	}
	return data, nil
}

// Summary returns a copy of j without artifact payloads.
func (j *Job) Summary() *Job {
	c := *j
	c.Artifacts = nil
	return &c
}

// Store is the interface for job storage backends.
type Store interface {
	// Put inserts or replaces a job.
	Put(ctx context.Context, job *Job) error

	// Get retrieves a job by ID with its artifacts.
	// Returns a NOT_FOUND error if the job doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Job, error)

	// List returns job summaries, newest first.
	List(ctx context.Context, limit int) ([]*Job, error)

	// Delete removes a job. Deleting a missing job is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired jobs (may be a no-op when the backend expires them itself).
	Cleanup(ctx context.Context) error

	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "job %s not found", id)
}
