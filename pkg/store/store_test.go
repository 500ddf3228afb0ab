package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/pipeline"
)

func TestNewJob(t *testing.T) {
	req := pipeline.Options{Rows: 2, Cols: 3, Formats: []string{"svg", "obj"}}
	job := NewJob(req, 0)

	if job.ID == "" {
		t.Fatal("empty job id")
	}
	if err := errors.ValidateJobID(job.ID); err != nil {
		t.Errorf("generated id rejected: %v", err)
	}
	if job.Status != StatusPending {
		t.Errorf("status = %q, want pending", job.Status)
	}
	if got := job.ExpiresAt.Sub(job.CreatedAt); got != DefaultTTL {
		t.Errorf("ttl = %v, want %v", got, DefaultTTL)
	}
	if len(job.Formats) != 2 {
		t.Errorf("formats = %v", job.Formats)
	}
	if job.Done() {
		t.Error("pending job reported done")
	}
}

func TestJobCompleteAndFail(t *testing.T) {
	job := NewJob(pipeline.Options{}, time.Hour)
	job.Complete(&pipeline.Result{
		LayoutHash: "abc",
		Artifacts:  map[string][]byte{"svg": []byte("<svg/>")},
		Stats:      pipeline.Stats{Sites: 4},
	})
	if job.Status != StatusSucceeded || !job.Done() {
		t.Fatalf("status = %q", job.Status)
	}
	data, err := job.Artifact("svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("Artifact(svg) = %q, %v", data, err)
	}
	if _, err := job.Artifact("png"); !errors.IsNotFound(err) {
		t.Errorf("Artifact(png) err = %v, want not found", err)
	}
	if s := job.Summary(); s.Artifacts != nil || job.Artifacts == nil {
		t.Error("Summary should drop artifacts without mutating the job")
	}

	failed := NewJob(pipeline.Options{}, time.Hour)
	failed.Fail(errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", "gif"))
	if failed.Status != StatusFailed {
		t.Errorf("status = %q, want failed", failed.Status)
	}
	if failed.Error != `unknown format "gif"` {
		t.Errorf("error = %q", failed.Error)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	job := NewJob(pipeline.Options{Rows: 1, Cols: 1}, time.Hour)
	if err := s.Put(ctx, job); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != job.ID || got.Request.Rows != 1 {
		t.Errorf("Get = %+v", got)
	}

	// stored copies are independent of the caller's job
	job.Status = StatusFailed
	got, _ = s.Get(ctx, job.ID)
	if got.Status != StatusPending {
		t.Errorf("stored status changed to %q", got.Status)
	}

	if _, err := s.Get(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("Get(missing) err = %v, want not found", err)
	}

	if err := s.Delete(ctx, job.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, job.ID); !errors.IsNotFound(err) {
		t.Errorf("Get after delete err = %v", err)
	}
	if err := s.Delete(ctx, job.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	var ids []string
	for i := range 5 {
		job := NewJob(pipeline.Options{}, time.Hour)
		job.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		job.Artifacts = map[string][]byte{"svg": []byte("x")}
		ids = append(ids, job.ID)
		if err := s.Put(ctx, job); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{limit: 2, want: []string{ids[4], ids[3]}},
		{limit: 0, want: []string{ids[4], ids[3], ids[2], ids[1], ids[0]}},
		{limit: 10, want: []string{ids[4], ids[3], ids[2], ids[1], ids[0]}},
	}
	for _, tt := range tests {
		jobs, err := s.List(ctx, tt.limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(jobs) != len(tt.want) {
			t.Fatalf("List(%d) returned %d jobs, want %d", tt.limit, len(jobs), len(tt.want))
		}
		for i, j := range jobs {
			if j.ID != tt.want[i] {
				t.Errorf("List(%d)[%d] = %s, want %s", tt.limit, i, j.ID, tt.want[i])
			}
			if j.Artifacts != nil {
				t.Errorf("List(%d)[%d] carries artifacts", tt.limit, i)
			}
		}
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	live := NewJob(pipeline.Options{}, time.Hour)
	dead := NewJob(pipeline.Options{}, time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	_ = s.Put(ctx, live)
	_ = s.Put(ctx, dead)

	if _, err := s.Get(ctx, dead.ID); !errors.IsNotFound(err) {
		t.Errorf("expired job err = %v, want not found", err)
	}
	jobs, _ := s.List(ctx, 0)
	if len(jobs) != 1 || jobs[0].ID != live.ID {
		t.Errorf("List = %v, want only the live job", jobs)
	}

	if s.Len() != 2 {
		t.Fatalf("Len before cleanup = %d", s.Len())
	}
	if err := s.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Errorf("Len after cleanup = %d, want 1", s.Len())
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("QCHIP_TEST_MONGO")
	if uri == "" {
		t.Skip("QCHIP_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "qchip_test"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	job := NewJob(pipeline.Options{Rows: 2, Cols: 2, Formats: []string{"svg"}}, time.Hour)
	job.Complete(&pipeline.Result{Artifacts: map[string][]byte{"svg": []byte("<svg/>")}})
	if err := s.Put(ctx, job); err != nil {
		t.Fatal(err)
	}
	defer s.Delete(ctx, job.ID)

	got, err := s.Get(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Artifacts["svg"]) != "<svg/>" || got.Request.Rows != 2 {
		t.Errorf("round trip = %+v", got)
	}

	jobs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, j := range jobs {
		if j.Artifacts != nil {
			t.Error("List should not load artifacts")
		}
	}
	if err := s.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
}
