package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/qchip/pkg/buildinfo"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/pipeline"
	"github.com/matzehuels/qchip/pkg/store"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatDOT:   "text/vnd.graphviz",
	pipeline.FormatOBJ:   "model/obj",
	pipeline.FormatMTL:   "model/mtl",
	pipeline.FormatSTL:   "model/stl",
	pipeline.FormatScene: "application/json",
}

// jobResponse adds artifact URLs to the stored job.
type jobResponse struct {
	*store.Job
	Links map[string]string `json:"artifacts,omitempty"`
}

func newJobResponse(job *store.Job) jobResponse {
	resp := jobResponse{Job: job}
	if job.Status != store.StatusSucceeded {
		return resp
	}
	resp.Links = make(map[string]string, len(job.Formats))
	for _, format := range job.Formats {
		resp.Links[format] = "/api/v1/jobs/" + job.ID + "/artifacts/" + format
	}
	return resp
}

type errorResponse struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
	JobID string      `json:"job_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	job := store.NewJob(opts, s.jobTTL)

	if isTrue(r.URL.Query().Get("async")) {
		if err := s.jobs.Put(r.Context(), job); err != nil {
			s.writeError(w, r, err, "")
			return
		}
		accepted := newJobResponse(job.Summary())
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			_ = s.run(s.baseCtx, job)
		}()
		w.Header().Set("Location", "/api/v1/jobs/"+job.ID)
		writeJSON(w, http.StatusAccepted, accepted)
		return
	}

	if err := s.run(r.Context(), job); err != nil {
		s.writeError(w, r, err, job.ID)
		return
	}
	writeJSON(w, http.StatusOK, newJobResponse(job.Summary()))
}

func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if strings.ContainsAny(opts.Name, `/\"`) {
		return opts, errors.New(errors.ErrCodeInvalidInput, "name %q contains invalid characters", opts.Name)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// run executes the pipeline for job and stores the outcome. The returned
// error is the pipeline error, or the store error if saving failed.
func (s *Server) run(ctx context.Context, job *store.Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	res, runErr := s.runner.Execute(ctx, job.Request)
	if runErr != nil {
		job.Fail(runErr)
		s.logger.Warn("job failed", "id", job.ID, "error", runErr)
	} else {
		job.Complete(res)
		s.logger.Info("job done", "id", job.ID, "formats", len(res.Artifacts))
	}

	// store even when ctx was canceled so the job does not stay pending
	putCtx, putCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer putCancel()
	if err := s.jobs.Put(putCtx, job); err != nil {
		s.logger.Error("saving job", "id", job.ID, "error", err)
		if runErr == nil {
			return err
		}
	}
	return runErr
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer (got %q)", v), "")
			return
		}
		limit = n
	}
	jobs, err := s.jobs.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = jobResponse{Job: j}
	}
	writeJSON(w, http.StatusOK, struct {
		Jobs []jobResponse `json:"jobs"`
	}{out})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.loadJob(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newJobResponse(job))
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	job, err := s.loadJob(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err, job.ID)
		return
	}
	if !job.Done() {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "job %s is still %s", job.ID, job.Status), job.ID)
		return
	}
	data, err := job.Artifact(format)
	if err != nil {
		s.writeError(w, r, err, job.ID)
		return
	}

	name := job.Request.Name
	if name == "" {
		name = pipeline.DefaultName
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", `inline; filename="`+name+"."+pipeline.FormatExt(format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) loadJob(r *http.Request) (*store.Job, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateJobID(id); err != nil {
		return nil, err
	}
	return s.jobs.Get(r.Context(), id)
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, jobID string) {
	status := StatusFor(err)
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "route", route, "error", err)
	}
	observabilityError(r, route, err)

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError && errors.GetCode(err) == "" {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Error: msg, JobID: jobID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
