package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/saiganesh-d/doccompare/internal/pagedoc"
	"github.com/saiganesh-d/doccompare/internal/parser"
	"github.com/saiganesh-d/doccompare/internal/pipeline"
)

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	// Two uploads per request, plus 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	userID := r.FormValue("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	nameA, dataA, err := s.readUpload(r, "file_a")
	if err != nil {
		jsonError(w, err.Error(), uploadErrorStatus(err))
		return
	}
	nameB, dataB, err := s.readUpload(r, "file_b")
	if err != nil {
		jsonError(w, err.Error(), uploadErrorStatus(err))
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		UserID:    userID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		FilenameA: nameA,
		FilenameB: nameB,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFiles(dataA, dataB)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/compare/%s/status", job.ID),
	})
}

// errTooLarge marks uploads over the configured size cap.
var errTooLarge = errors.New("file exceeds max size")

// readUpload pulls one named file out of the parsed multipart form.
func (s *Server) readUpload(r *http.Request, field string) (filename string, data []byte, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s is required: %w", field, err)
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return "", nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err = readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", filename, err)
	}
	return filename, data, nil
}

func readLimited(f multipart.File, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > max {
		return nil, errTooLarge
	}
	return data, nil
}

func uploadErrorStatus(err error) int {
	if errors.Is(err, errTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (s *Server) handleCompareStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleCompareReport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	report := job.Report()
	if report == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			jsonError(w, "job failed: "+strings.Join(snap.Errors, "; "), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, fmt.Sprintf("report not ready (status %s)", snap.Status), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// comparePagesRequest carries pre-extracted page text for a synchronous
// comparison, bypassing file parsing.
type comparePagesRequest struct {
	PagesA map[int][]string `json:"pages_a"`
	PagesB map[int][]string `json:"pages_b"`
}

func (s *Server) handleComparePages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes)

	var req comparePagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	report, err := s.orchestrator.Comparator().CompareSections(req.PagesA, req.PagesB)
	if err != nil {
		if errors.Is(err, pagedoc.ErrMalformedPages) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "comparison failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleEngineStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.orchestrator.Comparator().Stats().Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
