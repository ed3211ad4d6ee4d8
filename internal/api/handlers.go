// internal/api/handlers.go
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	stderrors "candidate-intake/internal/common/errors"
	"candidate-intake/internal/importer"
	"candidate-intake/internal/models"
)

// handleHeaders reads just enough of the file to return its header row, so
// the client can build a column mapping before the real import.
func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	rows, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	if len(rows) == 0 {
		s.writeError(w, stderrors.NewEmptyFileError())
		return
	}

	headers := importer.ExtractHeaders(rows)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"headers":   headers,
		"hasHeader": importer.LooksLikeHeader(rows[0]),
	})
}

// handleImport runs a mapped import, streaming NDJSON progress lines and a
// final complete message. The HTTP status is committed before processing
// starts, so batch failures arrive as an error line, not a status code.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	rows, fileName, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	mapping, stdErr := parseMapping(r.FormValue("mapping"))
	if stdErr != nil {
		s.writeError(w, stdErr)
		return
	}

	flusher, isFlusher := w.(http.Flusher)
	if !isFlusher {
		s.writeError(w, stderrors.NewStreamClosedError(errors.New("response writer does not support streaming")))
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	sink := importer.NewNDJSONSink(w, flusher)
	opts := importer.Options{
		FileName:         fileName,
		Owner:            owner(r),
		Mapping:          mapping,
		MaxParallelRows:  s.cfg.Import.MaxParallelRows,
		ProgressInterval: s.cfg.Import.ProgressInterval,
	}

	if _, err := s.runner.Run(r.Context(), rows, opts, sink); err != nil {
		// The sink already carried the error message to the client.
		s.logger.Warn("import run failed", map[string]interface{}{"error": err.Error()})
	}
}

// handleImportAuto runs an unmapped import where every cell is classified,
// returning one JSON document instead of a stream.
func (s *Server) handleImportAuto(w http.ResponseWriter, r *http.Request) {
	rows, fileName, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	opts := importer.Options{
		FileName:         fileName,
		Owner:            owner(r),
		MaxParallelRows:  s.cfg.Import.MaxParallelRows,
		ProgressInterval: s.cfg.Import.ProgressInterval,
	}

	result, err := s.runner.Run(r.Context(), rows, opts, importer.DiscardSink())
	if err != nil {
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			s.writeError(w, stdErr)
			return
		}
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"batchId":        result.BatchID,
		"totalProcessed": result.TotalProcessed,
		"results": map[string]interface{}{
			"ready":   emptyIfNil(result.Ready),
			"review":  emptyIfNil(result.Review),
			"blocked": emptyIfNil(result.Blocked),
		},
		"stats": map[string]int{
			"ready":   len(result.Ready),
			"review":  len(result.Review),
			"blocked": len(result.Blocked),
		},
		"duplicates": map[string]int{
			"inFile": result.DuplicatesInFile,
			"inDB":   result.DuplicatesInDB,
		},
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if s.progress == nil {
		s.writeError(w, stderrors.NewRecordNotFoundError(batchID))
		return
	}
	p, err := s.progress.Get(r.Context(), batchID)
	if err != nil {
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	if p == nil {
		s.writeError(w, stderrors.NewRecordNotFoundError(batchID))
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// handleRevalidate reruns normalization and validation on one edited record
// without persisting anything.
func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	body, stdErr := decodeValidated(r, revalidateSchema)
	if stdErr != nil {
		s.writeError(w, stdErr)
		return
	}

	var req struct {
		Record models.CandidateRecord `json:"record"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, stderrors.NewInvalidPayloadError(err.Error()))
		return
	}

	outcome := importer.Revalidate(&req.Record)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"record":     req.Record,
		"validation": outcome,
	})
}

// handlePromote bulk-accepts edited records into the main store. Review
// entries are allowed through: promotion is the human override.
func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	body, stdErr := decodeValidated(r, promoteSchema)
	if stdErr != nil {
		s.writeError(w, stdErr)
		return
	}

	var req struct {
		Ready  []models.CandidateRecord `json:"ready"`
		Review []models.CandidateRecord `json:"review"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, stderrors.NewInvalidPayloadError(err.Error()))
		return
	}

	records := append(req.Ready, req.Review...)
	promoted := 0
	var failures []map[string]interface{}

	for i := range records {
		rec := &records[i]
		outcome := importer.Revalidate(rec)
		if outcome.Disposition == models.DispositionBlocked {
			failures = append(failures, map[string]interface{}{
				"rowIndex": rec.RowIndex,
				"errors":   outcome.Errors,
			})
			continue
		}

		now := time.Now().UTC().Format(time.RFC3339)
		cand := &models.AcceptedCandidate{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
		cand.FromRecord(rec)

		if _, err := s.candidates.UpsertByEmail(r.Context(), cand); err != nil {
			s.writeError(w, stderrors.NewDatabaseInsertError(err))
			return
		}
		if s.emails != nil {
			s.emails.MarkExists(r.Context(), cand.Email)
		}
		if s.search != nil {
			if err := s.search.Index(r.Context(), cand); err != nil {
				s.logger.Warn("search mirror index failed", map[string]interface{}{
					"error": err.Error(),
					"email": cand.Email,
				})
			}
		}
		promoted++
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"promoted": promoted,
		"failed":   failures,
	})
}

// handleSearchCandidates serves recruiter free-text search over the
// accepted-candidate mirror.
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	if s.search == nil {
		s.writeError(w, stderrors.NewSearchDisabledError())
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, stderrors.NewInvalidPayloadError("query parameter q is required"))
		return
	}
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, stderrors.NewInvalidPayloadError(fmt.Sprintf("invalid size %q", raw)))
			return
		}
		size = n
	}

	hits, err := s.search.Search(r.Context(), query, size)
	if err != nil {
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	if hits == nil {
		hits = []models.AcceptedCandidate{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"candidates": hits})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	cand, err := s.candidates.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, stderrors.NewRecordNotFoundError(email))
			return
		}
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	s.writeJSON(w, http.StatusOK, cand)
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	category := models.PendingCategory(r.URL.Query().Get("category"))
	if category == "" {
		category = models.PendingReview
	}
	if category != models.PendingReview && category != models.PendingBlocked {
		s.writeError(w, stderrors.NewInvalidPayloadError(fmt.Sprintf("unknown category %q", category)))
		return
	}

	recs, err := s.pending.List(r.Context(), owner(r), category)
	if err != nil {
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	if recs == nil {
		recs = []*models.PendingRecord{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"records": recs})
}

func (s *Server) handleGetPending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.pending.Get(r.Context(), id, owner(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, stderrors.NewRecordNotFoundError(id))
			return
		}
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleUpdatePending applies a reviewer's field edits to a held record and
// moves it to the category its fresh validation verdict puts it in.
func (s *Server) handleUpdatePending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Fields map[models.Field]string `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, stderrors.NewInvalidPayloadError(err.Error()))
		return
	}
	if len(req.Fields) == 0 {
		s.writeError(w, stderrors.NewInvalidPayloadError("fields must not be empty"))
		return
	}
	for f := range req.Fields {
		if !models.KnownField(string(f)) {
			s.writeError(w, stderrors.NewInvalidPayloadError(fmt.Sprintf("unknown field %q", f)))
			return
		}
	}

	rec, err := s.pending.Get(r.Context(), id, owner(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, stderrors.NewRecordNotFoundError(id))
			return
		}
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}

	edited := models.CandidateRecord{
		RowIndex:     rec.RowIndex,
		Fields:       req.Fields,
		OriginalData: rec.Original,
		AutoFixes:    rec.AutoFixes,
		Swaps:        rec.Swaps,
	}
	outcome := importer.Revalidate(&edited)

	rec.Fields = edited.Fields
	rec.AutoFixes = edited.AutoFixes
	rec.Confidence = outcome.Confidence
	rec.Errors = outcome.Errors
	rec.Warnings = outcome.Warnings
	rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	switch outcome.Disposition {
	case models.DispositionBlocked:
		rec.Category = models.PendingBlocked
	default:
		rec.Category = models.PendingReview
	}

	if err := s.pending.Update(r.Context(), rec); err != nil {
		s.writeError(w, stderrors.NewDatabaseInsertError(err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"record":     rec,
		"validation": outcome,
	})
}

func (s *Server) handleDeletePending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.pending.Delete(r.Context(), id, owner(r)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, stderrors.NewRecordNotFoundError(id))
			return
		}
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := s.batches.List(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, stderrors.NewDatabaseQueryError(err))
		return
	}
	if batches == nil {
		batches = []*models.ImportBatch{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"batches": batches})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(s.backends))
	for name, backend := range s.backends {
		if err := backend.Ping(r.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}
	s.writeJSON(w, status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}

// readUpload parses the multipart form and the CSV it carries. On failure
// it writes the error response itself and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([][]string, string, bool) {
	maxBytes := int64(s.cfg.Import.MaxFileSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeError(w, stderrors.NewFileUnreadableError(err))
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, stderrors.NewFileUnreadableError(err))
		return nil, "", false
	}
	defer file.Close()

	rows, err := importer.ReadRows(file, maxBytes)
	if err != nil {
		s.writeError(w, stderrors.NewFileUnreadableError(err))
		return nil, "", false
	}
	return rows, header.Filename, true
}

// parseMapping decodes the client's column mapping: JSON object of column
// index to taxonomy field name.
func parseMapping(raw string) (map[int]models.Field, *stderrors.StandardError) {
	if raw == "" {
		return nil, stderrors.NewInvalidMappingError("mapping form field is required")
	}

	var byLabel map[string]string
	if err := json.Unmarshal([]byte(raw), &byLabel); err != nil {
		return nil, stderrors.NewInvalidMappingError(err.Error())
	}
	if len(byLabel) == 0 {
		return nil, stderrors.NewInvalidMappingError("mapping must not be empty")
	}

	mapping := make(map[int]models.Field, len(byLabel))
	for col, field := range byLabel {
		idx, err := strconv.Atoi(col)
		if err != nil || idx < 0 {
			return nil, stderrors.NewInvalidMappingError(fmt.Sprintf("invalid column index %q", col))
		}
		if !models.KnownField(field) {
			return nil, stderrors.NewInvalidMappingError(fmt.Sprintf("unknown field %q", field))
		}
		mapping[idx] = models.Field(field)
	}
	return mapping, nil
}

func emptyIfNil(entries []importer.RowEntry) []importer.RowEntry {
	if entries == nil {
		return []importer.RowEntry{}
	}
	return entries
}
