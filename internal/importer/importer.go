// internal/importer/importer.go
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	stderrors "candidate-intake/internal/common/errors"
	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/common/metrics"
	"candidate-intake/internal/engine/classify"
	"candidate-intake/internal/engine/normalize"
	"candidate-intake/internal/engine/placeholder"
	"candidate-intake/internal/engine/validate"
	"candidate-intake/internal/models"
)

// Store contracts the orchestrator depends on. Implementations live in
// internal/store; tests swap in fakes.

// CandidateStore persists accepted candidates, idempotent by email.
type CandidateStore interface {
	UpsertByEmail(ctx context.Context, cand *models.AcceptedCandidate) (created bool, err error)
}

// PendingStore holds review/blocked rows for human triage.
type PendingStore interface {
	Insert(ctx context.Context, rec *models.PendingRecord) error
}

// BatchStore records one row per upload.
type BatchStore interface {
	Create(ctx context.Context, batch *models.ImportBatch) error
	UpdateCounts(ctx context.Context, batchID string, ready, review, blocked int) error
}

// EmailIndex answers "does this email already exist in the main store".
// Lookups are read-only for the duration of one import; MarkExists records
// each write so a cached negative answer cannot outlive the upsert.
type EmailIndex interface {
	Exists(ctx context.Context, email string) (bool, error)
	MarkExists(ctx context.Context, email string)
}

// SearchIndex mirrors accepted candidates into the search backend.
// Best-effort: failures are logged, never fatal.
type SearchIndex interface {
	Index(ctx context.Context, cand *models.AcceptedCandidate) error
}

// ProgressTracker mirrors live batch progress so a disconnected client can
// poll it. Best-effort.
type ProgressTracker interface {
	Update(ctx context.Context, batchID string, processed, total int)
}

// Options configures one import run.
type Options struct {
	FileName string
	Owner    string
	// Mapping maps column index to taxonomy field. Nil means auto-classify
	// every cell.
	Mapping map[int]models.Field
	// MaxParallelRows bounds the pure per-row stage. Zero means sequential.
	MaxParallelRows int
	// ProgressInterval is the row count between progress emissions.
	ProgressInterval int
}

// RowEntry pairs one processed row with its verdict.
type RowEntry struct {
	Fixed      *models.CandidateRecord  `json:"fixed"`
	Original   []string                 `json:"original"`
	Validation models.ValidationOutcome `json:"validation"`
}

// Result is the full outcome of one batch.
type Result struct {
	BatchID          string
	TotalProcessed   int
	DuplicatesInFile int
	DuplicatesInDB   int
	Ready            []RowEntry
	Review           []RowEntry
	Blocked          []RowEntry
}

// Orchestrator drives a spreadsheet batch through filtering,
// classification, normalization, validation, deduplication and persistence
// while streaming progress to the caller.
type Orchestrator struct {
	candidates CandidateStore
	pending    PendingStore
	batches    BatchStore
	emails     EmailIndex
	search     SearchIndex
	progress   ProgressTracker
	logger     logger.Logger
}

// New builds an Orchestrator. search and progress may be nil.
func New(candidates CandidateStore, pending PendingStore, batches BatchStore, emails EmailIndex, search SearchIndex, progress ProgressTracker, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		candidates: candidates,
		pending:    pending,
		batches:    batches,
		emails:     emails,
		search:     search,
		progress:   progress,
		logger:     log,
	}
}

type rowOutcome struct {
	entry   RowEntry
	fileDup bool
	dbDup   bool
}

// Run processes rows end to end. Progress and the final complete message go
// to sink; the same data comes back in Result for callers that want a
// single response document. On batch-level failure no complete message is
// emitted and the error is returned.
func (o *Orchestrator) Run(ctx context.Context, rows [][]string, opts Options, sink Sink) (*Result, error) {
	start := time.Now()
	metrics.ImportsActive.Inc()
	defer metrics.ImportsActive.Dec()

	if sink == nil {
		sink = DiscardSink()
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 10
	}

	headers, dataRows := splitHeader(rows)
	if len(dataRows) == 0 {
		err := stderrors.NewEmptyFileError()
		o.failBatch(sink, err)
		return nil, err
	}

	batch := &models.ImportBatch{
		BatchID:    uuid.New().String(),
		FileName:   opts.FileName,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
		CreatedBy:  opts.Owner,
	}
	if err := o.batches.Create(ctx, batch); err != nil {
		stdErr := stderrors.NewDatabaseInsertError(err)
		o.failBatch(sink, stdErr)
		return nil, stdErr
	}

	log := o.logger.WithFields(map[string]interface{}{
		"batchId":  batch.BatchID,
		"fileName": opts.FileName,
		"rows":     len(dataRows),
	})
	log.Info("import started", map[string]interface{}{"mapped": opts.Mapping != nil})

	labels := columnLabels(headers, widest(dataRows))

	// Per-row classification, normalization and validation are pure and
	// independent, so they fan out across a bounded pool. Results land in a
	// fixed slice so everything after this stage is back in row order.
	processed := o.processRows(ctx, dataRows, labels, opts)
	if ctx.Err() != nil {
		err := stderrors.NewImportCancelledError()
		metrics.BatchesFailed.WithLabelValues(string(err.Code)).Inc()
		return nil, err
	}

	result := &Result{BatchID: batch.BatchID}
	seenEmails := make(map[string]bool)
	seenPhones := make(map[string]bool)

	for i, entry := range processed {
		if ctx.Err() != nil {
			err := stderrors.NewImportCancelledError()
			metrics.BatchesFailed.WithLabelValues(string(err.Code)).Inc()
			return nil, err
		}
		if entry.Fixed == nil {
			continue // empty row
		}

		out := rowOutcome{entry: entry}
		o.flagDuplicates(ctx, &out, seenEmails, seenPhones)

		if err := o.persistRow(ctx, batch, &out, opts.Owner); err != nil {
			o.failBatch(sink, err)
			return nil, err
		}

		o.tally(result, &out)
		result.TotalProcessed++

		if (i+1)%opts.ProgressInterval == 0 || i == len(processed)-1 {
			msg := models.StreamMessage{
				Type:      models.StreamProgress,
				Processed: i + 1,
				Total:     len(processed),
			}
			if err := sink.Emit(msg); err != nil {
				stdErr := stderrors.NewStreamClosedError(err)
				metrics.BatchesFailed.WithLabelValues(string(stdErr.Code)).Inc()
				log.Warn("consumer went away, stopping batch", map[string]interface{}{"error": err.Error()})
				return nil, stdErr
			}
			if o.progress != nil {
				o.progress.Update(ctx, batch.BatchID, i+1, len(processed))
			}
		}
	}

	if err := o.batches.UpdateCounts(ctx, batch.BatchID, len(result.Ready), len(result.Review), len(result.Blocked)); err != nil {
		stdErr := stderrors.NewDatabaseInsertError(err)
		o.failBatch(sink, stdErr)
		return nil, stdErr
	}

	complete := models.StreamMessage{
		Type:             models.StreamComplete,
		TotalProcessed:   result.TotalProcessed,
		DuplicatesInFile: result.DuplicatesInFile,
		DuplicatesInDB:   result.DuplicatesInDB,
	}
	if err := sink.Emit(complete); err != nil {
		stdErr := stderrors.NewStreamClosedError(err)
		metrics.BatchesFailed.WithLabelValues(string(stdErr.Code)).Inc()
		return nil, stdErr
	}

	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	log.Info("import complete", map[string]interface{}{
		"ready":            len(result.Ready),
		"review":           len(result.Review),
		"blocked":          len(result.Blocked),
		"duplicatesInFile": result.DuplicatesInFile,
		"duplicatesInDB":   result.DuplicatesInDB,
		"duration":         time.Since(start).String(),
	})
	return result, nil
}

// splitHeader separates the header row from data when the first row reads
// like one.
func splitHeader(rows [][]string) ([]string, [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	if LooksLikeHeader(rows[0]) {
		return ExtractHeaders(rows), rows[1:]
	}
	return nil, rows
}

func (o *Orchestrator) processRows(ctx context.Context, dataRows [][]string, labels []string, opts Options) []RowEntry {
	results := make([]RowEntry, len(dataRows))

	workers := opts.MaxParallelRows
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, row := range dataRows {
		if ctx.Err() != nil {
			break
		}
		if isEmptyRow(row) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, row []string) {
			defer wg.Done()
			defer func() { <-sem }()

			rec := o.buildRecord(row, i+1, labels, opts.Mapping)
			results[i] = RowEntry{
				Fixed:      rec,
				Original:   row,
				Validation: validate.Record(rec),
			}
		}(i, row)
	}
	wg.Wait()
	return results
}

// buildRecord assembles one candidate record from a raw row, applying the
// placeholder filter, the mapping or classifier, and the normalizers.
func (o *Orchestrator) buildRecord(row []string, rowIndex int, labels []string, mapping map[int]models.Field) *models.CandidateRecord {
	rec := &models.CandidateRecord{
		RowIndex:     rowIndex,
		Fields:       make(map[models.Field]string),
		OriginalData: make(map[string]string),
		AutoFixes:    []string{},
		Swaps:        []string{},
	}

	for col, cell := range row {
		if col < len(labels) {
			rec.OriginalData[labels[col]] = cell
		}

		value := placeholder.Clean(cell)
		if value == "" {
			continue
		}

		var field models.Field
		if mapping != nil {
			mapped, ok := mapping[col]
			if !ok {
				continue // unmapped column is ignored
			}
			field = mapped
		} else {
			res := classify.Classify(value)
			if res.Field == "" {
				continue
			}
			field = res.Field
		}

		// First value wins when two columns classify to the same field.
		if _, taken := rec.Fields[field]; taken {
			continue
		}
		rec.Fields[field] = value
	}

	o.fixTransposition(rec)
	o.applyNormalizers(rec)
	return rec
}

// fixTransposition untangles email and phone values that landed in each
// other's columns, which mapped imports hit whenever two adjacent columns
// were swapped in the sheet.
func (o *Orchestrator) fixTransposition(rec *models.CandidateRecord) {
	email := rec.Get(models.FieldEmail)
	phone := rec.Get(models.FieldPhone)
	if email == "" || phone == "" {
		return
	}

	_, emailIsPhone := normalize.Phone(email)
	phoneIsEmail := strings.Contains(phone, "@")
	if emailIsPhone && phoneIsEmail {
		rec.Set(models.FieldEmail, phone)
		rec.Set(models.FieldPhone, email)
		rec.Swaps = append(rec.Swaps, "email<->phone")
	}
}

// applyNormalizers canonicalizes the format-bearing fields. A value the
// matching normalizer rejects is removed: format rejection means the field
// is absent, never an error.
func (o *Orchestrator) applyNormalizers(rec *models.CandidateRecord) {
	if v := rec.Get(models.FieldPhone); v != "" {
		if norm, ok := normalize.Phone(v); ok {
			if norm != v {
				rec.AutoFixes = append(rec.AutoFixes, fmt.Sprintf("phone: %q -> %q", v, norm))
			}
			rec.Set(models.FieldPhone, norm)
		} else {
			delete(rec.Fields, models.FieldPhone)
		}
	}

	if v := rec.Get(models.FieldEmail); v != "" {
		norm := strings.ToLower(strings.TrimSpace(v))
		if norm != v {
			rec.AutoFixes = append(rec.AutoFixes, fmt.Sprintf("email: %q -> %q", v, norm))
		}
		rec.Set(models.FieldEmail, norm)
	}

	for _, f := range []models.Field{models.FieldCurrentCompensation, models.FieldExpectedCompensation} {
		if v := rec.Get(f); v != "" {
			if lakhs, ok := normalize.Compensation(v); ok {
				norm := normalize.FormatLakhs(lakhs)
				if norm != v {
					rec.AutoFixes = append(rec.AutoFixes, fmt.Sprintf("%s: %q -> %s LPA", f, v, norm))
				}
				rec.Set(f, norm)
			} else {
				delete(rec.Fields, f)
			}
		}
	}

	if v := rec.Get(models.FieldNoticePeriod); v != "" {
		if days, ok := normalize.NoticePeriodDays(v); ok {
			norm := strconv.Itoa(days)
			if norm != v {
				rec.AutoFixes = append(rec.AutoFixes, fmt.Sprintf("noticePeriod: %q -> %s days", v, norm))
			}
			rec.Set(models.FieldNoticePeriod, norm)
		} else {
			delete(rec.Fields, models.FieldNoticePeriod)
		}
	}

	if v := rec.Get(models.FieldExperience); v != "" {
		if years, ok := normalize.ExperienceYears(v); ok {
			norm := normalize.FormatYears(years)
			if norm != v {
				rec.AutoFixes = append(rec.AutoFixes, fmt.Sprintf("experience: %q -> %s years", v, norm))
			}
			rec.Set(models.FieldExperience, norm)
		} else {
			delete(rec.Fields, models.FieldExperience)
		}
	}
}

// flagDuplicates marks repeats within the file (by email or phone) and
// against the main store (by email). Duplicates are reported, never
// silently dropped or merged.
func (o *Orchestrator) flagDuplicates(ctx context.Context, out *rowOutcome, seenEmails, seenPhones map[string]bool) {
	rec := out.entry.Fixed
	email := rec.Get(models.FieldEmail)
	phone := rec.Get(models.FieldPhone)

	if email != "" {
		if seenEmails[email] {
			out.fileDup = true
		}
		seenEmails[email] = true
	}
	if phone != "" {
		if seenPhones[phone] {
			out.fileDup = true
		}
		seenPhones[phone] = true
	}
	if out.fileDup {
		metrics.DuplicatesDetected.WithLabelValues("file").Inc()
		return
	}

	if email != "" {
		exists, err := o.emails.Exists(ctx, email)
		if err != nil {
			o.logger.Warn("email index lookup failed", map[string]interface{}{
				"error": err.Error(),
				"row":   rec.RowIndex,
			})
			return
		}
		if exists {
			out.dbDup = true
			metrics.DuplicatesDetected.WithLabelValues("store").Inc()
		}
	}
}

// persistRow writes one row to its destination. File-level duplicates are
// only reported; ready rows go to the main store (update-in-place when the
// email already exists there); review and blocked rows go to the pending
// area.
func (o *Orchestrator) persistRow(ctx context.Context, batch *models.ImportBatch, out *rowOutcome, owner string) *stderrors.StandardError {
	if out.fileDup {
		return nil
	}
	rec := out.entry.Fixed
	outcome := out.entry.Validation

	switch outcome.Disposition {
	case models.DispositionReady:
		cand := &models.AcceptedCandidate{
			ID:        uuid.New().String(),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		cand.FromRecord(rec)
		if _, err := o.candidates.UpsertByEmail(ctx, cand); err != nil {
			return stderrors.NewDatabaseInsertError(err)
		}
		o.emails.MarkExists(ctx, cand.Email)
		if o.search != nil {
			if err := o.search.Index(ctx, cand); err != nil {
				o.logger.Warn("search mirror index failed", map[string]interface{}{
					"error": err.Error(),
					"email": cand.Email,
				})
			}
		}

	default:
		category := models.PendingReview
		if outcome.Disposition == models.DispositionBlocked {
			category = models.PendingBlocked
		}
		pending := &models.PendingRecord{
			ID:         uuid.New().String(),
			BatchID:    batch.BatchID,
			FileName:   batch.FileName,
			ImportedAt: batch.ImportedAt,
			Category:   category,
			RowIndex:   rec.RowIndex,
			Fields:     rec.Fields,
			Original:   rec.OriginalData,
			Confidence: outcome.Confidence,
			Errors:     outcome.Errors,
			Warnings:   outcome.Warnings,
			AutoFixes:  rec.AutoFixes,
			Swaps:      rec.Swaps,
			Owner:      owner,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
			UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := o.pending.Insert(ctx, pending); err != nil {
			return stderrors.NewDatabaseInsertError(err)
		}
	}
	return nil
}

func (o *Orchestrator) tally(result *Result, out *rowOutcome) {
	if out.fileDup {
		result.DuplicatesInFile++
		return
	}
	if out.dbDup {
		result.DuplicatesInDB++
	}

	switch out.entry.Validation.Disposition {
	case models.DispositionReady:
		result.Ready = append(result.Ready, out.entry)
	case models.DispositionReview:
		result.Review = append(result.Review, out.entry)
	default:
		result.Blocked = append(result.Blocked, out.entry)
	}
	metrics.RowsProcessed.WithLabelValues(string(out.entry.Validation.Disposition)).Inc()
}

// failBatch reports a batch-level failure to the consumer. The error
// message replaces, never accompanies, a complete message.
func (o *Orchestrator) failBatch(sink Sink, stdErr *stderrors.StandardError) {
	metrics.BatchesFailed.WithLabelValues(string(stdErr.Code)).Inc()
	_ = sink.Emit(models.StreamMessage{
		Type:    models.StreamError,
		Message: stdErr.Message,
	})
}

func widest(rows [][]string) int {
	max := 0
	for _, row := range rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Revalidate reruns normalization and validation on a single edited record,
// for the manual-correction flow on pending rows.
func Revalidate(rec *models.CandidateRecord) models.ValidationOutcome {
	o := &Orchestrator{}
	o.fixTransposition(rec)
	o.applyNormalizers(rec)
	return validate.Record(rec)
}
