package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/saiganesh-d/doccompare/internal/compare"
	"github.com/saiganesh-d/doccompare/internal/pagedoc"
	"github.com/saiganesh-d/doccompare/internal/parser"
)

// Worker processes a single comparison job: parse both uploads, run the
// comparison, attach the report.
type Worker struct {
	comparator        *compare.Comparator
	log               *slog.Logger
	pdfFallbackExtern bool
}

func NewWorker(comparator *compare.Comparator, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		comparator:        comparator,
		log:               log,
		pdfFallbackExtern: pdfFallback,
	}
}

// Process runs the full comparison pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "user_id", job.UserID)

	dataA, dataB := job.Files()

	// Phase 1: Parse both documents.
	job.SetStatus(StatusParsing, "parsing")

	docA, err := w.parse(dataA, job.FilenameA)
	if err != nil {
		log.Error("parse failed", "side", "a", "filename", job.FilenameA, "error", err)
		job.AddError(fmt.Sprintf("parse %s: %s", job.FilenameA, err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	var docB *pagedoc.Document
	if ContentHashHex(dataA) == ContentHashHex(dataB) &&
		filepath.Ext(job.FilenameA) == filepath.Ext(job.FilenameB) {
		// Byte-identical uploads parse to the same document; only the
		// title differs.
		log.Info("identical uploads, skipping second parse",
			"filename_a", job.FilenameA, "filename_b", job.FilenameB)
		dup := *docA
		dup.Title = strings.TrimSuffix(job.FilenameB, filepath.Ext(job.FilenameB))
		docB = &dup
	} else {
		docB, err = w.parse(dataB, job.FilenameB)
		if err != nil {
			log.Error("parse failed", "side", "b", "filename", job.FilenameB, "error", err)
			job.AddError(fmt.Sprintf("parse %s: %s", job.FilenameB, err))
			job.SetStatus(StatusFailed, "parsing")
			return
		}
	}

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Compare.
	job.SetStatus(StatusComparing, "comparing")
	report, err := w.comparator.CompareDocuments(docA, docB)
	if err != nil {
		log.Error("comparison failed", "error", err)
		job.AddError(fmt.Sprintf("compare: %s", err))
		job.SetStatus(StatusFailed, "comparing")
		return
	}

	job.SetReport(report)
	job.SetStatus(StatusCompleted, "done")
	log.Info("comparison job complete",
		"sections", report.Summary.Sections,
		"critical", report.Summary.Critical,
		"duration_ms", report.DurationMs)
}

func (w *Worker) parse(data []byte, filename string) (*pagedoc.Document, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallbackExtern
	}
	return p.Parse(bytes.NewReader(data), filename)
}
