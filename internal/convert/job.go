// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs one document conversion end to end: unpack the
// archive, read the endnotes, extract incipits from the body, classify and
// render each citation, replace the in-body markers with bookmarks, append a
// Notes section of page references, and repack.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/docx"
	"github.com/meshintel/notesmith/pkg/types"
)

// State tracks how far a job has progressed. Transitions are linear; any
// error moves the job to StateFailed.
type State string

const (
	StateNew               State = "new"
	StateUnpacked          State = "unpacked"
	StateEndnotesExtracted State = "endnotes_extracted"
	StateIncipitsExtracted State = "incipits_extracted"
	StateNotesRendered     State = "notes_rendered"
	StateMarkersRewritten  State = "markers_rewritten"
	StateRepacked          State = "repacked"
	StateFailed            State = "failed"
)

// Sentinel failures with user-facing meaning.
var (
	// ErrNoEndnotes means the document carries no endnotes part at all.
	ErrNoEndnotes = errors.New("document contains no endnotes")

	// ErrNoBody means the main document part has no body to append notes to.
	ErrNoBody = errors.New("document has no body")
)

// Job is one conversion. A Job owns a unique working directory and its own
// citation engine; neither may be shared with another job.
type Job struct {
	ID      string
	opts    types.ConvertOptions
	engine  *citation.Engine
	workDir string
	log     *zap.Logger

	state      State
	failReason string

	endnotes []types.Endnote
	incipits map[string]string
}

// NewJob allocates a job with a unique working directory under baseDir.
func NewJob(opts types.ConvertOptions, sources citation.Sources, baseDir string, log *zap.Logger) (*Job, error) {
	if opts.WordCount < 1 {
		opts.WordCount = 3
	}
	if log == nil {
		log = zap.NewNop()
	}
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	id := uuid.NewString()
	workDir := filepath.Join(baseDir, "notesmith-"+id)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("allocating work dir: %w", err)
	}
	return &Job{
		ID:      id,
		opts:    opts,
		engine:  citation.New(opts.CitationStyle, sources),
		workDir: workDir,
		log:     log.With(zap.String("job", id)),
		state:   StateNew,
	}, nil
}

// State returns the job's current state.
func (j *Job) State() State { return j.state }

// FailReason returns the user-facing reason after a failed run.
func (j *Job) FailReason() string { return j.failReason }

// Endnotes returns the extracted endnotes after a run, rendered text included.
func (j *Job) Endnotes() []types.Endnote { return j.endnotes }

// Run converts input into output. The working directory is released on
// every path, success or not.
func (j *Job) Run(ctx context.Context, input, output string) (err error) {
	defer j.cleanup()
	defer func() {
		if err != nil {
			j.state = StateFailed
			j.failReason = err.Error()
			j.log.Warn("conversion failed", zap.Error(err))
		}
	}()

	if err := docx.Unpack(input, j.workDir); err != nil {
		return err
	}
	j.state = StateUnpacked

	if !docx.HasPart(j.workDir, docx.EndnotesPart) {
		return ErrNoEndnotes
	}
	j.endnotes, err = j.extractEndnotes()
	if err != nil {
		return err
	}
	j.state = StateEndnotesExtracted
	j.log.Info("endnotes extracted", zap.Int("count", len(j.endnotes)))

	doc, err := docx.LoadPart(j.workDir, docx.DocumentPart)
	if err != nil {
		return err
	}
	j.incipits = j.extractIncipits(doc)
	j.state = StateIncipitsExtracted

	j.renderNotes(ctx)
	j.state = StateNotesRendered

	if err := j.rewriteDocument(doc); err != nil {
		return err
	}
	if err := docx.SavePart(doc, j.workDir, docx.DocumentPart); err != nil {
		return err
	}
	j.state = StateMarkersRewritten

	if err := docx.Pack(j.workDir, output); err != nil {
		return err
	}
	j.state = StateRepacked
	j.log.Info("conversion complete", zap.String("output", output))
	return nil
}

func (j *Job) cleanup() {
	if err := os.RemoveAll(j.workDir); err != nil {
		j.log.Warn("releasing work dir", zap.Error(err))
	}
}
