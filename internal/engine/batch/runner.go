// Package batch applies the compiled stylesheet to every discovered document concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options tune a batch run.
type Options struct {
	// Jobs limits concurrent transforms. Zero or less runs every document at once.
	Jobs int
	// SkipUnchanged leaves output files with identical content untouched.
	SkipUnchanged bool
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeWritten
	outcomeUnchanged
)

// Runner fans out one transform per document and joins them all.
type Runner struct {
	transformer ports.Transformer
	writer      ports.FileWriter
	tracer      ports.Tracer
	logger      ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(
	transformer ports.Transformer,
	writer ports.FileWriter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		transformer: transformer,
		writer:      writer,
		tracer:      tracer,
		logger:      logger,
	}
}

// Run writes the artifact to layout.ActivePath, transforms every document and removes
// the active file again.
//
// A failing document does not cancel the others: every transform runs to completion
// and the first failure is returned.
func (r *Runner) Run(
	ctx context.Context,
	layout domain.Layout,
	artifact domain.Artifact,
	docs []domain.Document,
	opts Options,
) (domain.BatchReport, error) {
	report := domain.BatchReport{Documents: len(docs)}
	if len(docs) == 0 {
		return report, nil
	}

	ctx, span := r.tracer.Start(ctx, "batch", ports.WithAttribute("documents", len(docs)))
	defer span.End()

	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name
	}
	r.tracer.EmitPlan(ctx, names)

	if _, err := r.writer.WriteFile(layout.ActivePath, artifact.Content, false); err != nil {
		span.RecordError(err)
		return report, zerr.Wrap(err, "failed to stage compiled stylesheet")
	}

	start := time.Now()
	outcomes := make([]outcome, len(docs))

	var g errgroup.Group
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}

	for i, doc := range docs {
		g.Go(func() error {
			result, err := r.transform(ctx, layout, doc, opts.SkipUnchanged)
			outcomes[i] = result
			return err
		})
	}

	err := g.Wait()
	report.Elapsed = time.Since(start)

	if rmErr := r.writer.Remove(layout.ActivePath); rmErr != nil {
		if err == nil {
			err = rmErr
		} else {
			r.logger.Warn("failed to remove " + layout.ActivePath)
		}
	}

	for _, o := range outcomes {
		switch o {
		case outcomeWritten:
			report.Written++
		case outcomeUnchanged:
			report.Unchanged++
		default:
			report.Failed++
		}
	}

	if err != nil {
		span.RecordError(err)
		return report, err
	}

	r.logger.Info(summary(report))
	return report, nil
}

func (r *Runner) transform(ctx context.Context, layout domain.Layout, doc domain.Document, skipUnchanged bool) (outcome, error) {
	ctx, span := r.tracer.Start(ctx, "transform", ports.WithAttribute("document", doc.Name))
	defer span.End()

	fail := func(err error) (outcome, error) {
		span.RecordError(err)
		return outcomeFailed, errors.Join(domain.ErrTransformFailed, zerr.With(zerr.Wrap(err, "failed to render "+doc.Name), "document", doc.SourcePath))
	}

	out, err := r.transformer.Transform(ctx, layout, doc)
	if err != nil {
		return fail(err)
	}

	written, err := r.writer.WriteFile(doc.OutputPath, out, skipUnchanged)
	if err != nil {
		return fail(err)
	}

	span.SetAttribute("written", written)
	if !written {
		return outcomeUnchanged, nil
	}
	return outcomeWritten, nil
}

func summary(report domain.BatchReport) string {
	msg := fmt.Sprintf("transformed %d pages in %.1fs", report.Documents, report.Elapsed.Seconds())
	if report.Unchanged > 0 {
		msg += fmt.Sprintf(" (%d unchanged)", report.Unchanged)
	}
	return msg
}
