// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a documentation generation run end to end:
// fetch the OpenAPI index, compile the plan, create section directories,
// then produce and write each job strictly in order.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/docforge/internal/apispec"
	"github.com/pdiddy/docforge/internal/plan"
	"github.com/pdiddy/docforge/internal/produce"
	"github.com/pdiddy/docforge/internal/runlog"
	"github.com/pdiddy/docforge/internal/site"
	"github.com/pdiddy/docforge/pkg/types"
)

// Summary holds counts from a completed run.
type Summary struct {
	Planned   int
	Generated int
	Templated int
}

// Options bundles the pipeline's collaborators. Log may be nil to disable
// run recording; Client defaults to http.DefaultClient for the spec fetch.
type Options struct {
	Generator produce.Generator
	Log       *runlog.Store
	Client    *http.Client
}

// Run executes the full pipeline. Execution is strictly sequential: the
// spec fetch completes before compilation, every section directory exists
// before the first job runs, and each job finishes (or fails) before the
// next starts. The first error aborts the run; files written by earlier
// jobs stay on disk.
func Run(ctx context.Context, cfg *types.Configuration, run types.RunConfig, opts Options, w io.Writer) (Summary, error) {
	idx, err := apispec.Fetch(ctx, cfg.Global.APISpecRef, opts.Client)
	if err != nil {
		return Summary{}, err
	}
	if idx.Len() > 0 {
		fmt.Fprintf(w, "indexed %s %s (%d endpoints)\n", idx.Title, idx.Version, idx.Len())
	}

	jobs := plan.Compile(cfg, run)
	summary := Summary{Planned: len(jobs)}

	// Directories for every configured section, before any job and
	// independent of restricted-mode filtering.
	if err := site.EnsureSectionDirs(run.OutputRoot, cfg.Content.Sections); err != nil {
		return summary, err
	}

	runID := startRun(ctx, opts.Log, run, len(jobs), w)
	completed := 0

	for _, job := range jobs {
		start := time.Now()
		content, err := produce.Produce(ctx, job, cfg.Global, idx, opts.Generator)
		if err == nil {
			err = site.Write(job, content)
		}

		recordJob(ctx, opts.Log, runID, job, err, time.Since(start), w)

		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", job.Identity, err)
			finishRun(ctx, opts.Log, runID, completed, "failed", err.Error(), w)
			return summary, err
		}

		fmt.Fprintf(w, "%-9s %s\n", string(job.Mode), job.Identity)
		completed++
		if job.Mode == types.ModeTemplated {
			summary.Templated++
		} else {
			summary.Generated++
		}
	}

	finishRun(ctx, opts.Log, runID, completed, "succeeded", "", w)
	return summary, nil
}

// startRun records the run start. Run logging is best effort: failures
// warn and generation proceeds.
func startRun(ctx context.Context, log *runlog.Store, run types.RunConfig, planned int, w io.Writer) int64 {
	if log == nil {
		return 0
	}
	mode := "full"
	if run.Restricted {
		mode = "restricted"
	}
	id, err := log.StartRun(ctx, mode, planned)
	if err != nil {
		fmt.Fprintf(w, "warning: run log unavailable: %v\n", err)
		return 0
	}
	return id
}

func recordJob(ctx context.Context, log *runlog.Store, runID int64, job types.Job, jobErr error, dur time.Duration, w io.Writer) {
	if log == nil || runID == 0 {
		return
	}
	rec := runlog.JobRecord{
		Identity: job.Identity,
		Mode:     string(job.Mode),
		Status:   "succeeded",
		Duration: dur,
	}
	if jobErr != nil {
		rec.Status = "failed"
		rec.Error = jobErr.Error()
	}
	if err := log.RecordJob(ctx, runID, rec); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
}

func finishRun(ctx context.Context, log *runlog.Store, runID int64, completed int, status, errMsg string, w io.Writer) {
	if log == nil || runID == 0 {
		return
	}
	if err := log.FinishRun(ctx, runID, completed, status, errMsg); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
}
