// Package batch applies one edit script to many files in parallel,
// one buffer per file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"lined/internal/buffer"
	"lined/internal/diag"
	"lined/internal/script"
	"lined/internal/trace"
)

var (
	ErrNoScript        = errors.New("batch: no script")
	ErrDuplicateOutput = errors.New("batch: two inputs map to the same output")
)

// Run processes every file in req.Files. Per-file failures are recorded in
// the matching Result and do not stop other files; the returned error is
// reserved for bad requests and cancellation. Results keep input order.
func Run(ctx context.Context, req Request) ([]Result, error) {
	if req.Script == nil {
		return nil, ErrNoScript
	}
	outputs, err := outputPaths(req.Files, req.OutDir)
	if err != nil {
		return nil, err
	}
	if len(req.Files) == 0 {
		return nil, nil
	}

	sink := req.Progress
	if sink == nil {
		sink = NopSink{}
	}
	for _, file := range req.Files {
		sink.OnEvent(Event{File: file, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 100
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeCommand, "batch.run", 0).
		WithExtra("files", strconv.Itoa(len(req.Files)))
	defer runSpan.End("")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Result, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))

	for i, file := range req.Files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = processFile(tracer, runSpan.ID(), req, file, outputs[i], maxDiag, sink)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func processFile(tracer trace.Tracer, parent uint64, req Request, file, output string, maxDiag int, sink Sink) Result {
	start := time.Now()
	span := trace.Begin(tracer, trace.ScopeFile, "batch.file", parent).WithExtra("file", file)

	res := Result{File: file, Output: output, Bag: diag.NewBag(maxDiag)}
	buf := buffer.New(file,
		buffer.WithLimits(req.Limits),
		buffer.WithReporter(diag.BagReporter{Bag: res.Bag}),
		buffer.WithVerbose(req.Verbose),
		buffer.WithTracer(tracer),
		buffer.WithTraceParent(span.ID()),
	)

	stage := func(st Stage, fn func() error) bool {
		res.Stage = st
		stageStart := time.Now()
		sink.OnEvent(Event{File: file, Stage: st, Status: StatusWorking})
		if err := fn(); err != nil {
			res.Err = err
			sink.OnEvent(Event{File: file, Stage: st, Status: StatusError, Err: err, Elapsed: time.Since(stageStart)})
			return false
		}
		return true
	}

	ok := stage(StageLoad, func() error {
		_, err := buf.Load()
		return err
	}) && stage(StageEdit, func() error {
		n, err := script.Apply(buf, req.Script)
		res.Applied = n
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.ScrEditFailed, "apply", file,
				"stopped after", n, "of", len(req.Script.Edits), "edits").
				WithNote(err.Error()).
				Emit()
		}
		return err
	}) && stage(StageWrite, func() error {
		var err error
		if output == file {
			res.Stats, err = buf.Overwrite()
			return err
		}
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOWriteError, "saveAs", output,
				"Could not create directory", filepath.Dir(output)).
				WithNote(err.Error()).
				Emit()
			return err
		}
		res.Stats, err = buf.SaveAs(output)
		return err
	})

	res.Elapsed = time.Since(start)
	if ok {
		sink.OnEvent(Event{File: file, Stage: StageWrite, Status: StatusDone, Elapsed: res.Elapsed})
		span.WithExtra("applied", strconv.Itoa(res.Applied))
		span.End("ok")
	} else {
		span.End(fmt.Sprintf("%s failed", res.Stage))
	}
	return res
}

// outputPaths maps each input to its destination. Local relative inputs keep
// their relative layout under outDir; anything else is placed by base name.
func outputPaths(files []string, outDir string) ([]string, error) {
	out := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		dest := file
		if outDir != "" {
			rel := filepath.Clean(file)
			if !filepath.IsLocal(rel) {
				rel = filepath.Base(rel)
			}
			dest = filepath.Join(outDir, rel)
		}
		key := filepath.Clean(dest)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s and %s -> %s", ErrDuplicateOutput, prev, file, dest)
		}
		seen[key] = file
		out[i] = dest
	}
	return out, nil
}
