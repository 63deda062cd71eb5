package driver

import (
	"context"
	"fmt"
	"time"

	"talfront/internal/hybrid"
	"talfront/internal/observ"
	"talfront/internal/pipeline"
	"talfront/internal/project"
	"talfront/internal/source"
	"talfront/internal/trace"
	"talfront/internal/transpile"
	"talfront/internal/version"
)

// Parse reads path and runs the configured mode over it.
func Parse(ctx context.Context, path string, opts Options) (*FileResult, error) {
	opts = opts.normalized()
	start := time.Now()
	timer := newTimer(opts.Timings)

	pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	idx := timer.Begin(observ.PhaseRead)
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		err = fmt.Errorf("read %s: %w", path, err)
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: err})
		return nil, err
	}
	return run(ctx, fs.Get(id), timer, start, opts)
}

// ParseBytes runs the configured mode over in-memory source, e.g. stdin.
func ParseBytes(ctx context.Context, name string, src []byte, opts Options) (*FileResult, error) {
	opts = opts.normalized()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	return run(ctx, file, newTimer(opts.Timings), time.Now(), opts)
}

func newTimer(enabled bool) *observ.Timer {
	if !enabled {
		return nil
	}
	return observ.NewTimer()
}

// CacheKey identifies a document: file content, the pattern set and the
// tool version.
func CacheKey(file *source.File, gen *hybrid.Generator) project.Digest {
	return project.Combine(project.Digest(file.Hash),
		project.StringDigest(gen.Fingerprint()),
		project.StringDigest(version.Version))
}

func run(ctx context.Context, file *source.File, timer *observ.Timer, start time.Time, opts Options) (*FileResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeFile, file.Path)
	defer span.End("")

	res := &FileResult{Path: file.Path, File: file, Timer: timer}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Mode.wantsDocument() {
		key := CacheKey(file, opts.Generator)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			opts.Logger.Warn("cache read failed", "file", file.Path, "err", err)
		}
		if hit {
			res.Doc = payload.Doc
			res.Cached = true
			pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusCached, Coverage: res.Doc.Coverage})
			opts.Logger.Debug("cache hit", "file", file.Path)
		} else {
			pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
			idx := timer.Begin(observ.PhaseAssemble)
			res.Doc = opts.Generator.Generate(ctx, file.Content)
			timer.End(idx, res.Doc.CoverageText())
			// незавершённый документ не кэшируем
			if !res.Doc.Incomplete {
				if err := opts.Cache.Put(key, &DiskPayload{Path: file.Path, Doc: res.Doc}); err != nil {
					opts.Logger.Warn("cache write failed", "file", file.Path, "err", err)
				}
			}
		}
	}

	if opts.Mode.wantsTranspile() {
		pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageTranspile, Status: pipeline.StatusWorking})
		idx := timer.Begin(observ.PhaseTranspile)
		out, err := transpile.Transpile(file.Content, opts.Target)
		timer.End(idx, string(opts.Target))
		if err != nil {
			pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageTranspile, Status: pipeline.StatusError, Err: err})
			return nil, err
		}
		res.Transpiled = out
	}

	evt := pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusDone, Elapsed: time.Since(start)}
	if res.Doc != nil {
		evt.Coverage = res.Doc.Coverage
	}
	if res.Cached {
		evt.Status = pipeline.StatusCached
	}
	pipeline.Emit(opts.Sink, evt)
	return res, nil
}
