package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"talfront/internal/pipeline"
	"talfront/internal/trace"
)

// SourceExts are the extensions ParseDir picks up.
var SourceExts = []string{".tal", ".txt"}

// ListSources возвращает отсортированный список исходников TAL в директории.
// Файлы, которые сами являются выводом (_pseudocode.txt), пропускаются.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSource(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// IsSource reports whether path names a TAL source by its extension.
func IsSource(path string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, "_pseudocode.txt") {
		return false
	}
	for _, ext := range SourceExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ParseDir runs Parse over every source under dir in parallel. Results
// come back in ListSources order; a file that fails carries its error in
// FileResult.Err and does not stop the others.
func ParseDir(ctx context.Context, dir string, opts Options) ([]*FileResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	return ParseFiles(ctx, files, opts)
}

// ParseFiles is ParseDir over an explicit list.
func ParseFiles(ctx context.Context, files []string, opts Options) ([]*FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	opts = opts.normalized()
	for _, path := range files {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusQueued})
	}

	span, ctx := trace.Start(ctx, trace.ScopeDriver, "parse_files")
	defer span.End("")

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Parse(gctx, path, opts)
			if err != nil {
				res = &FileResult{Path: path, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
