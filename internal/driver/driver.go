package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lime/internal/analysis"
	"lime/internal/diag"
	"lime/internal/source"
	"lime/internal/trace"
)

// SourceExt is the extension of lime source files.
const SourceExt = ".lime"

// Driver runs analysis over files and directories with one shared
// analysis.Context.
type Driver struct {
	opts   Options
	tracer trace.Tracer
	actx   *analysis.Context
}

func New(opts Options) *Driver {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Driver{
		opts:   opts,
		tracer: tracer,
		actx: analysis.NewContext(analysis.Options{
			Charset:        opts.Charset,
			Debug:          opts.Debug,
			MaxErrors:      opts.MaxErrors,
			MaxDiagnostics: opts.MaxDiagnostics,
			Tracer:         tracer,
		}),
	}
}

// Context exposes the analysis context shared by every file of the driver.
func (d *Driver) Context() *analysis.Context { return d.actx }

// FileResult is the outcome for one file.
type FileResult struct {
	Path string
	// Buffer is nil when the file could not be loaded.
	Buffer *source.Buffer
	// Unit is nil for cache hits and load failures.
	Unit *analysis.Unit
	// Bag holds the sorted diagnostics of the file.
	Bag    *diag.Bag
	Cached bool
}

func (r FileResult) HasErrors() bool { return r.Bag != nil && r.Bag.HasErrors() }

// AnalyseFile loads and analyses path, bypassing the disk cache.
func (d *Driver) AnalyseFile(path string) (*analysis.Unit, error) {
	return d.actx.AnalyseFile(path, true)
}

// Diagnose analyses path, a single file or a directory walked for *.lime.
func (d *Driver) Diagnose(ctx context.Context, path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return d.DiagnoseDir(ctx, path)
	}
	return []FileResult{d.DiagnoseFile(ctx, path, 0)}, nil
}

// DiagnoseDir analyses every *.lime file under dir in parallel. Results
// follow the sorted file order.
func (d *Driver) DiagnoseDir(ctx context.Context, dir string) ([]FileResult, error) {
	span := trace.Begin(d.tracer, trace.ScopeDriver, "diagnose-dir", 0).With("dir", dir)
	files, err := ListFiles(dir)
	if err != nil {
		span.End("walk failed")
		return nil, err
	}
	if len(files) == 0 {
		span.End("no files")
		return nil, nil
	}
	for _, path := range files {
		d.emit(ctx, Event{Path: path, Status: StatusQueued})
	}

	jobs := d.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.DiagnoseFile(gctx, path, span.ID())
			return nil
		})
	}
	err = g.Wait()
	span.End(fmt.Sprintf("files=%d", len(files)))
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DiagnoseFile loads and analyses one file. Load failures become an
// IOLoadFileError diagnostic in the result.
func (d *Driver) DiagnoseFile(ctx context.Context, path string, parent uint64) FileResult {
	span := trace.Begin(d.tracer, trace.ScopePass, "file", parent).With("path", path)
	d.emit(ctx, Event{Path: path, Status: StatusWorking})
	res := FileResult{Path: path, Bag: diag.NewBag(0)}

	var err error
	d.opts.Timer.Track("load", func() {
		res.Buffer, err = source.Load(path, d.opts.Charset)
	})
	if err != nil {
		res.Bag.Add(analysis.LoadFailure(path, err))
		span.End("load failed")
		d.emit(ctx, Event{Path: path, Status: StatusFailed, Errors: 1})
		return res
	}

	key := cacheKey(res.Buffer, d.opts)
	if d.opts.Cache != nil {
		var payload DiskPayload
		ok, err := d.opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(d.tracer, trace.ScopePass, "cache-read", err.Error(), span.ID())
		}
		if ok {
			for _, item := range payload.restore(d.bufferLookup(res.Buffer)) {
				res.Bag.Add(item)
			}
			res.Cached = true
			span.End("cached")
			d.emit(ctx, Event{Path: path, Status: StatusCached, Errors: countErrors(res.Bag)})
			return res
		}
	}

	d.opts.Timer.Track("analyse", func() {
		res.Unit = d.actx.AnalyseSource(res.Buffer, true)
	})
	for _, item := range res.Unit.Diagnostics() {
		res.Bag.Add(item)
	}
	res.Bag.Sort()

	if d.opts.Cache != nil {
		if err := d.opts.Cache.Put(key, toPayload(path, res.Bag.Items())); err != nil {
			trace.Point(d.tracer, trace.ScopePass, "cache-write", err.Error(), span.ID())
		}
	}
	span.End(res.Unit.Resolution().String())
	d.emit(ctx, Event{Path: path, Status: StatusDone, Errors: countErrors(res.Bag)})
	return res
}

func (d *Driver) bufferLookup(buf *source.Buffer) func(string) *source.Buffer {
	return func(id string) *source.Buffer {
		switch id {
		case buf.ID():
			return buf
		case analysis.PreludeID:
			return d.actx.Prelude().Buffer()
		}
		return nil
	}
}

func (d *Driver) emit(ctx context.Context, ev Event) {
	if d.opts.Events == nil {
		return
	}
	select {
	case d.opts.Events <- ev:
	case <-ctx.Done():
	}
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}

// ListFiles возвращает отсортированный список всех *.lime файлов в директории.
// Скрытые каталоги пропускаются.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			if path != dir && strings.HasPrefix(e.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
