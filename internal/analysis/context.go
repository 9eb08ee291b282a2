package analysis

import (
	"encoding/hex"
	"sync"

	"github.com/tidwall/btree"
	"golang.org/x/sync/singleflight"

	"lime/internal/diag"
	"lime/internal/lexenv"
	"lime/internal/source"
	"lime/internal/trace"
)

// Options configures a Context.
type Options struct {
	// Charset used by AnalyseFile; empty means UTF-8.
	Charset string
	// Debug appends the stack trace to internal failure diagnostics.
	Debug bool
	// MaxErrors caps syntax errors per unit; 0 means no cap.
	MaxErrors uint
	// MaxDiagnostics caps each diagnostics bag of a unit; 0 means no cap.
	MaxDiagnostics int
	Tracer         trace.Tracer
	// ParentSpan attaches unit spans to the caller's trace span.
	ParentSpan uint64
}

// Context owns the prelude and the cache of analysed units, keyed by buffer
// id. It is safe for concurrent use; concurrent requests for the same id
// share one analysis.
type Context struct {
	opts       Options
	tracer     trace.Tracer
	prelude    *Unit
	preludeEnv *lexenv.Env

	mu    sync.Mutex
	units btree.Map[string, *Unit]
	group singleflight.Group

	// failpoint is called between phases; tests use it to inject panics.
	failpoint func(stage string, u *Unit)
}

func NewContext(opts Options) *Context {
	c := &Context{
		opts:      opts,
		tracer:    opts.Tracer,
		failpoint: func(string, *Unit) {},
	}
	if c.tracer == nil {
		c.tracer = trace.Nop
	}
	c.prelude, c.preludeEnv = newPrelude()
	c.prelude.ctx = c
	c.units.Set(PreludeID, c.prelude)
	return c
}

func (c *Context) Options() Options { return c.opts }

// Prelude returns the built-in unit.
func (c *Context) Prelude() *Unit { return c.prelude }

// PreludeEnv returns the frozen scope every module scope overlays.
func (c *Context) PreludeEnv() *lexenv.Env { return c.preludeEnv }

// AnalyseBuffer analyses content under id. Without reparse a unit already
// cached under id is returned as is, whatever content it was built from.
// The prelude id always yields the prelude.
func (c *Context) AnalyseBuffer(id, content string, reparse bool) *Unit {
	return c.AnalyseSource(source.NewBuffer(id, content), reparse)
}

// AnalyseSource is AnalyseBuffer for an already decoded buffer.
func (c *Context) AnalyseSource(buf *source.Buffer, reparse bool) *Unit {
	id := buf.ID()
	if id == PreludeID {
		return c.prelude
	}
	if !reparse {
		if u, ok := c.Lookup(id); ok {
			return u
		}
	}

	key := id
	if reparse {
		// один и тот же текст можно разделить, разный нельзя
		sum := buf.ContentHash()
		key = id + "#" + hex.EncodeToString(sum[:8])
	}
	v, _, _ := c.group.Do(key, func() (any, error) {
		if !reparse {
			if u, ok := c.Lookup(id); ok {
				return u, nil
			}
		}
		u := c.newUnit(buf)
		c.mu.Lock()
		c.units.Set(id, u)
		c.mu.Unlock()
		return u, nil
	})
	return v.(*Unit)
}

// AnalyseFile loads path with the context charset and analyses it under the
// cleaned path. A read or decode failure is returned as an error and
// nothing is cached.
func (c *Context) AnalyseFile(path string, reparse bool) (*Unit, error) {
	buf, err := source.Load(path, c.opts.Charset)
	if err != nil {
		return nil, err
	}
	return c.AnalyseSource(buf, reparse), nil
}

// LoadFailure converts an AnalyseFile error into a diagnostic.
func LoadFailure(path string, err error) diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, nil, path+": "+err.Error())
}

// Lookup returns the cached unit for id.
func (c *Context) Lookup(id string) (*Unit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.units.Get(id)
}

// Forget drops id from the cache. The prelude cannot be forgotten.
func (c *Context) Forget(id string) bool {
	if id == PreludeID {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.units.Delete(id)
	return ok
}

// Units returns the cached units ordered by id, prelude included.
func (c *Context) Units() []*Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Unit, 0, c.units.Len())
	c.units.Scan(func(_ string, u *Unit) bool {
		out = append(out, u)
		return true
	})
	return out
}

func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.units.Len()
}

func (c *Context) newUnit(buf *source.Buffer) *Unit {
	u := &Unit{
		ctx:        c,
		buf:        buf,
		parseDiags: diag.NewBag(c.opts.MaxDiagnostics),
		scopeDiags: diag.NewBag(c.opts.MaxDiagnostics),
	}
	u.build(c.opts.ParentSpan)
	return u
}
