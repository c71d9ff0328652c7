// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package markers

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// Option configures a Decorator.
type Option func(*Decorator)

// WithDescription sets the human-readable description of the test case.
func WithDescription(description string) Option {
	return func(d *Decorator) { d.meta.Description = &description }
}

// WithPriority sets the priority level. Values are free-form, e.g. "high"
// or "P0".
func WithPriority(priority string) Option {
	return func(d *Decorator) { d.meta.Priority = &priority }
}

// WithComponent sets the component under test.
func WithComponent(component string) Option {
	return func(d *Decorator) { d.meta.Component = &component }
}

// WithOutput sends the metadata block to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Decorator) { d.out = w }
}

// WithLogger sets the logger used for debug events. Nil restores the no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decorator) {
		if logger == nil {
			logger = zap.NewNop()
		}
		d.logger = logger
	}
}

// WithMetrics records declarations and invocations in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Decorator) { d.metrics = m }
}

// Decorator wraps test functions with one immutable Metadata record.
type Decorator struct {
	meta    Metadata
	out     io.Writer
	logger  *zap.Logger
	metrics *Metrics
}

// Requirement validates testcaseID and returns a Decorator carrying it
// and the optional fields set by opts.
//
// testcaseID is stored verbatim. It fails with an InvalidTestError when
// the ID is empty after trimming whitespace.
func Requirement(testcaseID string, opts ...Option) (*Decorator, error) {
	id, err := ValidateTestcaseID(testcaseID)
	if err != nil {
		return nil, err
	}

	d := &Decorator{
		meta:   Metadata{TestcaseID: id},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.logger.Debug("requirement declared", zap.String("testcase_id", id))
	d.metrics.declared()
	return d, nil
}

// MustRequirement is like Requirement but panics if the ID is invalid.
// It simplifies package-level declarations of test cases.
func MustRequirement(testcaseID string, opts ...Option) *Decorator {
	d, err := Requirement(testcaseID, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Metadata returns a copy of the decorator's record.
func (d *Decorator) Metadata() Metadata {
	return d.meta.clone()
}

// Test wraps a Go test function.
func (d *Decorator) Test(fn func(*testing.T)) *Func[func(*testing.T)] {
	return Apply(d, fn)
}

// Run wraps fn and runs it as a subtest of t named after the test case ID.
// It reports whether the subtest succeeded.
func (d *Decorator) Run(t *testing.T, fn func(*testing.T)) bool {
	t.Helper()
	return t.Run(d.meta.TestcaseID, Apply(d, fn).Call)
}

func (d *Decorator) writer() io.Writer {
	if d.out != nil {
		return d.out
	}
	// Resolved per call so that a replaced os.Stdout is honoured.
	return os.Stdout
}

// Annotated is implemented by every wrapped function.
type Annotated interface {
	Metadata() Metadata
}

// Lookup returns the record attached to v if v is a wrapped function.
func Lookup(v any) (Metadata, bool) {
	a, ok := v.(Annotated)
	if !ok {
		return Metadata{}, false
	}
	return a.Metadata(), true
}

// Func is a function wrapped by a Decorator.
//
// Call has the same type as the target. Calling it prints the metadata
// block, then calls the target with the same arguments and returns its
// results unchanged. Panics raised by the target propagate unchanged.
type Func[F any] struct {
	Call F

	target F
	meta   Metadata
	name   string
	module string
	dec    *Decorator
}

// Apply wraps fn with d. It panics if fn is not a non-nil function.
func Apply[F any](d *Decorator, fn F) *Func[F] {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("markers: Apply requires a non-nil function, got %T", fn))
	}

	name, module := symbolName(v)
	f := &Func[F]{
		target: fn,
		meta:   d.meta.clone(),
		name:   name,
		module: module,
		dec:    d,
	}

	typ := v.Type()
	call := reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		f.announce()
		defer f.dec.metrics.observe(f.meta, time.Now())
		if typ.IsVariadic() {
			return v.CallSlice(args)
		}
		return v.Call(args)
	})
	f.Call = call.Interface().(F)

	d.logger.Debug("test function decorated",
		zap.String("testcase_id", f.meta.TestcaseID),
		zap.String("function", name),
		zap.String("module", module),
	)
	return f
}

// Metadata returns a copy of the attached record. It is available whether
// or not Call has run.
func (f *Func[F]) Metadata() Metadata {
	return f.meta.clone()
}

// Name returns the name of the target function within its package, such
// as "TestLogin" or "(*Suite).TestLogin".
func (f *Func[F]) Name() string { return f.name }

// Module returns the import path of the package declaring the target.
func (f *Func[F]) Module() string { return f.module }

// Unwrap returns the target function.
func (f *Func[F]) Unwrap() F { return f.target }

func (f *Func[F]) announce() {
	f.dec.logger.Debug("invoking test case",
		zap.String("testcase_id", f.meta.TestcaseID),
		zap.String("function", f.name),
	)
	// A single write keeps one block contiguous when tests run in parallel.
	_, _ = io.WriteString(f.dec.writer(), f.meta.Banner(f.name, f.module))
}

// symbolName splits the runtime symbol of fn into the function name and
// the import path of its package.
func symbolName(fn reflect.Value) (name, module string) {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return "", ""
	}
	full := strings.TrimSuffix(rf.Name(), "-fm")

	// The package path ends at the first dot after the last slash.
	pkgStart := strings.LastIndex(full, "/") + 1
	dot := strings.Index(full[pkgStart:], ".")
	if dot < 0 {
		return full, ""
	}
	// The linker escapes dots in the last path element.
	return full[pkgStart+dot+1:], strings.ReplaceAll(full[:pkgStart+dot], "%2e", ".")
}
