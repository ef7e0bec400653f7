package pkgsource

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/lightfix/internal/fsops"
	"github.com/danieljhkim/lightfix/internal/records"
)

// SkipReason says why a declared package was not parsed.
type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipNotFound    SkipReason = "not found"
	SkipNotFixable  SkipReason = "not fixable"
	SkipExcluded    SkipReason = "excluded"
	SkipParseFailed SkipReason = "parse failed"
)

// Loaded is the outcome for one declared package.
type Loaded struct {
	Package records.Package

	// Err is the parse or read error, if any; the package then has no records
	Err error

	Skipped SkipReason
}

// PluginFilter decides whether a package is excluded by name.
type PluginFilter interface {
	ExcludesPlugin(name string) bool
}

// Loader resolves and parses the packages of a load order.
type Loader struct {
	fs       fsops.FS
	resolver *Resolver
	parser   Parser
	filter   PluginFilter
	ownName  string
	limit    int
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLimit caps the number of packages parsed at once.
func WithLimit(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithLogger sets the logger parse failures are reported to.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader. ownName is the overlay's file name, which is
// never loaded as an input.
func NewLoader(fs fsops.FS, resolver *Resolver, parser Parser, filter PluginFilter, ownName string, opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:       fs,
		resolver: resolver,
		parser:   parser,
		filter:   filter,
		ownName:  ownName,
		limit:    runtime.GOMAXPROCS(0),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses names and returns one result per name, in the same order.
// Only cancellation of ctx produces an error.
func (l *Loader) Load(ctx context.Context, names []string) ([]Loaded, error) {
	out := make([]Loaded, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, name := range names {
		out[i].Package.Name = name

		if l.filter != nil && l.filter.ExcludesPlugin(name) {
			out[i].Skipped = SkipExcluded
			continue
		}
		path, ok := l.resolver.Resolve(name)
		if !ok {
			out[i].Skipped = SkipNotFound
			continue
		}
		out[i].Package.Path = path
		if !IsFixable(path, l.ownName) {
			out[i].Skipped = SkipNotFixable
			continue
		}

		i, name := i, name // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = l.loadOne(name, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Loader) loadOne(name, path string) Loaded {
	res := Loaded{Package: records.Package{Name: name, Path: path}}

	info, err := l.fs.Stat(path)
	if err == nil {
		res.Package.Size = info.Size()
	}
	data, err := l.fs.ReadFile(path)
	if err == nil {
		var pkg records.Package
		if pkg, err = l.parser.Parse(name, data); err == nil {
			res.Package.Lights = pkg.Lights
			res.Package.Cells = pkg.Cells
			return res
		}
	}

	l.logger.Warn("failed to load package", "package", path, "error", err)
	res.Err = err
	res.Skipped = SkipParseFailed
	return res
}

// Packages returns the packages of results, in order, for merging. Skipped
// and failed entries contribute nothing.
func Packages(results []Loaded) []records.Package {
	pkgs := make([]records.Package, 0, len(results))
	for _, r := range results {
		if r.Skipped != SkipNone {
			continue
		}
		pkgs = append(pkgs, r.Package)
	}
	return pkgs
}
