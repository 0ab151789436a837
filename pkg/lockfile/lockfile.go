package lockfile

import (
	"context"
	"time"

	"github.com/matzehuels/pkgdeps/pkg/cache"
)

// DependencyType classifies how one package depends on another.
// Dev dependencies are decoded but never reported.
type DependencyType string

const (
	Normal   DependencyType = "normal"
	Peer     DependencyType = "peer"
	Optional DependencyType = "optional"
)

// Types lists the reported dependency types in collection order.
var Types = []DependencyType{Normal, Peer, Optional}

// Dependency is one entry of a dependency or dependent list.
// Version is a version range for dependencies and a resolved version for
// dependents; it is "" when unknown, never absent.
type Dependency struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Type    DependencyType `json:"type"`
}

// String returns the dependency as "name@version".
func (d Dependency) String() string {
	return d.Name + "@" + d.Version
}

// Result is the answer to [Analyzer.Analyze] for a single package name.
type Result struct {
	Name         string       `json:"name"`
	Version      string       `json:"version,omitempty"` // "" when no base entry exists
	Found        bool         `json:"found"`             // a base (unqualified) entry was found
	Dependencies []Dependency `json:"dependencies"`
	DependedBy   []Dependency `json:"dependedBy"`
}

// ByType returns the entries of deps with the given type, preserving order.
func ByType(deps []Dependency, t DependencyType) []Dependency {
	var out []Dependency
	for _, d := range deps {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

// Analyzer decodes a lockfile and answers dependency queries against it.
//
// Init must succeed before any query; queries made earlier fail with
// errors.ErrCodeNotInitialized. After Init the decoded tables are immutable,
// so queries may run concurrently.
type Analyzer interface {
	// Type returns the lockfile format identifier (e.g., "pnpm-lock.yaml").
	Type() string
	// Init reads and decodes the lockfile. Structural problems fail with
	// errors.ErrCodeInvalidLockfile.
	Init(ctx context.Context) error
	// Analyze reports the dependencies and direct dependents of name.
	// Unknown names yield an empty result, not an error.
	Analyze(name string) (*Result, error)
	// PackageNames returns every distinct package name in the lockfile.
	PackageNames() ([]string, error)
	// TraceDependencyChain walks dependents of name transitively.
	TraceDependencyChain(name string) (*Trace, error)
}

// Options configures analyzer behavior.
type Options struct {
	// ExactSelfMatch skips only entries whose parsed name equals the query
	// when searching for dependents. When false, any entry whose key contains
	// the query as a substring is skipped, which also hides packages such as
	// "react-dom" when querying "react".
	ExactSelfMatch bool

	// TraceByInstance keys the trace visited-set by name@version instead of
	// by name, so distinct resolved instances are expanded separately.
	TraceByInstance bool

	// Cache stores decoded documents keyed by lockfile content (optional).
	Cache cache.Cache

	// Keyer derives cache keys (optional).
	Keyer cache.Keyer

	// CacheTTL is how long decoded documents stay cached.
	CacheTTL time.Duration

	// Logger receives progress and non-fatal errors (optional).
	Logger func(string, ...any)
}

// DefaultOptions returns the recommended options: exact self matching and
// no cache.
func DefaultOptions() Options {
	return Options{ExactSelfMatch: true}.WithDefaults()
}

// WithDefaults returns a copy of Options with nil collaborators replaced by
// no-op implementations.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}
