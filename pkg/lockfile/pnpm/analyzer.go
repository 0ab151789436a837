package pnpm

import (
	"context"
	"encoding/json"
	"os"
	"time"

	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
	"github.com/matzehuels/pkgdeps/pkg/lockfile"
	"github.com/matzehuels/pkgdeps/pkg/observability"
)

// FileName is the only lockfile name this package handles.
const FileName = "pnpm-lock.yaml"

// cacheKeyType labels cache events for decoded documents.
const cacheKeyType = "lockfile"

// Supports reports whether a lockfile base name is handled by this package.
func Supports(name string) bool { return name == FileName }

// Analyzer answers dependency queries over one pnpm lockfile.
type Analyzer struct {
	path string
	opts lockfile.Options
	doc  *Document
}

// New creates an analyzer for the lockfile at path. Call Init before querying.
func New(path string, opts lockfile.Options) *Analyzer {
	return &Analyzer{path: path, opts: opts.WithDefaults()}
}

// NewFromDocument creates an already-initialized analyzer over doc.
func NewFromDocument(doc *Document, opts lockfile.Options) *Analyzer {
	return &Analyzer{opts: opts.WithDefaults(), doc: doc}
}

// Type returns the lockfile file name.
func (a *Analyzer) Type() string { return FileName }

// Init reads and decodes the lockfile, using the configured cache when the
// same content was decoded before.
func (a *Analyzer) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "lockfile not found: %s", a.path)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidLockfile, err, "read lockfile %s", a.path)
	}

	key := a.opts.Keyer.LockfileKey(FileName, data)
	if doc, ok := a.cached(ctx, key); ok {
		a.doc = doc
		return nil
	}

	hooks := observability.Decode()
	hooks.OnDecodeStart(ctx, FileName, len(data))
	start := time.Now()
	doc, err := Decode(data)
	if err != nil {
		hooks.OnDecodeComplete(ctx, FileName, 0, time.Since(start), err)
		return err
	}
	hooks.OnDecodeComplete(ctx, FileName, doc.Packages.Len(), time.Since(start), nil)

	a.store(ctx, key, doc)
	a.doc = doc
	return nil
}

// Document returns the decoded document, or nil before Init.
func (a *Analyzer) Document() *Document { return a.doc }

// PackageNames returns every distinct package name in the packages table.
func (a *Analyzer) PackageNames() ([]string, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	return doc.PackageNames(), nil
}

func (a *Analyzer) document() (*Document, error) {
	if a.doc == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeNotInitialized, "lockfile not initialized")
	}
	return a.doc, nil
}

func (a *Analyzer) cached(ctx context.Context, key string) (*Document, bool) {
	data, hit, err := a.opts.Cache.Get(ctx, key)
	if err != nil {
		a.opts.Logger("cache read failed: %v", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		a.opts.Logger("discarding unreadable cache entry: %v", err)
		_ = a.opts.Cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &doc, true
}

func (a *Analyzer) store(ctx context.Context, key string, doc *Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		a.opts.Logger("cache encode failed: %v", err)
		return
	}
	if err := a.opts.Cache.Set(ctx, key, data, a.opts.CacheTTL); err != nil {
		a.opts.Logger("cache write failed: %v", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

var _ lockfile.Analyzer = (*Analyzer)(nil)
