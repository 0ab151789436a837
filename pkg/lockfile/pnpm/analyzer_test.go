package pnpm

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pkgdeps/pkg/cache"
	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
	"github.com/matzehuels/pkgdeps/pkg/lockfile"
	"github.com/matzehuels/pkgdeps/pkg/observability"
)

func TestSupports(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"pnpm-lock.yaml", true},
		{"package-lock.json", false},
		{"yarn.lock", false},
		{"pnpm-lock.yml", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestAnalyzer_Type(t *testing.T) {
	if got := New("x", exact()).Type(); got != "pnpm-lock.yaml" {
		t.Errorf("Type() = %q, want %q", got, "pnpm-lock.yaml")
	}
}

func TestAnalyzer_Init(t *testing.T) {
	a := New(writeLockfile(t, peerLock), exact())
	require.NoError(t, a.Init(context.Background()))

	names, err := a.PackageNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d", "e"}, names)
}

func TestAnalyzer_InitMissingFile(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), FileName), exact())

	err := a.Init(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeFileNotFound))
}

func TestAnalyzer_InitInvalid(t *testing.T) {
	a := New(writeLockfile(t, "- not\n- a mapping\n"), exact())

	err := a.Init(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeInvalidLockfile))

	_, err = a.Analyze("a")
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeNotInitialized))
}

func TestAnalyzer_InitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(writeLockfile(t, simpleLock), exact()).Init(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_Cache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	opts := lockfile.DefaultOptions()
	opts.Cache = fc
	path := writeLockfile(t, scopedLock)

	first := New(path, opts)
	require.NoError(t, first.Init(context.Background()))

	key := cache.NewDefaultKeyer().LockfileKey(FileName, []byte(scopedLock))
	_, hit, err := fc.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, hit, "decoded document was not cached")

	second := New(path, opts)
	require.NoError(t, second.Init(context.Background()))

	want, err := first.Analyze("@babel/parser")
	require.NoError(t, err)
	got, err := second.Analyze("@babel/parser")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAnalyzer_CorruptCacheEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	key := cache.NewDefaultKeyer().LockfileKey(FileName, []byte(simpleLock))
	require.NoError(t, fc.Set(context.Background(), key, []byte("{not json"), time.Hour))

	var logged []string
	opts := lockfile.DefaultOptions()
	opts.Cache = fc
	opts.Logger = func(format string, args ...any) { logged = append(logged, format) }

	a := New(writeLockfile(t, simpleLock), opts)
	require.NoError(t, a.Init(context.Background()))
	assert.NotEmpty(t, logged)

	res, err := a.Analyze("a")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", res.Version)
}

type recordingHooks struct {
	observability.NoopCacheHooks
	observability.NoopDecodeHooks
	events []string
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.events = append(h.events, "hit:"+keyType)
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.events = append(h.events, "miss:"+keyType)
}

func (h *recordingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.events = append(h.events, "set:"+keyType)
}

func (h *recordingHooks) OnDecodeComplete(_ context.Context, format string, packages int, _ time.Duration, err error) {
	h.events = append(h.events, fmt.Sprintf("decode:%s:%d:%v", format, packages, err == nil))
}

func TestAnalyzer_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetDecodeHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	opts := lockfile.DefaultOptions()
	opts.Cache = fc
	path := writeLockfile(t, simpleLock)

	require.NoError(t, New(path, opts).Init(context.Background()))
	require.NoError(t, New(path, opts).Init(context.Background()))

	assert.Equal(t, []string{
		"miss:lockfile",
		"decode:pnpm-lock.yaml:2:true",
		"set:lockfile",
		"hit:lockfile",
	}, hooks.events)
}
