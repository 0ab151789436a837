// Package pkg provides the core libraries for pkgdeps lockfile analysis.
//
// # Overview
//
// pkgdeps answers two questions about a package recorded in a lockfile: what
// does it depend on, and who depends on it (directly or through a chain of
// dependents up to a root). The pkg directory is organized into these areas:
//
//  1. [lockfile] - Format-independent analyzer contract and result types
//  2. [lockfile/pnpm] - pnpm-lock.yaml decoding and dependency queries
//  3. [lockfile/formats] - Analyzer selection by lockfile file name
//  4. [match] - Glob expansion of query patterns against package names
//  5. [render] - Text, JSON, DOT and SVG output
//
// # Architecture
//
// The typical data flow through pkgdeps:
//
//	pnpm-lock.yaml
//	      ↓
//	 [lockfile/pnpm] decode (ordered tables, cached by content hash)
//	      ↓
//	 [match] expand patterns against PackageNames
//	      ↓
//	 Analyze / TraceDependencyChain
//	      ↓
//	 [render] text, JSON, DOT or SVG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/pkgdeps/pkg/lockfile"
//	    "github.com/matzehuels/pkgdeps/pkg/lockfile/formats"
//	    "github.com/matzehuels/pkgdeps/pkg/render"
//	)
//
//	a, _ := formats.New("pnpm-lock.yaml", lockfile.DefaultOptions())
//	if err := a.Init(context.Background()); err != nil {
//	    return err
//	}
//	res, _ := a.Analyze("react")
//	render.Text(os.Stdout, res)
//
//	tr, _ := a.TraceDependencyChain("react")
//	render.Chains(os.Stdout, tr)
//
// # Supporting Packages
//
// [cache] - Content-addressed cache for decoded lockfiles. FileCache for the
// CLI, RedisCache for shared setups, NullCache when caching is disabled.
//
// [config] - TOML configuration file with defaults for the CLI flags.
//
// [errors] - Coded errors carrying a user-facing message and exit semantics.
//
// [observability] - Hook registry for decode and cache events.
//
// [buildinfo] - Version information stamped at build time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/lockfile/...           # Analyzer packages
//	go test -run Example                 # Examples only
//
// [lockfile]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/lockfile
// [lockfile/pnpm]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/lockfile/pnpm
// [lockfile/formats]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/lockfile/formats
// [match]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/match
// [render]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pkgdeps/pkg/buildinfo
package pkg
