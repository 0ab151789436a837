// Package lockfile defines the format-independent contract for inspecting
// package-manager lockfiles.
//
// An [Analyzer] decodes one lockfile once ([Analyzer.Init]) and then answers
// read-only queries about a single package name:
//
//   - [Analyzer.Analyze] reports what the package depends on (normal, peer and
//     optional dependencies) and which packages depend on it directly.
//   - [Analyzer.TraceDependencyChain] expands the full chain of dependents as a
//     forest of [ChainNode] values linked to their parents.
//   - [Analyzer.PackageNames] lists every distinct package name, which callers
//     use to expand wildcard patterns before querying.
//
// Concrete formats live in subpackages (see pnpm). The formats package
// selects an implementation by lockfile file name.
//
// # Package keys
//
// Lockfiles identify resolved instances with path-like keys such as
// "/unbuild@2.0.0(typescript@5.7.2)". [ParseKey] splits such a key into its
// name and version, keeping any parenthesized peer qualifier as part of the
// version.
package lockfile
