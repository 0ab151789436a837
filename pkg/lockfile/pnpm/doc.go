// Package pnpm implements [lockfile.Analyzer] for pnpm-lock.yaml files.
//
// The lockfile is decoded once into a [Document]: an order-preserving
// "packages" table keyed by package key ("/name@version" or
// "name@version(peer-qualifier)") and a "snapshots" table keyed by
// "name@version". Every query afterwards is a read-only scan of these tables
// in document order.
//
// # Dependencies
//
// Analyze collects the normal, peer and optional dependencies of the
// unqualified base entry for a name, then merges the normal and optional
// dependencies of its snapshot. Entries are de-duplicated by name with the
// first occurrence winning. Dev dependencies are decoded but never reported.
//
// # Dependents
//
// A package is a dependent when its normal, peer or optional dependencies
// name the queried package. TraceDependencyChain repeats the search for every
// dependent found, producing chains that link each dependent back to the
// package it depends on.
package pnpm
