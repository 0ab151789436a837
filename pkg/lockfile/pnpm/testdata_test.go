package pnpm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// writeLockfile writes content to a pnpm-lock.yaml in a fresh temp dir.
func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// mustAnalyzer decodes content and returns an initialized analyzer.
func mustAnalyzer(t *testing.T, content string, opts lockfile.Options) *Analyzer {
	t.Helper()
	doc, err := Decode([]byte(content))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return NewFromDocument(doc, opts)
}

func exact() lockfile.Options { return lockfile.DefaultOptions() }

func legacy() lockfile.Options {
	opts := lockfile.DefaultOptions()
	opts.ExactSelfMatch = false
	return opts
}

const simpleLock = `lockfileVersion: '9.0'
packages:
  /a@1.0.0:
    dependencies:
      b: ^1.0.0
  /b@1.0.0: {}
`

const peerLock = `lockfileVersion: '9.0'
packages:
  /c@2.0.0(d@3.0.0):
    dependencies:
      e: 1.0.0
  /c@2.0.0:
    dependencies:
      e: ^1.0.0
    peerDependencies:
      d: ^3.0.0
  /d@3.0.0: {}
  /e@1.0.0: {}
`

const reactLock = `lockfileVersion: '9.0'
packages:
  react@18.2.0:
    version: 18.2.0
  react-dom@18.2.0:
    version: 18.2.0
    peerDependencies:
      react: ^18.2.0
  app@1.0.0:
    dependencies:
      react-dom: 18.2.0
      react: 18.2.0
`

const scopedLock = `lockfileVersion: '9.0'
packages:
  '@babel/core@7.23.0':
    dependencies:
      '@babel/parser': 7.23.0
  '@babel/parser@7.23.0': {}
snapshots:
  '@babel/core@7.23.0':
    dependencies:
      '@babel/parser': 7.23.0
  '@vue/compiler@3.4.0(@babel/core@7.23.0)':
    dependencies:
      '@babel/parser': 7.23.0
`
