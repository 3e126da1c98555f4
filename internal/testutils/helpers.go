package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// dumper is configured for deterministic output so dumps can be compared
// across runs.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders a value for failure messages and debugging.
func Dump(v any) string {
	return dumper.Sdump(v)
}

// SetupTestRepo creates a temporary directory and initializes a Loam
// repository in it. It returns the absolute path to the temp dir and the
// initialized repository. It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	// Loam sometimes prefers absolute paths; t.TempDir usually returns one
	// already but converting is safe.
	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteDefinition writes a markdown form definition into dir. The
// frontmatter is raw YAML (without the --- fences) and body becomes the
// form's help text. Loam discovers documents on demand, so writing after
// Init is fine.
func WriteDefinition(t *testing.T, dir, name, frontmatter, body string) string {
	t.Helper()

	content := "---\n" + frontmatter + "\n---\n" + body
	path := filepath.Join(dir, name+".md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
