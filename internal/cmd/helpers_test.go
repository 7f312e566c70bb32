package cmd

import (
	"testing"

	"github.com/omodtool/cli/internal/testutil"
)

// buildFixtureArchive writes an omod archive holding the given config.xml
// into a temp dir and returns its path.
func buildFixtureArchive(t *testing.T, configXML string) string {
	t.Helper()
	return testutil.BuildModuleArchive(t, t.TempDir(), "fixture.omod", configXML)
}
