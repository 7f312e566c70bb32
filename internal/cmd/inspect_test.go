package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Inspect(t *testing.T) {
	restore := outputFormatFlag
	t.Cleanup(func() { outputFormatFlag = restore })

	t.Run("wrong extension fails with not-found code", func(t *testing.T) {
		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"inspect", "module.jar"})

		err := rootCmd.Execute()
		require.Error(t, err)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, ExitNotFound, exitErr.Code)
	})

	t.Run("malformed descriptor fails with format code", func(t *testing.T) {
		archive := buildFixtureArchive(t, "")
		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"inspect", archive})

		err := rootCmd.Execute()
		require.Error(t, err)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, ExitFormatError, exitErr.Code)
	})

	t.Run("valid archive renders without error", func(t *testing.T) {
		archive := buildFixtureArchive(t, `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="1.4">
	<name>Basic</name>
	<id>basicmodule</id>
	<version>1.0</version>
	<package>org.openmrs.module.basic</package>
</module>`)

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"inspect", archive, "-o", "json"})

		require.NoError(t, rootCmd.Execute())
	})
}
