package descriptor

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omodtool/cli/internal/testutil"
)

const basicConfigXML = `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="1.6">
	<name>Basic Example</name>
	<id>basicexample</id>
	<version>1.2.3</version>
	<package>org.openmrs.module.basicexample</package>
	<author>Ben</author>
	<description>Example module used in tests</description>
	<activator>org.openmrs.module.basicexample.BasicActivator</activator>
	<require_version>2.0.0</require_version>
</module>`

func quietLogger() Option {
	return WithLogger(log.New(io.Discard))
}

// --- constructors ---

func TestNew_RejectsEmptyPath(t *testing.T) {
	_, err := New("", quietLogger())

	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
}

func TestNew_RejectsWrongExtension(t *testing.T) {
	for _, path := range []string{"module.jar", "module.zip", "module"} {
		_, err := New(path, quietLogger())

		var inErr *InputError
		require.ErrorAs(t, err, &inErr, "path %q", path)
		assert.Equal(t, path, inErr.Path)
	}
}

func TestNew_AcceptsOmodPathWithoutOpening(t *testing.T) {
	// The file does not exist; New must not touch it.
	p, err := New("/nonexistent/basicexample-1.2.3.omod", quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "/nonexistent/basicexample-1.2.3.omod", p.Path())
}

func TestNewFromReader_StagesStreamToOmodFile(t *testing.T) {
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "basicexample.omod", basicConfigXML)
	f, err := os.Open(archive)
	require.NoError(t, err)
	defer f.Close()

	p, err := NewFromReader(f, quietLogger())
	require.NoError(t, err)
	defer p.Close()

	assert.True(t, strings.HasSuffix(p.Path(), ".omod"))

	desc, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "basicexample", desc.ID)
}

func TestClose_RemovesStagedFile(t *testing.T) {
	p, err := NewFromReader(strings.NewReader("not a real archive"), quietLogger())
	require.NoError(t, err)

	staged := p.Path()
	_, statErr := os.Stat(staged)
	require.NoError(t, statErr)

	require.NoError(t, p.Close())
	_, statErr = os.Stat(staged)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClose_NoopForCallerOwnedPath(t *testing.T) {
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "basicexample.omod", basicConfigXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, statErr := os.Stat(archive)
	assert.NoError(t, statErr)
}

// --- end to end parsing ---

func TestParse_WellFormedModule(t *testing.T) {
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "basicexample-1.2.3.omod", basicConfigXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	desc, err := p.Parse()
	require.NoError(t, err)

	assert.Equal(t, "Basic Example", desc.Name)
	assert.Equal(t, "basicexample", desc.ID)
	assert.Equal(t, "1.2.3", desc.Version)
	assert.Equal(t, "org.openmrs.module.basicexample", desc.PackageName)
	assert.Equal(t, "Ben", desc.Author)
	assert.Equal(t, "org.openmrs.module.basicexample.BasicActivator", desc.ActivatorClassName)
	assert.Equal(t, "2.0.0", desc.RequiredPlatformVersion)
	assert.Equal(t, "1.6", desc.ConfigVersion)
	assert.False(t, desc.Mandatory)
	assert.Equal(t, archive, desc.SourcePath)

	// collection fields default to empty, not to an error
	assert.Empty(t, desc.RequiredModules)
	assert.Empty(t, desc.AdvicePoints)
	assert.Empty(t, desc.ExtensionPoints)
	assert.Empty(t, desc.Privileges)
	assert.Empty(t, desc.GlobalProperties)
	assert.Empty(t, desc.ConditionalResources)

	// the raw document stays reachable for unmodeled content
	require.NotNil(t, desc.Document)
	assert.Equal(t, "module", desc.Document.Root().Tag)
}

func TestParse_IsRepeatable(t *testing.T) {
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "basicexample.omod", basicConfigXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	first, err := p.Parse()
	require.NoError(t, err)
	second, err := p.Parse()
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotSame(t, first, second)
}

func TestParse_RichDescriptor(t *testing.T) {
	configXML := `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="1.5">
	<name>Rich Example</name>
	<id>richexample</id>
	<version>2.0</version>
	<package>org.openmrs.module.richexample</package>
	<require_modules>
		<require_module version="1.1">org.openmrs.module.dependency</require_module>
	</require_modules>
	<extension>
		<point>org.openmrs.admin.list</point>
		<class>org.openmrs.module.richexample.AdminList</class>
	</extension>
	<privilege>
		<name>Manage Rich Example</name>
		<description>Able to configure the module</description>
	</privilege>
	<globalProperty>
		<property>richexample.enabled</property>
		<defaultValue>true</defaultValue>
		<description>Whether the module is active</description>
	</globalProperty>
	<mandatory>true</mandatory>
	<mappingFiles>RichExample.hbm.xml</mappingFiles>
</module>`
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "richexample-2.0.omod", configXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	desc, warnings, err := p.ParseDetailed()
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, map[string]string{"org.openmrs.module.dependency": "1.1"}, desc.RequiredModules)
	assert.Equal(t, map[string]string{"org.openmrs.admin.list": "org.openmrs.module.richexample.AdminList"}, desc.ExtensionPoints)
	assert.Equal(t, []Privilege{{Name: "Manage Rich Example", Description: "Able to configure the module"}}, desc.Privileges)
	require.Len(t, desc.GlobalProperties, 1)
	assert.Equal(t, "richexample.enabled", desc.GlobalProperties[0].Property)
	assert.Equal(t, []string{"RichExample.hbm.xml"}, desc.MappingFiles)
	assert.True(t, desc.Mandatory)
}

func TestParseDetailed_ReturnsSkippedEntryWarnings(t *testing.T) {
	configXML := `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="1.6">
	<name>Warned Example</name>
	<id>warnedexample</id>
	<package>org.openmrs.module.warnedexample</package>
	<advice>
		<point>org.openmrs.api.PatientService</point>
	</advice>
	<privilege>
		<description>No name given</description>
	</privilege>
</module>`
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "warnedexample.omod", configXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	desc, warnings, err := p.ParseDetailed()
	require.NoError(t, err)
	require.NotNil(t, desc)

	require.Len(t, warnings, 2)
	assert.Equal(t, "advice", warnings[0].Element)
	assert.Equal(t, "privilege", warnings[1].Element)
}

func TestParse_MandatoryElementIgnoredBeforeOnePointThree(t *testing.T) {
	configXML := `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="1.2">
	<name>Basic</name>
	<id>basicmodule</id>
	<package>org.openmrs.module.basic</package>
	<mandatory>true</mandatory>
</module>`
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "basicmodule.omod", configXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	desc, err := p.Parse()
	require.NoError(t, err)
	assert.False(t, desc.Mandatory)
}

func TestParse_DuplicateConditionalResourcesBlocks(t *testing.T) {
	configXML := `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="1.6">
	<name>Basic</name>
	<id>basicmodule</id>
	<package>org.openmrs.module.basic</package>
	<conditionalResources>
		<conditionalResource><path>/lib/a.jar</path></conditionalResource>
	</conditionalResources>
	<conditionalResources>
		<conditionalResource><path>/lib/b.jar</path></conditionalResource>
	</conditionalResources>
</module>`
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "basicmodule.omod", configXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	desc, err := p.Parse()
	assert.Nil(t, desc)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

// --- failure surfaces ---

func TestParse_NotAnArchive(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "broken.omod", "this is not a zip archive")

	p, err := New(path, quietLogger())
	require.NoError(t, err)

	_, err = p.Parse()
	var archErr *ArchiveError
	require.ErrorAs(t, err, &archErr)
	assert.Equal(t, "broken.omod", archErr.Artifact)
	assert.Error(t, archErr.Unwrap())
}

func TestParse_MissingDescriptorEntry(t *testing.T) {
	archive := testutil.BuildArchive(t, t.TempDir(), "nodescriptor.omod", map[string]string{
		"lib/api.jar": "jar bytes",
	})

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	_, err = p.Parse()
	var missErr *MissingDescriptorError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, "nodescriptor.omod", missErr.Artifact)
}

func TestParse_MalformedDescriptorXML(t *testing.T) {
	for name, content := range map[string]string{
		"truncated":  `<module configVersion="1.6"><name>Broken`,
		"empty":      "",
		"plain text": "not xml at all",
	} {
		t.Run(name, func(t *testing.T) {
			archive := testutil.BuildModuleArchive(t, t.TempDir(), "malformed.omod", content)

			p, err := New(archive, quietLogger())
			require.NoError(t, err)

			_, err = p.Parse()
			var fmtErr *FormatError
			require.ErrorAs(t, err, &fmtErr)
			assert.Equal(t, "malformed.omod", fmtErr.Artifact)
		})
	}
}

func TestParse_ValidationFailurePropagates(t *testing.T) {
	configXML := `<?xml version="1.0" encoding="UTF-8"?>
<module configVersion="3.0">
	<name>Future Example</name>
	<id>futureexample</id>
	<package>org.openmrs.module.futureexample</package>
</module>`
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "futureexample.omod", configXML)

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	desc, err := p.Parse()
	assert.Nil(t, desc)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "futureexample.omod", vErr.Artifact)
}

func TestParse_DescriptorInSubdirectoryDoesNotCount(t *testing.T) {
	// Only a top-level config.xml entry qualifies.
	archive := testutil.BuildArchive(t, t.TempDir(), "nested.omod", map[string]string{
		"metadata/config.xml": basicConfigXML,
	})

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	_, err = p.Parse()
	var missErr *MissingDescriptorError
	assert.ErrorAs(t, err, &missErr)
}

func TestParse_ArtifactNameIsBasename(t *testing.T) {
	archive := testutil.BuildModuleArchive(t, t.TempDir(), "deep.omod", "<broken")

	p, err := New(archive, quietLogger())
	require.NoError(t, err)

	_, err = p.Parse()
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "deep.omod", fmtErr.Artifact)
	assert.NotContains(t, fmtErr.Artifact, string(os.PathSeparator))
}
