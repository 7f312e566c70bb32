// Package cmdutil provides shared helpers for CLI command implementations.
package cmdutil

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
	"sigs.k8s.io/yaml"

	"github.com/omodtool/cli/internal/descriptor"
	"github.com/omodtool/cli/internal/output"
)

// RenderDescriptor writes the descriptor to stdout in the requested format.
func RenderDescriptor(desc *descriptor.ModuleDescriptor, format output.OutputFormat) error {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling descriptor to JSON: %w", err)
		}
		output.Println(string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(desc)
		if err != nil {
			return fmt.Errorf("marshaling descriptor to YAML: %w", err)
		}
		output.Print(string(data))
	default:
		output.Print(renderSummary(desc))
	}
	return nil
}

// renderSummary builds the human-readable summary. Styled output is only
// used when stdout is a terminal; piped output stays plain.
func renderSummary(desc *descriptor.ModuleDescriptor) string {
	styled := term.IsTerminal(int(os.Stdout.Fd()))

	var sb strings.Builder
	heading := fmt.Sprintf("%s (%s) %s", desc.Name, desc.ID, desc.Version)
	if styled {
		heading = output.StyleSummary.Render(heading)
	}
	sb.WriteString(heading + "\n")
	if desc.Description != "" {
		sb.WriteString(desc.Description + "\n")
	}
	sb.WriteString("\n")

	t := output.NewTable("FIELD", "VALUE")
	t.Row("package", desc.PackageName)
	t.Row("config version", desc.ConfigVersion)
	if desc.Author != "" {
		t.Row("author", desc.Author)
	}
	if desc.ActivatorClassName != "" {
		t.Row("activator", desc.ActivatorClassName)
	}
	if desc.RequiredPlatformVersion != "" {
		t.Row("requires platform", desc.RequiredPlatformVersion)
	}
	if desc.RequiredDatabaseVersion != "" {
		t.Row("requires database", desc.RequiredDatabaseVersion)
	}
	if desc.UpdateURL != "" {
		t.Row("update URL", desc.UpdateURL)
	}
	t.Row("mandatory", fmt.Sprintf("%t", desc.Mandatory))
	sb.WriteString(t.String() + "\n")

	if section := renderModuleRefs("required modules", desc.RequiredModules); section != "" {
		sb.WriteString("\n" + section)
	}
	if section := renderModuleRefs("aware of modules", desc.AwareOfModules); section != "" {
		sb.WriteString("\n" + section)
	}
	if section := renderModuleRefs("start before modules", desc.StartBeforeModules); section != "" {
		sb.WriteString("\n" + section)
	}

	counts := []struct {
		label string
		n     int
	}{
		{"advice points", len(desc.AdvicePoints)},
		{"extension points", len(desc.ExtensionPoints)},
		{"privileges", len(desc.Privileges)},
		{"global properties", len(desc.GlobalProperties)},
		{"mapping files", len(desc.MappingFiles)},
		{"conditional resources", len(desc.ConditionalResources)},
	}
	var countParts []string
	for _, c := range counts {
		if c.n > 0 {
			countParts = append(countParts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	if len(countParts) > 0 {
		line := "declares " + strings.Join(countParts, ", ")
		if styled {
			line = output.StyleDim.Render(line)
		}
		sb.WriteString("\n" + line + "\n")
	}

	return sb.String()
}

// renderModuleRefs renders one module-reference map as a sorted
// "name version" list. Returns "" for an empty map.
func renderModuleRefs(label string, refs map[string]string) string {
	if len(refs) == 0 {
		return ""
	}
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(label + ":\n")
	for _, name := range names {
		version := refs[name]
		if version == "" {
			version = "any"
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", name, version))
	}
	return sb.String()
}
