// Package descriptor parses packaged module archives (.omod files) into
// validated ModuleDescriptor values.
//
// An omod archive is a zip container carrying a config.xml document that
// declares the module's identity, version constraints, dependencies,
// extension points, and related metadata. Parsing is a single forward
// pipeline: locate the descriptor entry, parse it into a document tree,
// then build and validate the descriptor. Fatal conditions abort the parse;
// malformed repeated entries are skipped with a warning.
package descriptor

import (
	"fmt"

	"github.com/beevik/etree"
)

// ModuleDescriptor is the parsed and validated form of a module's
// config.xml. It is constructed once per parse and never mutated by this
// package afterward; the caller owns the value.
type ModuleDescriptor struct {
	// Name is the human-readable module name. Required.
	Name string `json:"name"`

	// ID is the short machine identifier of the module. Required.
	ID string `json:"id"`

	// PackageName is the module's root package. Required.
	PackageName string `json:"packageName"`

	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`

	// Version is the module's own version string.
	Version string `json:"version,omitempty"`

	// ConfigVersion is the descriptor schema version, one of
	// ValidConfigVersions.
	ConfigVersion string `json:"configVersion"`

	// ActivatorClassName names the lifecycle hook implementation. The class
	// is never instantiated here; the host's module runtime does that.
	ActivatorClassName string `json:"activator,omitempty"`

	// RequiredDatabaseVersion and RequiredPlatformVersion are free-form
	// version constraints, trimmed but otherwise unvalidated.
	RequiredDatabaseVersion string `json:"requireDatabaseVersion,omitempty"`
	RequiredPlatformVersion string `json:"requireVersion,omitempty"`

	UpdateURL string `json:"updateURL,omitempty"`

	// RequiredModules, AwareOfModules, and StartBeforeModules map a
	// referenced module's package name (or id) to a version constraint.
	// An empty string means any version.
	RequiredModules    map[string]string `json:"requiredModules,omitempty"`
	AwareOfModules     map[string]string `json:"awareOfModules,omitempty"`
	StartBeforeModules map[string]string `json:"startBeforeModules,omitempty"`

	// AdvicePoints lists interception points in document order.
	AdvicePoints []AdvicePoint `json:"advicePoints,omitempty"`

	// ExtensionPoints maps an extension-point name to the implementing
	// class. Duplicate point names overwrite earlier entries.
	ExtensionPoints map[string]string `json:"extensionPoints,omitempty"`

	// Privileges lists the privileges the module declares, in document order.
	Privileges []Privilege `json:"privileges,omitempty"`

	// GlobalProperties lists the host-wide properties the module declares,
	// in document order.
	GlobalProperties []GlobalProperty `json:"globalProperties,omitempty"`

	// MappingFiles lists ORM mapping filenames in document order.
	MappingFiles []string `json:"mappingFiles,omitempty"`

	// PackagesWithMappedClasses is the set of packages whose classes carry
	// ORM annotations.
	PackagesWithMappedClasses map[string]struct{} `json:"-"`

	// Mandatory reports whether the host must refuse to start without this
	// module. Only meaningful for config versions 1.3 and later; always
	// false for older descriptors.
	Mandatory bool `json:"mandatory"`

	// ConditionalResources lists resources that should only be loaded when
	// their platform/module conditions hold, in document order.
	ConditionalResources []ConditionalResource `json:"conditionalResources,omitempty"`

	// Document is the raw parsed config.xml, retained for consumers that
	// need elements this parser does not model.
	Document *etree.Document `json:"-"`

	// SourcePath is the path of the archive the descriptor was parsed from.
	SourcePath string `json:"sourcePath,omitempty"`
}

// AdvicePoint is a (interception point, class) pair declared by an
// <advice> element.
type AdvicePoint struct {
	Point string `json:"point"`
	Class string `json:"class"`
}

// Privilege is a (name, description) pair declared by a <privilege>
// element. Both fields are required.
type Privilege struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GlobalProperty is a host-wide configuration value declared by a
// <globalProperty> element.
type GlobalProperty struct {
	// Property is the property name. Required.
	Property string `json:"property"`

	// DefaultValue is kept verbatim, whitespace included.
	DefaultValue string `json:"defaultValue,omitempty"`

	// Description has tab characters stripped and is trimmed.
	Description string `json:"description,omitempty"`

	// DatatypeClassName optionally names a datatype handler class; when set,
	// the builder asks the configured DatatypeResolver for the handler.
	DatatypeClassName string `json:"datatypeClassname,omitempty"`
	DatatypeConfig    string `json:"datatypeConfig,omitempty"`

	// Datatype is the resolved handler, or nil when no class name was given
	// or resolution failed.
	Datatype Datatype `json:"-"`
}

// ConditionalResource is a file in the archive that should only be loaded
// when the declared platform/module conditions hold.
type ConditionalResource struct {
	// Path of the resource inside the archive. Required.
	Path string `json:"path"`

	// PlatformVersion is the host platform version range the resource
	// applies to. Populated from either the openmrsPlatformVersion element
	// or its legacy openmrsVersion spelling; the first one seen wins.
	PlatformVersion string `json:"openmrsPlatformVersion,omitempty"`

	// Modules lists per-module version conditions in document order.
	Modules []ModuleAndVersion `json:"modules,omitempty"`
}

// ModuleAndVersion is a module condition inside a conditional resource.
type ModuleAndVersion struct {
	ModuleID string `json:"moduleId"`
	Version  string `json:"version"`
}

// Warning records a repeated-element entry that was skipped during the
// build. Warnings never fail a parse; they exist for logging and
// diagnostics.
type Warning struct {
	// Element is the tag name of the skipped entry, e.g. "extension".
	Element string

	// Reason says why the entry was skipped.
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Element, w.Reason)
}
