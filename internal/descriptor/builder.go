package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
)

// validConfigVersions is the fixed whitelist of supported descriptor schema
// versions. Extending support means adding an entry here, nothing else.
var validConfigVersions = []string{"1.0", "1.1", "1.2", "1.3", "1.4", "1.5", "1.6"}

// ValidConfigVersions returns the supported descriptor schema versions.
func ValidConfigVersions() []string {
	out := make([]string, len(validConfigVersions))
	copy(out, validConfigVersions)
	return out
}

// extensionPointSeparator is reserved for composing extension ids; a point
// name containing it cannot be addressed and is rejected.
const extensionPointSeparator = "+"

// builder walks a parsed config.xml tree and produces the descriptor.
// Validation is interleaved: fatal conditions return immediately, malformed
// repeated entries are recorded as warnings and skipped.
type builder struct {
	artifact string
	messages MessageSource
	resolver DatatypeResolver
	log      *log.Logger
	warnings []Warning
}

func (b *builder) build(doc *etree.Document) (*ModuleDescriptor, error) {
	root := doc.Root()

	configVersion := strings.TrimSpace(root.SelectAttrValue("configVersion", ""))
	if !containsVersion(validConfigVersions, configVersion) {
		return nil, b.validationError(msgInvalidConfigVersion, configVersion, strings.Join(validConfigVersions, ", "))
	}

	name := strings.TrimSpace(b.text(root, "name"))
	id := strings.TrimSpace(b.text(root, "id"))
	packageName := strings.TrimSpace(b.text(root, "package"))

	if name == "" {
		return nil, b.validationError(msgNameCannotBeEmpty)
	}
	if id == "" {
		return nil, b.validationError(msgIDCannotBeEmpty)
	}
	if packageName == "" {
		return nil, b.validationError(msgPackageCannotBeEmpty)
	}

	d := &ModuleDescriptor{
		Name:          name,
		ID:            id,
		PackageName:   packageName,
		Author:        strings.TrimSpace(b.text(root, "author")),
		Description:   strings.TrimSpace(b.text(root, "description")),
		Version:       strings.TrimSpace(b.text(root, "version")),
		ConfigVersion: configVersion,
	}

	d.ActivatorClassName = strings.TrimSpace(b.text(root, "activator"))
	d.RequiredDatabaseVersion = strings.TrimSpace(b.text(root, "require_database_version"))
	d.RequiredPlatformVersion = strings.TrimSpace(b.text(root, "require_version"))
	d.UpdateURL = strings.TrimSpace(b.text(root, "updateURL"))

	d.RequiredModules = b.moduleVersionMap(root, "require_modules", "require_module")
	d.AwareOfModules = b.moduleVersionMap(root, "aware_of_modules", "aware_of_module")
	d.StartBeforeModules = b.moduleVersionMap(root, "start_before_modules", "module")

	d.AdvicePoints = b.advicePoints(root)
	d.ExtensionPoints = b.extensionPoints(root)
	d.Privileges = b.privileges(root)
	d.GlobalProperties = b.globalProperties(root)

	d.MappingFiles = splitWhitespace(b.text(root, "mappingFiles"))
	d.PackagesWithMappedClasses = toSet(splitWhitespace(b.text(root, "packagesWithMappedClasses")))

	d.Mandatory = b.mandatory(root, configVersion)

	conditionalResources, err := b.conditionalResources(root)
	if err != nil {
		return nil, err
	}
	d.ConditionalResources = conditionalResources

	d.Document = doc
	return d, nil
}

// text returns the text content of the first element named tag anywhere
// under root, or the empty string. Callers trim and validate as needed.
func (b *builder) text(root *etree.Element, tag string) string {
	if el := root.FindElement(".//" + tag); el != nil {
		return el.Text()
	}
	return ""
}

// childText returns the trimmed text of el's first direct child named tag.
func childText(el *etree.Element, tag string) string {
	if child := el.SelectElement(tag); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}

// childTextRaw is childText without trimming.
func childTextRaw(el *etree.Element, tag string) string {
	if child := el.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}

// moduleVersionMap collects the module references under the first element
// named parentTag: each direct child named childTag contributes its trimmed
// text as the key and its version attribute as the value. A missing version
// attribute maps to the empty string, meaning any version. Duplicate keys
// are last-wins.
func (b *builder) moduleVersionMap(root *etree.Element, parentTag, childTag string) map[string]string {
	refs := map[string]string{}
	parent := root.FindElement(".//" + parentTag)
	if parent == nil {
		return refs
	}
	for _, child := range parent.ChildElements() {
		if child.Tag != childTag {
			continue
		}
		refs[strings.TrimSpace(child.Text())] = child.SelectAttrValue("version", "")
	}
	return refs
}

func (b *builder) advicePoints(root *etree.Element) []AdvicePoint {
	var points []AdvicePoint
	for _, el := range root.FindElements(".//advice") {
		point := childText(el, "point")
		class := childText(el, "class")
		if point == "" || class == "" {
			b.warn("advice", fmt.Sprintf("'point' and 'class' are required, got %q and %q", point, class))
			continue
		}
		points = append(points, AdvicePoint{Point: point, Class: class})
	}
	return points
}

func (b *builder) extensionPoints(root *etree.Element) map[string]string {
	extensions := map[string]string{}
	for _, el := range root.FindElements(".//extension") {
		point := childText(el, "point")
		class := childText(el, "class")
		if point == "" || class == "" {
			b.warn("extension", fmt.Sprintf("'point' and 'class' are required, got %q and %q", point, class))
			continue
		}
		if strings.Contains(point, extensionPointSeparator) {
			b.warn("extension", fmt.Sprintf("point %q contains the reserved separator %q", point, extensionPointSeparator))
			continue
		}
		extensions[point] = class
	}
	return extensions
}

func (b *builder) privileges(root *etree.Element) []Privilege {
	var privileges []Privilege
	for _, el := range root.FindElements(".//privilege") {
		name := childText(el, "name")
		description := childText(el, "description")
		if name == "" || description == "" {
			b.warn("privilege", fmt.Sprintf("'name' and 'description' are required, got %q and %q", name, description))
			continue
		}
		privileges = append(privileges, Privilege{Name: name, Description: description})
	}
	return privileges
}

func (b *builder) globalProperties(root *etree.Element) []GlobalProperty {
	var properties []GlobalProperty
	for _, el := range root.FindElements(".//globalProperty") {
		prop := GlobalProperty{
			Property:          childText(el, "property"),
			DefaultValue:      childTextRaw(el, "defaultValue"),
			Description:       strings.TrimSpace(strings.ReplaceAll(childTextRaw(el, "description"), "\t", "")),
			DatatypeClassName: childText(el, "datatypeClassname"),
			DatatypeConfig:    childText(el, "datatypeConfig"),
		}
		if prop.Property == "" {
			b.warn("globalProperty", "'property' is required")
			continue
		}
		if prop.DatatypeClassName != "" {
			prop.Datatype = b.resolveDatatype(prop.Property, prop.DatatypeClassName)
		}
		properties = append(properties, prop)
	}
	return properties
}

// resolveDatatype asks the configured resolver for the handler named by
// className. Failure degrades gracefully: the property keeps its class name
// but carries no handler.
func (b *builder) resolveDatatype(property, className string) Datatype {
	if b.resolver == nil {
		b.log.Debug("no datatype resolver configured, keeping property without datatype",
			"artifact", b.artifact, "property", property, "datatypeClassname", className)
		return nil
	}
	dt, err := b.resolver.Resolve(className)
	if err != nil {
		b.log.Error("cannot resolve datatype class, keeping property without datatype",
			"artifact", b.artifact, "property", property, "datatypeClassname", className, "error", err)
		return nil
	}
	return dt
}

// mandatory derives the mandatory flag. The element only applies to config
// versions 1.3 and later; older descriptors are never mandatory regardless
// of content. configVersion has already passed the whitelist, so it always
// parses.
func (b *builder) mandatory(root *etree.Element, configVersion string) bool {
	v, err := strconv.ParseFloat(configVersion, 64)
	if err != nil || v < 1.3 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(b.text(root, "mandatory")), "true")
}

// conditionalResources parses the conditionalResources block. Unlike the
// other repeated elements this block is structure-sensitive, so violations
// are fatal: more than one block, a child that is not conditionalResource,
// or a resource without a path.
func (b *builder) conditionalResources(root *etree.Element) ([]ConditionalResource, error) {
	blocks := root.FindElements(".//conditionalResources")
	if len(blocks) == 0 {
		return nil, nil
	}
	if len(blocks) > 1 {
		return nil, &ValidationError{Artifact: b.artifact,
			Message: "found multiple conditionalResources elements, there can be only one"}
	}

	var resources []ConditionalResource
	for _, resEl := range blocks[0].ChildElements() {
		if resEl.Tag != "conditionalResource" {
			return nil, &ValidationError{Artifact: b.artifact,
				Message: fmt.Sprintf("found %s under conditionalResources, only conditionalResource is allowed", resEl.Tag)}
		}

		var res ConditionalResource
		for _, field := range resEl.ChildElements() {
			switch field.Tag {
			case "path":
				res.Path = field.Text()
			case "openmrsVersion", "openmrsPlatformVersion":
				// Legacy and current spellings of the same condition; the
				// first one seen wins.
				if strings.TrimSpace(res.PlatformVersion) == "" {
					res.PlatformVersion = field.Text()
				}
			case "modules":
				for _, modEl := range field.ChildElements() {
					if modEl.Tag != "module" {
						continue
					}
					res.Modules = append(res.Modules, ModuleAndVersion{
						ModuleID: childTextRaw(modEl, "moduleId"),
						Version:  childTextRaw(modEl, "version"),
					})
				}
			}
		}

		if strings.TrimSpace(res.Path) == "" {
			return nil, &ValidationError{Artifact: b.artifact,
				Message: "the path of a conditional resource must not be blank"}
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func (b *builder) warn(element, reason string) {
	b.warnings = append(b.warnings, Warning{Element: element, Reason: reason})
}

func (b *builder) validationError(key string, args ...any) *ValidationError {
	return &ValidationError{Artifact: b.artifact, Message: b.messages.Message(key, args...)}
}

func containsVersion(versions []string, v string) bool {
	for _, candidate := range versions {
		if candidate == v {
			return true
		}
	}
	return false
}

// splitWhitespace splits s on any whitespace, dropping empty parts and
// preserving document order.
func splitWhitespace(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
