package descriptor

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
)

const (
	// descriptorEntryName is the fixed name of the descriptor entry inside
	// the archive.
	descriptorEntryName = "config.xml"

	// artifactExtension is the required extension of a packaged module.
	artifactExtension = ".omod"
)

// Parser is bound to one module artifact for its lifetime. Parse may be
// called repeatedly; each call is independent and touches no shared state,
// so distinct Parser instances are safe to use concurrently.
type Parser struct {
	path     string
	staged   bool
	log      *log.Logger
	messages MessageSource
	resolver DatatypeResolver
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithMessageSource replaces the builtin English message catalog, letting
// the host localize fatal error messages.
func WithMessageSource(ms MessageSource) Option {
	return func(p *Parser) { p.messages = ms }
}

// WithDatatypeResolver supplies the handler lookup used for global
// properties that declare a datatype class. Without a resolver, such
// properties are kept with no datatype association.
func WithDatatypeResolver(r DatatypeResolver) Option {
	return func(p *Parser) { p.resolver = r }
}

// New creates a Parser for the omod archive at path. The path must be
// non-empty and end in .omod; nothing is opened until Parse.
func New(path string, opts ...Option) (*Parser, error) {
	p := newParser(opts)
	if path == "" {
		return nil, &InputError{Message: p.messages.Message(msgFileCannotBeNull)}
	}
	if !strings.HasSuffix(path, artifactExtension) {
		return nil, &InputError{Path: path, Message: p.messages.Message(msgInvalidFileExtension)}
	}
	p.path = path
	return p, nil
}

// NewFromReader stages the stream to a temporary .omod file and binds the
// Parser to it. The staged file lives for the Parser's lifetime so Parse
// stays repeatable; call Close to remove it when done.
func NewFromReader(r io.Reader, opts ...Option) (*Parser, error) {
	p := newParser(opts)

	f, err := os.CreateTemp("", "module-upload-*"+artifactExtension)
	if err != nil {
		return nil, &InputError{Message: p.messages.Message(msgCannotCreateFile), Cause: err}
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, &InputError{Message: p.messages.Message(msgCannotCreateFile), Cause: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, &InputError{Message: p.messages.Message(msgCannotCreateFile), Cause: err}
	}

	p.path = f.Name()
	p.staged = true
	return p, nil
}

func newParser(opts []Option) *Parser {
	p := &Parser{
		log:      log.Default(),
		messages: DefaultMessages(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path returns the artifact path the parser is bound to. For stream-built
// parsers this is the staged temporary file.
func (p *Parser) Path() string {
	return p.path
}

// Close removes the staged temporary file of a stream-built parser. It is a
// no-op for parsers bound to a caller-owned path.
func (p *Parser) Close() error {
	if !p.staged {
		return nil
	}
	return os.Remove(p.path)
}

// Parse extracts, builds, and validates the module descriptor. Skipped
// repeated-element entries are logged as warnings; any fatal condition
// aborts the parse and no descriptor is returned.
func (p *Parser) Parse() (*ModuleDescriptor, error) {
	desc, warnings, err := p.ParseDetailed()
	for _, w := range warnings {
		p.log.Warn("skipped malformed descriptor entry",
			"artifact", p.artifact(),
			"element", w.Element,
			"reason", w.Reason,
		)
	}
	return desc, err
}

// ParseDetailed is Parse with the skipped-entry warnings returned to the
// caller instead of only logged. Warnings never affect pass/fail semantics.
func (p *Parser) ParseDetailed() (*ModuleDescriptor, []Warning, error) {
	doc, err := p.loadDocument()
	if err != nil {
		return nil, nil, err
	}

	b := &builder{
		artifact: p.artifact(),
		messages: p.messages,
		resolver: p.resolver,
		log:      p.log,
	}
	desc, err := b.build(doc)
	if err != nil {
		return nil, nil, err
	}

	desc.SourcePath = p.path
	p.log.Debug("parsed module descriptor",
		"artifact", p.artifact(),
		"id", desc.ID,
		"version", desc.Version,
		"configVersion", desc.ConfigVersion,
	)
	return desc, b.warnings, nil
}

// loadDocument opens the archive, locates the descriptor entry, and parses
// it into a document tree. All handles are released before returning.
func (p *Parser) loadDocument() (*etree.Document, error) {
	zr, err := zip.OpenReader(p.path)
	if err != nil {
		return nil, &ArchiveError{Artifact: p.artifact(), Message: p.messages.Message(msgCannotOpenArchive), Cause: err}
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == descriptorEntryName {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, &MissingDescriptorError{Artifact: p.artifact(), Message: p.messages.Message(msgNoConfigFile)}
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, &ArchiveError{Artifact: p.artifact(), Message: p.messages.Message(msgCannotStreamConfig), Cause: err}
	}
	defer rc.Close()

	// Buffer the entry up front so the raw bytes are available for the
	// diagnostic dump when the XML turns out to be malformed.
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ArchiveError{Artifact: p.artifact(), Message: p.messages.Message(msgCannotStreamConfig), Cause: err}
	}

	return p.parseDescriptorXML(raw)
}

// parseDescriptorXML parses the descriptor bytes into a document tree.
// Descriptors are untrusted input: the underlying decoder never dereferences
// external entities or DTD subsets, and strict mode rejects undefined entity
// references instead of expanding them.
func (p *Parser) parseDescriptorXML(raw []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = false

	if err := doc.ReadFromBytes(raw); err != nil {
		p.log.Error("error parsing "+descriptorEntryName, "artifact", p.artifact(), "error", err)
		p.log.Error(descriptorEntryName+" content", "content", string(raw))
		return nil, &FormatError{Artifact: p.artifact(), Message: p.messages.Message(msgCannotParseConfig), Cause: err}
	}
	if doc.Root() == nil {
		p.log.Error(descriptorEntryName+" content", "content", string(raw))
		return nil, &FormatError{Artifact: p.artifact(), Message: p.messages.Message(msgCannotParseConfig)}
	}
	return doc, nil
}

func (p *Parser) artifact() string {
	return filepath.Base(p.path)
}
