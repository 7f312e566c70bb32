package descriptor

import "fmt"

// MessageSource resolves a message key into a user-facing string. Hosts that
// localize their UI plug their own implementation in via WithMessageSource;
// everything else gets the builtin English catalog. Unknown keys fall back
// to the raw key so a missing translation never hides an error.
type MessageSource interface {
	Message(key string, args ...any) string
}

// Message keys used for fatal parse errors.
const (
	msgFileCannotBeNull     = "module.error.fileCannotBeNull"
	msgInvalidFileExtension = "module.error.invalidFileExtension"
	msgCannotCreateFile     = "module.error.cannotCreateFile"
	msgCannotOpenArchive    = "module.error.cannotGetJarFile"
	msgNoConfigFile         = "module.error.noConfigFile"
	msgCannotStreamConfig   = "module.error.cannotGetConfigFileStream"
	msgCannotParseConfig    = "module.error.cannotParseConfigFile"
	msgInvalidConfigVersion = "module.error.invalidConfigVersion"
	msgNameCannotBeEmpty    = "module.error.nameCannotBeEmpty"
	msgIDCannotBeEmpty      = "module.error.idCannotBeEmpty"
	msgPackageCannotBeEmpty = "module.error.packageCannotBeEmpty"
)

var builtinMessages = map[string]string{
	msgFileCannotBeNull:     "module file path cannot be empty",
	msgInvalidFileExtension: "module file must have the .omod extension",
	msgCannotCreateFile:     "cannot stage module stream to a temporary file",
	msgCannotOpenArchive:    "cannot open module archive",
	msgNoConfigFile:         "module archive contains no config.xml",
	msgCannotStreamConfig:   "cannot read config.xml from module archive",
	msgCannotParseConfig:    "config.xml is not well-formed XML",
	msgInvalidConfigVersion: "config version %s is invalid, must be one of: %s",
	msgNameCannotBeEmpty:    "module name cannot be empty",
	msgIDCannotBeEmpty:      "module id cannot be empty",
	msgPackageCannotBeEmpty: "module package cannot be empty",
}

type builtinMessageSource struct{}

// DefaultMessages returns the builtin English message catalog.
func DefaultMessages() MessageSource {
	return builtinMessageSource{}
}

func (builtinMessageSource) Message(key string, args ...any) string {
	format, ok := builtinMessages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
