package domain

import "go.trai.ch/zerr"

var (
	// ErrToolInvocationFailed is returned when an external tool exits with a nonzero status.
	ErrToolInvocationFailed = zerr.New("tool invocation failed")

	// ErrCompilationFailed is returned when the compiler rejects a source file.
	ErrCompilationFailed = zerr.Wrap(ErrToolInvocationFailed, "compilation failed")

	// ErrLinkFailed is returned when the linker or archiver fails.
	ErrLinkFailed = zerr.Wrap(ErrToolInvocationFailed, "link failed")

	// ErrGenerationFailed is returned when a code generator (lex, yacc, xml-casa, closure script) fails.
	ErrGenerationFailed = zerr.Wrap(ErrToolInvocationFailed, "generation failed")

	// ErrConfigurationMissing is returned when a required toolchain property is absent.
	ErrConfigurationMissing = zerr.New("required toolchain property missing")

	// ErrOptionDisabled is returned when a feature option required by the manifest is switched off.
	ErrOptionDisabled = zerr.New("required toolchain option disabled")

	// ErrUnsupportedPlatform is returned when Fortran sources are compiled on a host other than darwin or linux.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrUnknownTargetKind is returned when a link is requested for a kind the driver does not know.
	ErrUnknownTargetKind = zerr.New("unknown target kind")

	// ErrNoObjects is returned when a link is requested without object files.
	ErrNoObjects = zerr.New("no objects to link")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidToolchainValue is returned when a toolchain value is neither a string nor a list of strings.
	ErrInvalidToolchainValue = zerr.New("toolchain value must be a string or a list of strings")

	// ErrInvalidManifest is returned when the manifest is structurally invalid.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrVersionParseFailed is returned when the revision script output carries no version.
	ErrVersionParseFailed = zerr.New("failed to parse version string")

	// ErrTemplateRenderFailed is returned when a generated source cannot be rendered.
	ErrTemplateRenderFailed = zerr.New("failed to render template")

	// ErrCacheMarshalFailed is returned when a library cache cannot be serialized.
	ErrCacheMarshalFailed = zerr.New("failed to marshal library cache")

	// ErrCacheWriteFailed is returned when a library cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write library cache")

	// ErrStoreCreateFailed is returned when the object store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create object store directory")

	// ErrStoreReadFailed is returned when an object record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read object record")

	// ErrStoreUnmarshalFailed is returned when an object record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal object record")

	// ErrStoreMarshalFailed is returned when an object record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal object record")

	// ErrStoreWriteFailed is returned when an object record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write object record")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrCopyFailed is returned when a private script or module cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrSourceNotFound is returned when a manifest source pattern matches nothing.
	ErrSourceNotFound = zerr.New("source not found")

	// ErrBuildExecutionFailed is returned when a pipeline step fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
