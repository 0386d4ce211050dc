package domain

import "go.trai.ch/zerr"

var (
	// ErrSchemaInvalid is returned when a surface-area descriptor does not conform to its schema.
	ErrSchemaInvalid = zerr.New("surface area descriptor format is invalid")

	// ErrDescriptorReadFailed is returned when a descriptor file cannot be read.
	ErrDescriptorReadFailed = zerr.New("failed to read surface area descriptor")

	// ErrInvalidModuleType is returned when a module does not declare a module type.
	ErrInvalidModuleType = zerr.New("module type is not specified")

	// ErrModuleNotFound is returned when a module association references a module missing from the catalog.
	ErrModuleNotFound = zerr.New("module not found in workspace")

	// ErrDuplicateModule is returned when two module descriptors share a GUID and version.
	ErrDuplicateModule = zerr.New("duplicate module descriptor")

	// ErrIOWriteFailure is returned when a manifest or build script cannot be written.
	ErrIOWriteFailure = zerr.New("generation of output file failed")

	// ErrOrphanedManifestEntry is returned when a firmware volume lists a module without an output file name.
	ErrOrphanedManifestEntry = zerr.New("firmware volume references a module without an output file")

	// ErrPipelineReentered is returned when a pipeline context is run more than once.
	ErrPipelineReentered = zerr.New("platform descriptor has already been parsed by this context")

	// ErrInvalidStageTransition is returned when the pipeline skips or repeats a stage.
	ErrInvalidStageTransition = zerr.New("invalid pipeline stage transition")

	// ErrGenerationFailed is returned when generating a platform fails.
	ErrGenerationFailed = zerr.New("platform generation failed")

	// ErrNoPlatformSpecified is returned when a command needs a platform descriptor but none was given.
	ErrNoPlatformSpecified = zerr.New("no platform descriptor specified")

	// ErrNoBuildPairs is returned when the target and tool chain filters leave nothing to generate.
	ErrNoBuildPairs = zerr.New("no build target and tool chain combination selected")

	// ErrConfigNotFound is returned when the workspace configuration file cannot be found.
	ErrConfigNotFound = zerr.New("could not find " + WorkspaceFileName)

	// ErrConfigReadFailed is returned when the workspace configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the workspace configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrToolsDefParseFailed is returned when a tools definition file contains a malformed line.
	ErrToolsDefParseFailed = zerr.New("failed to parse tools definition file")

	// ErrModuleDiscoveryFailed is returned when module descriptors cannot be discovered.
	ErrModuleDiscoveryFailed = zerr.New("failed to discover module descriptors")

	// ErrEmptyCommand is returned when a tool definition has no command.
	ErrEmptyCommand = zerr.New("tool command is empty")

	// ErrToolInvocationFailed is returned when an external tool exits unsuccessfully.
	ErrToolInvocationFailed = zerr.New("tool invocation failed")
)
