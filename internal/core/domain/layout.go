package domain

import (
	"path"
	"path/filepath"
)

const (
	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".fpdgen"

	// WorkspaceFileName is the name of the workspace configuration file.
	WorkspaceFileName = "fpdgen.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DefaultBuildDirName is the build directory used when neither the platform nor the workspace sets one.
	DefaultBuildDirName = "Build"

	// FVDirName is the name of the firmware volume directory below a common output directory.
	FVDirName = "FV"

	// ManifestExt is the extension of firmware volume manifest files.
	ManifestExt = ".inf"

	// BuildScriptSuffix is appended to the platform name to form the generated build script name.
	BuildScriptSuffix = "_build.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .fpdgen and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(StateDirName, DebugLogFile)
}

// CommonOutputDir returns the output directory shared by all modules built for one
// (target, tool chain) pair: BUILD_DIR/TARGET_TAG.
func CommonOutputDir(buildDir, target, toolChain string) string {
	return path.Join(filepath.ToSlash(buildDir), target+"_"+toolChain)
}

// FVDir returns the firmware volume directory below a common output directory.
func FVDir(commonDir string) string {
	return path.Join(commonDir, FVDirName)
}

// ManifestPath returns the path of the manifest for the named firmware volume.
func ManifestPath(fvDir, fvName string) string {
	return path.Join(fvDir, fvName+ManifestExt)
}

// BuildScriptPath returns the path of the generated build script for a platform.
func BuildScriptPath(platformDir, platformName string) string {
	return path.Join(filepath.ToSlash(platformDir), platformName+BuildScriptSuffix)
}
