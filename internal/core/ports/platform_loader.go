package ports

import "go.trai.ch/fpdgen/internal/core/domain"

// PlatformLoader decodes a platform descriptor and the module descriptors it references.
//
//go:generate mockgen -source=platform_loader.go -destination=mocks/mock_platform_loader.go -package=mocks
type PlatformLoader interface {
	// Load reads and validates the platform descriptor at path. Module associations are
	// resolved against the module descriptors discovered in the workspace.
	Load(path string, ws *domain.Workspace) (*domain.Platform, error)
}
