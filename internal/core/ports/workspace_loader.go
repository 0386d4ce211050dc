package ports

import "go.trai.ch/fpdgen/internal/core/domain"

// WorkspaceLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=workspace_loader.go -destination=mocks/mock_workspace_loader.go -package=mocks
type WorkspaceLoader interface {
	// Load walks up from cwd to the workspace configuration and returns the loaded workspace,
	// including its tools definition table.
	Load(cwd string) (*domain.Workspace, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing fpdgen.yaml.
	DiscoverRoot(cwd string) (string, error)
}
