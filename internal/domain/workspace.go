package domain

// WorkspaceSpec describes where a roman workspace should be created.
type WorkspaceSpec struct {
	Root string
}
