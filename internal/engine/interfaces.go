package engine

import "context"

// Engine is the media encoding engine the converter drives. An engine must
// be loaded before workspaces can be opened.
type Engine interface {
	Load(ctx context.Context) error
	Loaded() bool
	NewWorkspace(ctx context.Context) (Workspace, error)

	// SetProgressHandler receives completion fractions in [0,1] while Exec runs
	SetProgressHandler(func(fraction float64))
	// SetLogHandler receives diagnostic lines emitted by the engine
	SetLogHandler(func(line string))
}

// Workspace is a private file namespace for a single run. All names are
// plain base names relative to the workspace.
type Workspace interface {
	ID() string
	WriteFile(ctx context.Context, name string, data []byte) error
	ReadFile(ctx context.Context, name string) ([]byte, error)
	Exec(ctx context.Context, args []string) error
	// Release removes every file of the workspace. It is safe to call twice.
	Release(ctx context.Context) error
}
