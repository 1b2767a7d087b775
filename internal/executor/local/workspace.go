package local

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// workspace is the ephemeral directory owned by exactly one execution. The
// xid-based name makes concurrent workspaces collision-free under a shared
// root without any locking.
type workspace struct {
	dir string
}

func newWorkspace(root string) (*workspace, error) {
	dir := filepath.Join(root, "sandbox-"+xid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &workspace{dir: dir}, nil
}

// writeFile writes a file into the workspace and returns its absolute path.
func (w *workspace) writeFile(name, content string) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// cleanup removes the workspace recursively. Best-effort and idempotent:
// failures are logged, never propagated, and a missing directory is fine.
func (w *workspace) cleanup(logger *slog.Logger) {
	if err := os.RemoveAll(w.dir); err != nil {
		logger.Warn("failed to remove workspace",
			slog.String("dir", w.dir),
			slog.String("error", err.Error()),
		)
	}
}
