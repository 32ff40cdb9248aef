package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FFmpeg invocation constants
const (
	FFmpegCommand      = "ffmpeg"
	ProgressPipeTarget = "pipe:2"
	WorkspacePrefix    = "run-"
	RootDirPattern     = "img2video-engine-"

	// Lines of stderr kept for error messages
	stderrTailLines = 8
	// Max stderr line length accepted by the scanner
	maxLogLineBytes = 1024 * 1024

	filePermissions = 0o644
	dirPermissions  = 0o755
)

var (
	ErrNotLoaded         = errors.New("engine is not loaded")
	ErrInvalidName       = errors.New("invalid workspace file name")
	ErrWorkspaceReleased = errors.New("workspace already released")
)

// FFmpeg is an Engine backed by the ffmpeg executable. Workspaces are
// directories under a private root and Exec runs ffmpeg inside one.
type FFmpeg struct {
	binary string
	root   string

	mu         sync.RWMutex
	path       string // resolved binary, set by Load
	version    string
	ownsRoot   bool
	onProgress func(float64)
	onLog      func(string)
}

// NewFFmpeg creates an engine running binary (a name looked up in PATH or a
// path). root holds the workspaces; an empty root means a fresh temp dir.
func NewFFmpeg(binary, root string) *FFmpeg {
	if strings.TrimSpace(binary) == "" {
		binary = FFmpegCommand
	}
	return &FFmpeg{
		binary: binary,
		root:   root,
	}
}

// Load resolves the binary, reads its version banner and prepares the root.
// Calling Load on a loaded engine is a no-op.
func (e *FFmpeg) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.path != "" {
		return nil
	}

	path, err := exec.LookPath(e.binary)
	if err != nil {
		return fmt.Errorf("ffmpeg not found (%s): %w", e.binary, err)
	}

	out, err := exec.CommandContext(ctx, path, "-hide_banner", "-version").Output()
	if err != nil {
		return fmt.Errorf("failed to run %s -version: %w", path, err)
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(version, '\n'); idx >= 0 {
		version = version[:idx]
	}

	root := e.root
	if root == "" {
		root, err = os.MkdirTemp("", RootDirPattern)
		if err != nil {
			return fmt.Errorf("failed to create engine root: %w", err)
		}
		e.ownsRoot = true
	} else if err := os.MkdirAll(root, dirPermissions); err != nil {
		return fmt.Errorf("failed to create engine root %s: %w", root, err)
	}

	e.root = root
	e.path = path
	e.version = version
	return nil
}

// Loaded reports whether Load has succeeded
func (e *FFmpeg) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.path != ""
}

// Version returns the first line of "ffmpeg -version", empty before Load
func (e *FFmpeg) Version() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// Root returns the directory holding the workspaces
func (e *FFmpeg) Root() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.root
}

// Close removes the root directory if the engine created it
func (e *FFmpeg) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ownsRoot || e.root == "" {
		return nil
	}
	e.ownsRoot = false
	return os.RemoveAll(e.root)
}

// SetProgressHandler sets the callback for progress fractions
func (e *FFmpeg) SetProgressHandler(handler func(float64)) {
	e.mu.Lock()
	e.onProgress = handler
	e.mu.Unlock()
}

// SetLogHandler sets the callback for engine log lines
func (e *FFmpeg) SetLogHandler(handler func(string)) {
	e.mu.Lock()
	e.onLog = handler
	e.mu.Unlock()
}

// NewWorkspace creates an empty, uniquely named workspace directory
func (e *FFmpeg) NewWorkspace(ctx context.Context) (Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.Loaded() {
		return nil, ErrNotLoaded
	}

	id := generateWorkspaceID()
	dir := filepath.Join(e.Root(), id)
	if err := os.Mkdir(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create workspace %s: %w", id, err)
	}

	return &ffmpegWorkspace{engine: e, id: id, dir: dir}, nil
}

// BuildCommandArgs prefixes args with the options the engine relies on:
// overwrite, machine readable progress on stderr, no interactive stats.
func BuildCommandArgs(args []string) []string {
	full := make([]string, 0, len(args)+6)
	full = append(full,
		"-hide_banner",
		"-y",
		"-progress", ProgressPipeTarget,
		"-nostats",
	)
	return append(full, args...)
}

func (e *FFmpeg) emitProgress(fraction float64) {
	e.mu.RLock()
	handler := e.onProgress
	e.mu.RUnlock()
	if handler != nil {
		handler(fraction)
	}
}

func (e *FFmpeg) emitLog(line string) {
	e.mu.RLock()
	handler := e.onLog
	e.mu.RUnlock()
	if handler != nil {
		handler(line)
	}
}

// monitorStderr forwards ffmpeg stderr to the log and progress handlers and
// returns the last few diagnostic lines.
func (e *FFmpeg) monitorStderr(stderr io.Reader) []string {
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLineBytes)

	parser := &progressParser{}
	tail := make([]string, 0, stderrTailLines)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if fraction, ok := parser.Parse(line); ok {
			e.emitProgress(fraction)
		}
		if isProgressLine(strings.TrimSpace(line)) {
			continue
		}

		e.emitLog(line)
		if len(tail) == stderrTailLines {
			tail = tail[1:]
		}
		tail = append(tail, line)
	}

	// A failed scan must not leave ffmpeg blocked on a full pipe
	if err := scanner.Err(); err != nil {
		e.emitLog(fmt.Sprintf("stderr monitoring stopped: %v", err))
		_, _ = io.Copy(io.Discard, stderr)
	}

	return tail
}

type ffmpegWorkspace struct {
	engine *FFmpeg
	id     string
	dir    string

	mu       sync.Mutex
	released bool
}

func (w *ffmpegWorkspace) ID() string {
	return w.id
}

// Dir returns the directory backing the workspace
func (w *ffmpegWorkspace) Dir() string {
	return w.dir
}

func (w *ffmpegWorkspace) WriteFile(ctx context.Context, name string, data []byte) error {
	path, err := w.resolve(ctx, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *ffmpegWorkspace) ReadFile(ctx context.Context, name string) ([]byte, error) {
	path, err := w.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Exec runs ffmpeg with args inside the workspace directory
func (w *ffmpegWorkspace) Exec(ctx context.Context, args []string) error {
	if err := w.check(ctx); err != nil {
		return err
	}

	w.engine.mu.RLock()
	binary := w.engine.path
	w.engine.mu.RUnlock()
	if binary == "" {
		return ErrNotLoaded
	}

	cmd := exec.CommandContext(ctx, binary, BuildCommandArgs(args)...)
	cmd.Dir = w.dir

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// All reads must finish before Wait closes the pipe
	tail := w.engine.monitorStderr(stderr)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctx.Err())
		}
		if len(tail) > 0 {
			return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.Join(tail, "; "))
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	w.engine.emitLog(fmt.Sprintf("ffmpeg finished in %s", time.Since(started).Round(time.Millisecond)))
	return nil
}

func (w *ffmpegWorkspace) Release(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.released {
		return nil
	}
	w.released = true

	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to release workspace %s: %w", w.id, err)
	}
	return nil
}

func (w *ffmpegWorkspace) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.released {
		return fmt.Errorf("%w: %s", ErrWorkspaceReleased, w.id)
	}
	return nil
}

func (w *ffmpegWorkspace) resolve(ctx context.Context, name string) (string, error) {
	if err := w.check(ctx); err != nil {
		return "", err
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(w.dir, name), nil
}

// ValidateName rejects names that would escape a workspace
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// generateWorkspaceID generates a unique, time ordered workspace name
func generateWorkspaceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(WorkspacePrefix+"%d", time.Now().UnixNano())
	}
	return WorkspacePrefix + id.String()
}
