package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// FFmpeg runs conversions through an ffmpeg binary, staging files in a
// private working directory.
type FFmpeg struct {
	binary  string
	workDir string

	mu      sync.Mutex
	tempDir string
	loaded  bool
	onLog   LogHandler
}

// FFmpegConfig configures the ffmpeg-backed engine.
type FFmpegConfig struct {
	// Binary is the ffmpeg executable; defaults to "ffmpeg" on PATH.
	Binary string
	// WorkDir is the staging directory. Empty means a temporary directory
	// created on Load and removed on Terminate.
	WorkDir string
}

// NewFFmpeg builds an unloaded ffmpeg engine.
func NewFFmpeg(cfg FFmpegConfig) *FFmpeg {
	binary := cfg.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary, workDir: cfg.WorkDir}
}

func (f *FFmpeg) OnLog(h LogHandler) {
	f.mu.Lock()
	f.onLog = h
	f.mu.Unlock()
}

func (f *FFmpeg) emit(line string) {
	f.mu.Lock()
	h := f.onLog
	f.mu.Unlock()
	if h != nil {
		h(line)
	}
}

// Load locates the ffmpeg binary, prepares the working area and runs a
// version probe to verify the runtime actually executes.
func (f *FFmpeg) Load(ctx context.Context) error {
	path, err := exec.LookPath(f.binary)
	if err != nil {
		return fmt.Errorf("ffmpeg binary %q not found: %w", f.binary, err)
	}

	if f.workDir == "" {
		dir, err := os.MkdirTemp("", "mediaforge-*")
		if err != nil {
			return fmt.Errorf("create working directory: %w", err)
		}
		f.mu.Lock()
		f.tempDir = dir
		f.mu.Unlock()
		f.workDir = dir
	} else if err := os.MkdirAll(f.workDir, 0o755); err != nil {
		return fmt.Errorf("create working directory: %w", err)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg version probe failed: %w: %s", err, strings.TrimSpace(out.String()))
	}
	if line, _, _ := strings.Cut(out.String(), "\n"); line != "" {
		f.emit(line)
	}

	f.mu.Lock()
	f.loaded = true
	f.mu.Unlock()
	return nil
}

func (f *FFmpeg) path(name string) string {
	// Staged names are flat; strip any directory component.
	return filepath.Join(f.workDir, filepath.Base(name))
}

func (f *FFmpeg) WriteFile(name string, data []byte) error {
	if err := f.checkLoaded(); err != nil {
		return err
	}
	return os.WriteFile(f.path(name), data, 0o644)
}

func (f *FFmpeg) ReadFile(name string) ([]byte, error) {
	if err := f.checkLoaded(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.path(name))
}

func (f *FFmpeg) DeleteFile(name string) error {
	if err := f.checkLoaded(); err != nil {
		return err
	}
	return os.Remove(f.path(name))
}

// Exec runs ffmpeg with the given tokens inside the working area. Stderr is
// forwarded line by line to the log handler; on failure the tail of the
// diagnostic output is carried in the returned error.
func (f *FFmpeg) Exec(ctx context.Context, args []string) error {
	if err := f.checkLoaded(); err != nil {
		return err
	}

	full := append([]string{"-hide_banner", "-y"}, args...)
	cmd := exec.CommandContext(ctx, f.binary, full...)
	cmd.Dir = f.workDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	scanner := bufio.NewScanner(bytes.NewReader(stderr.Bytes()))
	for scanner.Scan() {
		f.emit(scanner.Text())
	}

	if err != nil {
		return fmt.Errorf("ffmpeg exec failed: %w: %s", err, diagnosticTail(stderr.String()))
	}
	return nil
}

// Terminate removes the working area and resets the engine to unloaded.
func (f *FFmpeg) Terminate() {
	f.mu.Lock()
	tempDir := f.tempDir
	f.tempDir = ""
	f.loaded = false
	f.mu.Unlock()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
		f.workDir = ""
	}
}

func (f *FFmpeg) checkLoaded() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loaded {
		return fmt.Errorf("engine not loaded")
	}
	return nil
}

// diagnosticTail keeps the last few lines of ffmpeg's stderr, which is where
// the actionable message lives.
func diagnosticTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}
