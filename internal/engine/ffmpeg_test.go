package engine

import (
	"context"
	"strings"
	"testing"
)

func TestFFmpegLoadFailsWithoutBinary(t *testing.T) {
	f := NewFFmpeg(FFmpegConfig{Binary: "mediaforge-no-such-binary"})
	if err := f.Load(context.Background()); err == nil {
		t.Fatal("expected Load to fail for a missing binary")
	}
}

func TestFFmpegOperationsRequireLoad(t *testing.T) {
	f := NewFFmpeg(FFmpegConfig{WorkDir: t.TempDir()})

	if err := f.WriteFile("in.mp3", []byte("x")); err == nil {
		t.Error("WriteFile should fail before Load")
	}
	if _, err := f.ReadFile("in.mp3"); err == nil {
		t.Error("ReadFile should fail before Load")
	}
	if err := f.DeleteFile("in.mp3"); err == nil {
		t.Error("DeleteFile should fail before Load")
	}
	if err := f.Exec(context.Background(), []string{"-i", "in.mp3", "out.wav"}); err == nil {
		t.Error("Exec should fail before Load")
	}
}

func TestDiagnosticTail(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f", "g"}
	got := diagnosticTail(strings.Join(lines, "\n"))
	want := strings.Join(lines[2:], "\n")
	if got != want {
		t.Errorf("diagnosticTail = %q, want %q", got, want)
	}

	if got := diagnosticTail("only"); got != "only" {
		t.Errorf("diagnosticTail(short) = %q", got)
	}
}
