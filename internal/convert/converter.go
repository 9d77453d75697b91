package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"

	"mediaforge/internal/engine"
	"mediaforge/internal/logging"
	"mediaforge/internal/media"
	"mediaforge/internal/util"
)

// ErrConversionFailed is returned when the engine reported an execution or
// output-retrieval error. The wrapped message carries the engine's
// diagnostic text.
var ErrConversionFailed = errors.New("conversion failed")

// defaultVideoCodec is injected when a video conversion specifies no codec.
// This is orchestrator policy; the command builder applies no defaults.
const defaultVideoCodec = "libx264"

// Converter drives one conversion end to end through the shared engine.
type Converter struct {
	engines *engine.Manager
}

// New builds a Converter using the given engine manager.
func New(engines *engine.Manager) *Converter {
	return &Converter{engines: engines}
}

// Convert stages data into the engine, executes the command built from
// opts and returns the converted item. Both staged files are removed on
// every exit path; a cleanup failure is logged and never masks the result.
func (c *Converter) Convert(ctx context.Context, data []byte, inputName string, opts Options) (*media.ConvertedMediaItem, error) {
	eng, err := c.engines.EnsureReady(ctx)
	if err != nil {
		return nil, err
	}

	mt, err := media.TypeOf(opts.TargetFormat())
	if err != nil {
		return nil, err
	}

	originalName := filepath.Base(inputName)
	convertedName := util.Stem(originalName) + "-converted." + opts.TargetFormat()

	// Staged names carry a unique prefix so concurrent conversions cannot
	// collide in the engine's shared working area.
	prefix := uuid.NewString()[:8]
	stagedIn := prefix + "-" + originalName
	stagedOut := prefix + "-" + convertedName

	defer func() {
		for _, name := range []string{stagedIn, stagedOut} {
			if err := eng.DeleteFile(name); err != nil {
				logging.Debug("cleanup: remove staged file %s: %v", name, err)
			}
		}
	}()

	if mt == media.TypeImage {
		logCaptureTime(originalName, data)
	}

	cmd, err := BuildCommand(stagedIn, applyDefaults(opts), stagedOut)
	if err != nil {
		return nil, err
	}

	if err := eng.WriteFile(stagedIn, data); err != nil {
		return nil, fmt.Errorf("%w: stage input %s: %v", ErrConversionFailed, originalName, err)
	}

	logging.Debug("exec %v", cmd)
	if err := eng.Exec(ctx, cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	out, err := eng.ReadFile(stagedOut)
	if err != nil {
		return nil, fmt.Errorf("%w: read output %s: %v", ErrConversionFailed, convertedName, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: engine produced no output for %s", ErrConversionFailed, originalName)
	}

	return media.NewItem(originalName, convertedName, out, mt), nil
}

// applyDefaults holds the orchestrator-level option policy: video
// conversions without an explicit codec get the default one.
func applyDefaults(opts Options) Options {
	if v, ok := opts.(VideoOptions); ok && v.Codec == "" {
		v.Codec = defaultVideoCodec
		return v
	}
	return opts
}

// logCaptureTime logs the EXIF capture timestamp of an image input when one
// is present. Probe failures are expected for most formats and are only
// visible at debug level.
func logCaptureTime(name string, data []byte) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Debug("exif probe %s: %v", name, err)
		return
	}
	if tm, err := x.DateTime(); err == nil {
		logging.Info("source %s captured at %s", name, tm.Format("2006:01:02 15:04:05"))
	}
}
