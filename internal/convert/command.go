package convert

import (
	"errors"
	"fmt"
	"strconv"

	"mediaforge/internal/media"
)

// ErrUnsupportedMediaType is returned when an options variant cannot be
// classified into audio, image or video by its format tag.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// BuildCommand maps an option set onto an ordered engine command. The
// command always starts with "-i <inputName>" and ends with <outputName>;
// optional fields that are absent emit nothing. BuildCommand is pure: it
// performs no I/O and applies no defaults.
func BuildCommand(inputName string, opts Options, outputName string) ([]string, error) {
	mt, err := media.TypeOf(opts.TargetFormat())
	if err != nil {
		return nil, err
	}

	cmd := []string{"-i", inputName}

	switch o := opts.(type) {
	case AudioOptions:
		if mt != media.TypeAudio {
			return nil, fmt.Errorf("%w: audio options with %s format %q", ErrUnsupportedMediaType, mt, o.Format)
		}
		if o.Codec != "" {
			cmd = append(cmd, "-c:a", o.Codec)
		}
		if o.Bitrate != "" {
			cmd = append(cmd, "-b:a", o.Bitrate)
		}
		if o.SampleRate > 0 {
			cmd = append(cmd, "-ar", strconv.Itoa(o.SampleRate))
		}
		if o.Channels > 0 {
			cmd = append(cmd, "-ac", strconv.Itoa(o.Channels))
		}

	case VideoOptions:
		if mt != media.TypeVideo {
			return nil, fmt.Errorf("%w: video options with %s format %q", ErrUnsupportedMediaType, mt, o.Format)
		}
		if o.Resolution != "" {
			cmd = append(cmd, "-s", o.Resolution)
		}
		if o.Bitrate != "" {
			cmd = append(cmd, "-b:v", o.Bitrate)
		}
		if o.Codec != "" {
			cmd = append(cmd, "-c:v", o.Codec)
		}
		if o.FPS > 0 {
			cmd = append(cmd, "-r", strconv.Itoa(o.FPS))
		}
		if o.Preset != "" {
			cmd = append(cmd, "-preset", o.Preset)
		}
		if o.CRF != nil {
			cmd = append(cmd, "-crf", strconv.Itoa(*o.CRF))
		}

	case ImageOptions:
		if mt != media.TypeImage {
			return nil, fmt.Errorf("%w: image options with %s format %q", ErrUnsupportedMediaType, mt, o.Format)
		}
		if o.Quality != nil {
			cmd = append(cmd, "-q:v", strconv.Itoa(*o.Quality))
		}
		if o.CompressionLevel != nil {
			cmd = append(cmd, "-compression_level", strconv.Itoa(*o.CompressionLevel))
		}

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedMediaType, opts)
	}

	return append(cmd, outputName), nil
}
