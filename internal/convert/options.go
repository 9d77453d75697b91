// Package convert maps per-media-type option sets onto engine commands and
// drives conversions end to end.
package convert

// Options is the per-media-type option set for one conversion. Exactly one
// of the three variants applies; the owning media type is determined by the
// target format tag through the format registry.
type Options interface {
	// TargetFormat returns the format tag of the conversion output.
	TargetFormat() string
}

// AudioOptions configures an audio conversion. Zero-valued optional fields
// emit no command flags.
type AudioOptions struct {
	Format     string `json:"format"`
	Codec      string `json:"codec,omitempty"`
	Bitrate    string `json:"bitrate,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
}

func (o AudioOptions) TargetFormat() string { return o.Format }

// VideoOptions configures a video conversion. CRF is a pointer because zero
// is a meaningful value.
type VideoOptions struct {
	Format     string `json:"format"`
	Resolution string `json:"resolution,omitempty"`
	Bitrate    string `json:"bitrate,omitempty"`
	Codec      string `json:"codec,omitempty"`
	FPS        int    `json:"fps,omitempty"`
	Preset     string `json:"preset,omitempty"`
	CRF        *int   `json:"crf,omitempty"`
}

func (o VideoOptions) TargetFormat() string { return o.Format }

// ImageOptions configures an image conversion. Quality and CompressionLevel
// are pointers because zero is a meaningful value for both.
type ImageOptions struct {
	Format           string `json:"format"`
	Quality          *int   `json:"quality,omitempty"`
	CompressionLevel *int   `json:"compressionLevel,omitempty"`
}

func (o ImageOptions) TargetFormat() string { return o.Format }
