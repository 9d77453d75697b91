package media

import (
	"errors"
	"fmt"
)

// MediaType partitions the format space. Every format tag belongs to exactly
// one type's set.
type MediaType string

const (
	TypeAudio MediaType = "audio"
	TypeImage MediaType = "image"
	TypeVideo MediaType = "video"
)

// ErrUnknownFormat is returned when a format tag is not registered under any
// media type.
var ErrUnknownFormat = errors.New("unknown media format")

var audioFormats = []string{
	"mp3", "wav", "aac", "ogg", "flac", "wma", "m4a", "aiff", "alac",
	"ac3", "amr", "au", "mka", "mid", "mp2", "mpa", "ra", "wv", "opus",
	"dts", "eac3", "mpc", "tak", "tta", "w64",
}

var imageFormats = []string{
	"jpeg", "png", "gif", "webp", "avif", "tiff", "bmp", "ico", "svg",
}

var videoFormats = []string{
	"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "mpeg", "3gp",
	"ts", "m4v", "m2v", "m2ts", "mts", "vob", "mpg", "asf", "rm",
	"swf", "rmvb", "divx", "xvid", "h264", "h265", "vp9", "av1",
}

var formatSets = map[MediaType]map[string]bool{
	TypeAudio: toSet(audioFormats),
	TypeImage: toSet(imageFormats),
	TypeVideo: toSet(videoFormats),
}

func toSet(formats []string) map[string]bool {
	set := make(map[string]bool, len(formats))
	for _, f := range formats {
		set[f] = true
	}
	return set
}

// IsAudioFormat reports whether format belongs to the audio format set.
func IsAudioFormat(format string) bool { return formatSets[TypeAudio][format] }

// IsImageFormat reports whether format belongs to the image format set.
func IsImageFormat(format string) bool { return formatSets[TypeImage][format] }

// IsVideoFormat reports whether format belongs to the video format set.
func IsVideoFormat(format string) bool { return formatSets[TypeVideo][format] }

// TypeOf returns the media type owning the given format tag.
func TypeOf(format string) (MediaType, error) {
	switch {
	case IsAudioFormat(format):
		return TypeAudio, nil
	case IsImageFormat(format):
		return TypeImage, nil
	case IsVideoFormat(format):
		return TypeVideo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var mimeTypes = map[MediaType]map[string]string{
	TypeAudio: {
		"mp3":  "audio/mpeg",
		"wav":  "audio/wav",
		"aac":  "audio/aac",
		"ogg":  "audio/ogg",
		"flac": "audio/flac",
		"wma":  "audio/x-ms-wma",
		"m4a":  "audio/mp4",
		"aiff": "audio/aiff",
		"alac": "audio/mp4",
		"ac3":  "audio/ac3",
		"amr":  "audio/amr",
		"au":   "audio/basic",
		"mka":  "audio/x-matroska",
		"mid":  "audio/midi",
		"mp2":  "audio/mpeg",
		"mpa":  "audio/mpeg",
		"ra":   "audio/x-realaudio",
		"wv":   "audio/wavpack",
		"opus": "audio/opus",
		"dts":  "audio/vnd.dts",
		"eac3": "audio/eac3",
		"mpc":  "audio/x-musepack",
		"tak":  "audio/x-tak",
		"tta":  "audio/x-tta",
		"w64":  "audio/x-w64",
	},
	TypeImage: {
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"webp": "image/webp",
		"avif": "image/avif",
		"tiff": "image/tiff",
		"bmp":  "image/bmp",
		"ico":  "image/vnd.microsoft.icon",
		"svg":  "image/svg+xml",
	},
	TypeVideo: {
		"mp4":  "video/mp4",
		"avi":  "video/x-msvideo",
		"mkv":  "video/x-matroska",
		"mov":  "video/quicktime",
		"wmv":  "video/x-ms-wmv",
		"flv":  "video/x-flv",
		"webm": "video/webm",
		"mpeg": "video/mpeg",
		"3gp":  "video/3gpp",
		"ts":   "video/mp2t",
		"m4v":  "video/x-m4v",
		"m2v":  "video/mpeg",
		"m2ts": "video/mp2t",
		"mts":  "video/mp2t",
		"vob":  "video/dvd",
		"mpg":  "video/mpeg",
		"asf":  "video/x-ms-asf",
		"rm":   "application/vnd.rn-realmedia",
		"swf":  "application/x-shockwave-flash",
		"rmvb": "application/vnd.rn-realmedia-vbr",
		"divx": "video/divx",
		"xvid": "video/xvid",
		"h264": "video/h264",
		"h265": "video/h265",
		"vp9":  "video/vp9",
		"av1":  "video/av1",
	},
}

// MimeType returns the MIME type registered for the given format tag.
func MimeType(format string) (string, error) {
	mt, err := TypeOf(format)
	if err != nil {
		return "", err
	}
	return mimeTypes[mt][format], nil
}
