package media

// FormatOption is one selectable entry in the format catalog.
type FormatOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CatalogMode selects how much of the catalog FormatsFor returns.
type CatalogMode string

const (
	ModeBase     CatalogMode = "base"
	ModeExtended CatalogMode = "extended"
)

var baseAudioCatalog = []FormatOption{
	{Label: "MP3", Value: "mp3"},
	{Label: "WAV", Value: "wav"},
	{Label: "AAC", Value: "aac"},
	{Label: "OGG", Value: "ogg"},
}

// The WV and WMA entries appear twice in the advanced catalog. That matches
// the shipped catalog data; do not dedupe.
var advancedAudioCatalog = []FormatOption{
	{Label: "FLAC", Value: "flac"},
	{Label: "WMA", Value: "wma"},
	{Label: "M4A", Value: "m4a"},
	{Label: "AIFF", Value: "aiff"},
	{Label: "ALAC", Value: "alac"},
	{Label: "AC3", Value: "ac3"},
	{Label: "AMR", Value: "amr"},
	{Label: "AU", Value: "au"},
	{Label: "MKA", Value: "mka"},
	{Label: "MID", Value: "mid"},
	{Label: "MP2", Value: "mp2"},
	{Label: "MPA", Value: "mpa"},
	{Label: "RA", Value: "ra"},
	{Label: "WV", Value: "wv"},
	{Label: "OPUS", Value: "opus"},
	{Label: "DTS", Value: "dts"},
	{Label: "EAC3", Value: "eac3"},
	{Label: "MPC", Value: "mpc"},
	{Label: "TAK", Value: "tak"},
	{Label: "TTA", Value: "tta"},
	{Label: "W64", Value: "w64"},
	{Label: "WV", Value: "wv"},
	{Label: "WMA", Value: "wma"},
}

var baseImageCatalog = []FormatOption{
	{Label: "JPEG", Value: "jpeg"},
	{Label: "PNG", Value: "png"},
	{Label: "GIF", Value: "gif"},
	{Label: "WEBP", Value: "webp"},
}

var advancedImageCatalog = []FormatOption{
	{Label: "TIFF", Value: "tiff"},
	{Label: "BMP", Value: "bmp"},
	{Label: "ICO", Value: "ico"},
	{Label: "SVG", Value: "svg"},
}

var baseVideoCatalog = []FormatOption{
	{Label: "MP4", Value: "mp4"},
	{Label: "AVI", Value: "avi"},
	{Label: "MKV", Value: "mkv"},
	{Label: "MOV", Value: "mov"},
}

var advancedVideoCatalog = []FormatOption{
	{Label: "WMV", Value: "wmv"},
	{Label: "FLV", Value: "flv"},
	{Label: "WEBM", Value: "webm"},
	{Label: "MPEG", Value: "mpeg"},
	{Label: "3GP", Value: "3gp"},
	{Label: "TS", Value: "ts"},
	{Label: "M4V", Value: "m4v"},
	{Label: "M2V", Value: "m2v"},
	{Label: "M2TS", Value: "m2ts"},
	{Label: "MTS", Value: "mts"},
	{Label: "VOB", Value: "vob"},
	{Label: "MPG", Value: "mpg"},
	{Label: "ASF", Value: "asf"},
	{Label: "RM", Value: "rm"},
	{Label: "SWF", Value: "swf"},
	{Label: "RMVB", Value: "rmvb"},
	{Label: "DIVX", Value: "divx"},
	{Label: "XVID", Value: "xvid"},
	{Label: "H264", Value: "h264"},
	{Label: "H265", Value: "h265"},
	{Label: "VP9", Value: "vp9"},
	{Label: "AV1", Value: "av1"},
}

var baseCatalogs = map[MediaType][]FormatOption{
	TypeAudio: baseAudioCatalog,
	TypeImage: baseImageCatalog,
	TypeVideo: baseVideoCatalog,
}

var advancedCatalogs = map[MediaType][]FormatOption{
	TypeAudio: advancedAudioCatalog,
	TypeImage: advancedImageCatalog,
	TypeVideo: advancedVideoCatalog,
}

// FormatsFor returns the ordered catalog of selectable formats for a media
// type. ModeExtended returns the base catalog followed by the advanced
// entries. The returned slice is a copy.
func FormatsFor(mt MediaType, mode CatalogMode) []FormatOption {
	base := baseCatalogs[mt]
	if mode != ModeExtended {
		return append([]FormatOption(nil), base...)
	}
	out := make([]FormatOption, 0, len(base)+len(advancedCatalogs[mt]))
	out = append(out, base...)
	out = append(out, advancedCatalogs[mt]...)
	return out
}
