package types

// Canonical equirectangular panorama dimensions. Every generated panorama
// is exactly this size (2:1), the format the tour viewer consumes.
const (
	PanoramaWidth  = 4096
	PanoramaHeight = 2048
)

// SizeUnknown is the sentinel for metadata fields that could not be
// inspected because no image capability is available on the host. Callers
// must check Known before using metadata numerically; the sentinel is not
// a measurement.
const SizeUnknown = -1

// FormatUnknown is the format reported when the source could not be
// inspected.
const FormatUnknown = "unknown"

// ImageMetadata contains basic properties of a source photo, computed once
// per file and never mutated afterwards.
type ImageMetadata struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Format      string  `json:"format"`
	SizeBytes   int     `json:"size_bytes"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Known reports whether the metadata holds real measurements rather than
// the degraded-capability sentinel.
func (m ImageMetadata) Known() bool {
	return m.Width != SizeUnknown && m.Height != SizeUnknown
}

// UnknownMetadata returns the sentinel metadata used when validation runs
// without an image capability. The byte size is still real because it is
// taken from the buffer, not from decoding.
func UnknownMetadata(sizeBytes int) ImageMetadata {
	return ImageMetadata{
		Width:       SizeUnknown,
		Height:      SizeUnknown,
		Format:      FormatUnknown,
		SizeBytes:   sizeBytes,
		AspectRatio: SizeUnknown,
	}
}

// ValidationReport is the structured outcome of inspecting a source photo.
// IsValid only goes false on hard constraint failures; soft problems land
// in Issues in detection order without affecting IsValid.
type ValidationReport struct {
	IsValid  bool           `json:"is_valid"`
	Issues   []string       `json:"issues,omitempty"`
	Metadata *ImageMetadata `json:"metadata,omitempty"`
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
