package projection

// Conversion method ids. The set is fixed; the upload UI renders the
// catalog returned by Methods in this order.
const (
	MethodPerspective = "perspective"
	MethodCylindrical = "cylindrical"
	MethodTileRepeat  = "tile_repeat"
	MethodAIDepth     = "ai_depth"
)

// MethodDescriptor describes one entry of the static conversion catalog.
type MethodDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quality     string `json:"quality"`
	Speed       string `json:"speed"`
	Recommended bool   `json:"recommended"`
	Premium     bool   `json:"premium"`
}

// Methods returns the fixed, order-stable conversion catalog. Exactly one
// entry is Recommended and exactly one is Premium. The slice is rebuilt on
// every call so callers cannot mutate the catalog.
func Methods() []MethodDescriptor {
	return []MethodDescriptor{
		{
			ID:          MethodPerspective,
			Name:        "Perspective",
			Description: "Places the photo on the center of a black equirectangular canvas",
			Quality:     "good",
			Speed:       "fast",
			Recommended: true,
		},
		{
			ID:          MethodCylindrical,
			Name:        "Cylindrical",
			Description: "Wraps the photo across the full canvas width with a warmed color grade",
			Quality:     "better",
			Speed:       "fast",
		},
		{
			ID:          MethodTileRepeat,
			Name:        "Tile Repeat",
			Description: "Repeats the photo four times around the horizon",
			Quality:     "basic",
			Speed:       "fastest",
		},
		{
			ID:          MethodAIDepth,
			Name:        "AI Depth",
			Description: "Depth-aware conversion for high resolution photos",
			Quality:     "best",
			Speed:       "slow",
			Premium:     true,
		},
	}
}
