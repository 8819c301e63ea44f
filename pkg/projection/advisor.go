package projection

import "github.com/tourweave/panoengine/pkg/types"

// Recommendation pairs a conversion method with the reason it was
// suggested.
type Recommendation struct {
	Method string `json:"method"`
	Reason string `json:"reason"`
}

// Recommend maps validation metadata to a ranked list of conversion
// methods. It is purely advisory and never gates a conversion. Reports
// without metadata, or with the degraded-capability sentinel, produce no
// recommendations because the sentinel must not be compared numerically.
func Recommend(report types.ValidationReport) []Recommendation {
	meta := report.Metadata
	if meta == nil || !meta.Known() {
		return nil
	}

	var recs []Recommendation

	switch {
	case meta.AspectRatio > 2.0:
		recs = append(recs, Recommendation{
			Method: MethodPerspective,
			Reason: "wide aspect ratio works well with perspective projection",
		})
	case meta.AspectRatio < 0.8:
		recs = append(recs, Recommendation{
			Method: MethodCylindrical,
			Reason: "tall images work better with cylindrical projection",
		})
	default:
		recs = append(recs, Recommendation{
			Method: MethodPerspective,
			Reason: "standard aspect ratio - perspective projection recommended",
		})
	}

	if meta.Width >= 2048 {
		recs = append(recs, Recommendation{
			Method: MethodAIDepth,
			Reason: "high resolution image suitable for AI-enhanced conversion",
		})
	}

	return recs
}
