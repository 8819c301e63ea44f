// Package validator inspects candidate source photos before conversion or
// stitching and produces structured validation reports.
package validator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tourweave/panoengine/internal/utils"
	"github.com/tourweave/panoengine/pkg/capability"
	"github.com/tourweave/panoengine/pkg/types"
)

// Limits holds the constraints applied to source photos. Resolution and
// byte size are hard constraints; the aspect ratio band is advisory and
// only produces a warning.
type Limits struct {
	MinWidth       int
	MinHeight      int
	MaxSizeBytes   int
	MinAspectRatio float64
	MaxAspectRatio float64
}

// DefaultLimits returns the production constraints for tour photos.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:       800,
		MinHeight:      600,
		MaxSizeBytes:   50 * 1024 * 1024,
		MinAspectRatio: 0.5,
		MaxAspectRatio: 4.0,
	}
}

// Validator checks source photos against configured limits.
type Validator struct {
	cap    capability.Capability
	limits Limits
	log    *zap.Logger
}

// New creates a Validator with default limits.
func New(cap capability.Capability) *Validator {
	return NewWithLimits(cap, DefaultLimits())
}

// NewWithLimits creates a Validator with custom limits.
func NewWithLimits(cap capability.Capability, limits Limits) *Validator {
	return &Validator{cap: cap, limits: limits, log: zap.NewNop()}
}

// SetLogger attaches a structured logger.
func (v *Validator) SetLogger(log *zap.Logger) {
	if log != nil {
		v.log = log
	}
}

// Validate inspects a candidate source photo. Only hard constraint
// failures flip IsValid; soft problems are appended to Issues in detection
// order. Without an image capability the photo passes with sentinel
// metadata and a single degraded-validation issue.
func (v *Validator) Validate(data []byte) types.ValidationReport {
	if !v.cap.Available() {
		v.log.Warn("image capability unavailable, validation degraded",
			zap.Int("size_bytes", len(data)))
		meta := types.UnknownMetadata(len(data))
		return types.ValidationReport{
			IsValid:  true,
			Issues:   []string{"image capability unavailable: metadata not inspected"},
			Metadata: &meta,
		}
	}

	probe, err := v.cap.Inspect(data)
	if err != nil {
		return types.ValidationReport{
			IsValid: false,
			Issues:  []string{fmt.Sprintf("unreadable image: %v", err)},
		}
	}

	meta := types.ImageMetadata{
		Width:       probe.Width,
		Height:      probe.Height,
		Format:      probe.Format,
		SizeBytes:   len(data),
		AspectRatio: float64(probe.Width) / float64(probe.Height),
	}

	report := types.ValidationReport{IsValid: true, Metadata: &meta}

	if meta.Width < v.limits.MinWidth || meta.Height < v.limits.MinHeight {
		report.IsValid = false
		report.Issues = append(report.Issues, fmt.Sprintf(
			"resolution too low: %dx%d (minimum %dx%d)",
			meta.Width, meta.Height, v.limits.MinWidth, v.limits.MinHeight))
	}

	if meta.SizeBytes > v.limits.MaxSizeBytes {
		report.IsValid = false
		report.Issues = append(report.Issues, fmt.Sprintf(
			"file too large: %s (maximum %s)",
			utils.FormatFileSize(int64(meta.SizeBytes)),
			utils.FormatFileSize(int64(v.limits.MaxSizeBytes))))
	}

	if meta.AspectRatio < v.limits.MinAspectRatio || meta.AspectRatio > v.limits.MaxAspectRatio {
		report.Issues = append(report.Issues, fmt.Sprintf(
			"unusual aspect ratio %.2f may not convert well", meta.AspectRatio))
	}

	v.log.Debug("validated source photo",
		zap.Int("width", meta.Width),
		zap.Int("height", meta.Height),
		zap.String("format", meta.Format),
		zap.Bool("is_valid", report.IsValid),
		zap.Int("issues", len(report.Issues)))

	return report
}
