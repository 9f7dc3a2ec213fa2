package layout

import (
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
)

// Options holds the layout geometry, in pixels.
type Options struct {
	RowHeight       float64 `json:"row_height" toml:"row_height"`
	BoxX            float64 `json:"box_x" toml:"box_x"`
	BoxOffset       float64 `json:"box_offset" toml:"box_offset"`
	BoxWidth        float64 `json:"box_width" toml:"box_width"`
	BoxHeight       float64 `json:"box_height" toml:"box_height"`
	LabelX          float64 `json:"label_x" toml:"label_x"`
	LabelOffset     float64 `json:"label_offset" toml:"label_offset"`
	ConnectorX      float64 `json:"connector_x" toml:"connector_x"`
	EdgeStartOffset float64 `json:"edge_start_offset" toml:"edge_start_offset"`
	EdgeEndOffset   float64 `json:"edge_end_offset" toml:"edge_end_offset"`
	Curvature       float64 `json:"curvature" toml:"curvature"`
	Width           float64 `json:"width" toml:"width"`
	Margin          float64 `json:"margin" toml:"margin"`
}

// DefaultOptions returns the standard diagram geometry.
func DefaultOptions() Options {
	return Options{
		RowHeight:       50,
		BoxX:            5,
		BoxOffset:       12,
		BoxWidth:        170,
		BoxHeight:       25,
		LabelX:          90,
		LabelOffset:     24,
		ConnectorX:      175,
		EdgeStartOffset: 30,
		EdgeEndOffset:   20,
		Curvature:       10,
		Width:           600,
		Margin:          0,
	}
}

// Validate rejects geometry that cannot produce a drawable diagram.
func (o Options) Validate() error {
	switch {
	case o.RowHeight <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "row height must be positive, got %v", o.RowHeight)
	case o.BoxWidth <= 0 || o.BoxHeight <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "box size must be positive, got %vx%v", o.BoxWidth, o.BoxHeight)
	case o.Width <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "width must be positive, got %v", o.Width)
	case o.Curvature < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "curvature must not be negative, got %v", o.Curvature)
	case o.Margin < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "margin must not be negative, got %v", o.Margin)
	}
	return nil
}
