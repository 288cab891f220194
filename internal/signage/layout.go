package signage

import "github.com/Nixie-Tech-LLC/signage/internal/model"

const (
	MinSplitRatio = 20
	MaxSplitRatio = 80

	// WidgetShare is the fraction of the main zone taken by the schedule
	// widget in split layouts.
	WidgetShare = 0.15
)

// Rect is a region in percent of the content area, origin top-left.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Geometry is where each zone sits for a layout. Sub and Widget are only
// meaningful when the matching Has flag is set.
type Geometry struct {
	Mode      model.LayoutMode `json:"mode"`
	Ratio     int              `json:"ratio"`
	Main      Rect             `json:"main"`
	Sub       Rect             `json:"sub"`
	Widget    Rect             `json:"widget"`
	HasSub    bool             `json:"hasSub"`
	HasWidget bool             `json:"hasWidget"`
}

// ClampRatio bounds a stored split ratio to [MinSplitRatio, MaxSplitRatio].
func ClampRatio(ratio int) int {
	return min(max(ratio, MinSplitRatio), MaxSplitRatio)
}

// Layout computes zone geometry. SPLIT stacks sub above main, SPLIT_H puts
// sub left of main; main always gets ratio percent. FULL, and any unknown
// mode, gives the whole area to main and ignores ratio.
func Layout(mode model.LayoutMode, ratio int) Geometry {
	switch mode {
	case model.LayoutSplit:
		r := float64(ClampRatio(ratio))
		zone := Rect{X: 0, Y: 100 - r, W: 100, H: r}
		return splitGeometry(mode, ClampRatio(ratio), Rect{X: 0, Y: 0, W: 100, H: 100 - r}, zone)
	case model.LayoutSplitH:
		r := float64(ClampRatio(ratio))
		zone := Rect{X: 100 - r, Y: 0, W: r, H: 100}
		return splitGeometry(mode, ClampRatio(ratio), Rect{X: 0, Y: 0, W: 100 - r, H: 100}, zone)
	default:
		return Geometry{
			Mode:  model.LayoutFull,
			Ratio: 100,
			Main:  Rect{X: 0, Y: 0, W: 100, H: 100},
		}
	}
}

// splitGeometry carves the widget off the top of the main zone.
func splitGeometry(mode model.LayoutMode, ratio int, sub, zone Rect) Geometry {
	wh := zone.H * WidgetShare
	return Geometry{
		Mode:      mode,
		Ratio:     ratio,
		Sub:       sub,
		HasSub:    true,
		Widget:    Rect{X: zone.X, Y: zone.Y, W: zone.W, H: wh},
		HasWidget: true,
		Main:      Rect{X: zone.X, Y: zone.Y + wh, W: zone.W, H: zone.H - wh},
	}
}
