package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

// Display describes one active monitor. Index is the display's source id:
// indexes are assigned in CRTC walk order and stay clear of X window IDs,
// which are allocated from per-client resource bases far above them.
type Display struct {
	Index   int
	Name    string
	Rect    source.Rect
	Primary bool
}

// Displays enumerates active monitors via RandR. Disabled CRTCs and CRTCs
// with no connected outputs are skipped.
func (c *Conn) Displays() ([]Display, error) {
	if !c.randrEnabled {
		return nil, fmt.Errorf("randr extension unavailable: %w", source.ErrUnsupportedPlatform)
	}

	resources, err := randr.GetScreenResources(c.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	// Primary output lookup is best-effort; some servers report none.
	var primaryOutput randr.Output
	if primary, err := randr.GetOutputPrimary(c.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = primary.Output
	}

	var displays []Display
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Display %d", i)
		primary := false
		for _, output := range crtcInfo.Outputs {
			if output == primaryOutput && primaryOutput != 0 {
				primary = true
			}
		}
		if outputInfo, err := randr.GetOutputInfo(c.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		displays = append(displays, Display{
			Index:   len(displays),
			Name:    name,
			Primary: primary,
			Rect: source.Rect{
				Left:   int(crtcInfo.X),
				Top:    int(crtcInfo.Y),
				Right:  int(crtcInfo.X) + int(crtcInfo.Width),
				Bottom: int(crtcInfo.Y) + int(crtcInfo.Height),
			},
		})
	}

	// Guarantee exactly one primary so callers can rely on the field even
	// when the server does not report a primary output.
	if len(displays) > 0 {
		hasPrimary := false
		for _, d := range displays {
			if d.Primary {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			displays[0].Primary = true
		}
	}

	return displays, nil
}

// DisplayByIndex re-resolves a display id against the current CRTC layout.
func (c *Conn) DisplayByIndex(index int) (*Display, error) {
	displays, err := c.Displays()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(displays) {
		return nil, fmt.Errorf("display %d: %w", index, source.ErrSourceNotFound)
	}
	d := displays[index]
	return &d, nil
}

// DisplayCount returns the number of active monitors, or zero when RandR is
// unavailable.
func (c *Conn) DisplayCount() int {
	displays, err := c.Displays()
	if err != nil {
		return 0
	}
	return len(displays)
}
