package source

import "fmt"

// ID identifies a display or window for the duration of one enumeration.
// Displays use their output index ([0, displayCount)); windows use their
// native X11 window ID. IDs are not guaranteed stable across enumerations:
// windows close and displays reconfigure.
type ID int64

// Size is a width/height pair. A zero dimension means "unspecified" — for
// extraction sizes it disables the extraction, for capture requests it
// selects the native resolution.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Validate rejects negative dimensions.
func (s Size) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("size dimensions must be non-negative, got %dx%d", s.Width, s.Height)
	}
	return nil
}

// IsZero reports whether either dimension is unspecified.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// Area returns width*height.
func (s Size) Area() int {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an edge-defined rectangle in screen coordinates.
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Validate rejects inverted rectangles.
func (r Rect) Validate() error {
	if r.Right < r.Left {
		return fmt.Errorf("rect right (%d) must not be less than left (%d)", r.Right, r.Left)
	}
	if r.Bottom < r.Top {
		return fmt.Errorf("rect bottom (%d) must not be less than top (%d)", r.Bottom, r.Top)
	}
	return nil
}

// Width returns right-left.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns bottom-top.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Area returns the covered area in pixels.
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Info describes one capturable source. Instances are created fresh on each
// enumeration and are immutable once returned. IsMinimized, IsMaximized and
// ProcessPath are only meaningful for windows; IsPrimary only for displays.
// Icon and Thumbnail are nil unless extraction was requested and succeeded.
type Info struct {
	ID          ID     `json:"id"`
	IsWindow    bool   `json:"is_window"`
	Rect        Rect   `json:"rect"`
	Title       string `json:"title"`
	ProcessPath string `json:"process_path,omitempty"`
	IsMinimized bool   `json:"is_minimized,omitempty"`
	IsMaximized bool   `json:"is_maximized,omitempty"`
	IsPrimary   bool   `json:"is_primary,omitempty"`

	Icon      *ImageBuffer `json:"-"`
	Thumbnail *ImageBuffer `json:"-"`
}

func (i Info) String() string {
	kind := "Display"
	if i.IsWindow {
		kind = "Window"
	}
	return fmt.Sprintf("%s %d: %q %s", kind, i.ID, i.Title, i.Rect)
}
