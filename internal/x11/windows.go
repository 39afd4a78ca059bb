package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/bryanchriswhite/snapsource/internal/logger"
	"github.com/bryanchriswhite/snapsource/internal/source"
)

// WindowMeta is the raw per-window metadata the enumeration filter operates
// on. It is collected in one pass so the filter predicates stay pure.
type WindowMeta struct {
	ID           xproto.Window
	Title        string
	PID          int
	ProcessPath  string
	Rect         source.Rect
	Minimized    bool
	Maximized    bool
	ToolWindow   bool
	SystemWindow bool
	ZeroLayer    bool
	Unresponsive bool
}

// _NET_WM_WINDOW_TYPE values treated as tool windows.
var toolWindowTypes = map[string]bool{
	"_NET_WM_WINDOW_TYPE_TOOLBAR": true,
	"_NET_WM_WINDOW_TYPE_UTILITY": true,
	"_NET_WM_WINDOW_TYPE_MENU":    true,
}

// _NET_WM_WINDOW_TYPE values treated as system windows.
var systemWindowTypes = map[string]bool{
	"_NET_WM_WINDOW_TYPE_DOCK":         true,
	"_NET_WM_WINDOW_TYPE_DESKTOP":      true,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION": true,
	"_NET_WM_WINDOW_TYPE_SPLASH":       true,
}

// ListWindows returns metadata for all top-level windows, preferring the
// EWMH _NET_CLIENT_LIST and falling back to a QueryTree walk when the
// window manager does not maintain one. Result order is the server's
// enumeration order and is not stable between calls.
func (c *Conn) ListWindows() ([]WindowMeta, error) {
	log := logger.WithComponent("x11")

	windows, err := c.listWindowsEWMH()
	if err == nil && len(windows) > 0 {
		log.Debug().Int("count", len(windows)).Msg("ListWindows: using EWMH _NET_CLIENT_LIST")
		return windows, nil
	}
	if err != nil {
		log.Debug().Err(err).Msg("ListWindows: EWMH failed, falling back to QueryTree")
	}

	windows, err = c.listWindowsQueryTree()
	if err != nil {
		return nil, fmt.Errorf("window enumeration failed: %w", err)
	}
	log.Debug().Int("count", len(windows)).Msg("ListWindows: using QueryTree fallback")
	return windows, nil
}

func (c *Conn) listWindowsEWMH() ([]WindowMeta, error) {
	clients, err := ewmh.ClientListGet(c.XU)
	if err != nil {
		return nil, fmt.Errorf("failed to get _NET_CLIENT_LIST: %w", err)
	}

	windows := make([]WindowMeta, 0, len(clients))
	for _, win := range clients {
		meta, err := c.WindowMeta(win)
		if err != nil {
			// Window closed mid-enumeration; skip rather than fail the call.
			continue
		}
		windows = append(windows, meta)
	}
	return windows, nil
}

func (c *Conn) listWindowsQueryTree() ([]WindowMeta, error) {
	tree, err := xproto.QueryTree(c.Conn(), c.Root).Reply()
	if err != nil {
		return nil, err
	}

	windows := make([]WindowMeta, 0, len(tree.Children))
	for _, child := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(c.Conn(), child).Reply()
		if err != nil || attrs.Class != xproto.WindowClassInputOutput {
			continue
		}
		// QueryTree includes unmapped frame/helper windows EWMH would not
		// list; only viewable children are candidate sources here.
		if attrs.MapState != xproto.MapStateViewable {
			continue
		}
		meta, err := c.WindowMeta(child)
		if err != nil {
			continue
		}
		windows = append(windows, meta)
	}
	return windows, nil
}

// WindowMeta collects metadata for a single window. Property reads are
// best-effort: a missing property leaves its field at the zero value so a
// partially-described window is still returned.
func (c *Conn) WindowMeta(win xproto.Window) (WindowMeta, error) {
	meta := WindowMeta{ID: win}

	geom, err := xproto.GetGeometry(c.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return meta, fmt.Errorf("failed to get geometry for window %d: %w", win, err)
	}

	// Geometry is relative to the parent; translate to root coordinates so
	// rects are comparable with display rects.
	left, top := int(geom.X), int(geom.Y)
	if trans, err := xproto.TranslateCoordinates(c.Conn(), win, c.Root, 0, 0).Reply(); err == nil {
		left, top = int(trans.DstX), int(trans.DstY)
	}
	meta.Rect = source.Rect{
		Left:   left,
		Top:    top,
		Right:  left + int(geom.Width),
		Bottom: top + int(geom.Height),
	}

	if title, err := ewmh.WmNameGet(c.XU, win); err == nil && title != "" {
		meta.Title = title
	} else if title, err := icccm.WmNameGet(c.XU, win); err == nil {
		meta.Title = title
	}

	if pid, err := ewmh.WmPidGet(c.XU, win); err == nil {
		meta.PID = int(pid)
	}
	meta.ProcessPath = ProcessPath(meta.PID)
	meta.Unresponsive = meta.PID > 0 && !ProcessAlive(meta.PID)

	if states, err := ewmh.WmStateGet(c.XU, win); err == nil {
		var maxH, maxV bool
		for _, state := range states {
			switch state {
			case "_NET_WM_STATE_HIDDEN":
				meta.Minimized = true
			case "_NET_WM_STATE_MAXIMIZED_HORZ":
				maxH = true
			case "_NET_WM_STATE_MAXIMIZED_VERT":
				maxV = true
			case "_NET_WM_STATE_BELOW":
				meta.ZeroLayer = true
			}
		}
		meta.Maximized = maxH && maxV
	}

	if types, err := ewmh.WmWindowTypeGet(c.XU, win); err == nil {
		for _, t := range types {
			if toolWindowTypes[t] {
				meta.ToolWindow = true
			}
			if systemWindowTypes[t] {
				meta.SystemWindow = true
			}
		}
	}

	return meta, nil
}
