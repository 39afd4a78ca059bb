package capture

import (
	"fmt"
	"image"
	"time"

	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/bryanchriswhite/snapsource/internal/logger"
	"github.com/bryanchriswhite/snapsource/internal/source"
	"github.com/bryanchriswhite/snapsource/internal/x11"
)

// DefaultTimeout bounds one blocking X round-trip during capture.
const DefaultTimeout = 5 * time.Second

// Capturer produces one-shot snapshots of displays and windows. Capture
// calls keep no session state: every server resource (pixmaps, composite
// redirects) is released before returning, on success and error paths alike.
type Capturer struct {
	conn    *x11.Conn
	timeout time.Duration
}

// New creates a Capturer over an established connection. timeout <= 0
// selects DefaultTimeout.
func New(conn *x11.Conn, timeout time.Duration) *Capturer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Capturer{conn: conn, timeout: timeout}
}

// Snapshot captures the current pixel contents of the source identified by
// id, scaled to fit within requested (see FitSize for the scaling policy;
// a zero dimension requests native resolution). The returned size is the
// actual output size.
//
// The id is resolved live against the current display layout and window
// registry, so a source that disappeared since enumeration fails with
// source.ErrSourceNotFound. Unmapped windows with no backing buffer and
// timed-out round-trips fail with source.ErrCaptureFailed.
func (c *Capturer) Snapshot(id source.ID, requested source.Size) (*source.ImageBuffer, source.Size, error) {
	if err := requested.Validate(); err != nil {
		return nil, source.Size{}, err
	}

	img, err := c.captureNative(id)
	if err != nil {
		return nil, source.Size{}, err
	}

	native := source.Size{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	actual := FitSize(native, requested)
	scaled := ScaleRGBA(img, actual)

	return source.FromRGBA(scaled), actual, nil
}

// Thumbnail is a Snapshot alias used by the enumerator for preview images.
func (c *Capturer) Thumbnail(id source.ID, size source.Size) (*source.ImageBuffer, error) {
	buf, _, err := c.Snapshot(id, size)
	return buf, err
}

// captureNative grabs the source at its native resolution. Display ids
// occupy [0, displayCount); anything above resolves as a window id.
func (c *Capturer) captureNative(id source.ID) (*image.RGBA, error) {
	if id < 0 {
		return nil, fmt.Errorf("source id %d: %w", id, source.ErrSourceNotFound)
	}

	displays, err := c.conn.Displays()
	if err == nil && int(id) < len(displays) {
		return c.captureDisplay(displays[id])
	}

	return c.captureWindow(xproto.Window(id))
}

func (c *Capturer) captureDisplay(d x11.Display) (*image.RGBA, error) {
	log := logger.WithComponent("capture")
	log.Debug().
		Int("display", d.Index).
		Str("name", d.Name).
		Str("rect", d.Rect.String()).
		Msg("capturing display")

	reply, err := c.getImage(
		xproto.Drawable(c.conn.Root),
		int16(d.Rect.Left), int16(d.Rect.Top),
		uint16(d.Rect.Width()), uint16(d.Rect.Height()),
	)
	if err != nil {
		return nil, err
	}
	return convertImageData(reply.Data, d.Rect.Width(), d.Rect.Height(), int(c.conn.Screen.RootDepth)), nil
}

func (c *Capturer) captureWindow(win xproto.Window) (*image.RGBA, error) {
	log := logger.WithComponent("capture")

	attrs, err := xproto.GetWindowAttributes(c.conn.Conn(), win).Reply()
	if err != nil {
		return nil, windowLookupError(win, err)
	}

	target := win
	if attrs.Class != xproto.WindowClassInputOutput || attrs.MapState != xproto.MapStateViewable {
		// Unmapped or input-only windows have no pixels of their own; a
		// viewable child may still be capturable (some toolkits reparent
		// their content into a child window).
		child, err := c.findCapturableChild(win)
		if err != nil {
			return nil, fmt.Errorf("window %d has no backing buffer: %w", win, source.ErrCaptureFailed)
		}
		log.Debug().
			Uint32("window", uint32(win)).
			Uint32("child", uint32(child)).
			Msg("capturing child window instead of unmapped parent")
		target = child
	}

	geom, err := xproto.GetGeometry(c.conn.Conn(), xproto.Drawable(target)).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get window geometry: %w", source.ErrCaptureFailed)
	}

	drawable := c.redirectedDrawable(target)
	defer drawable.release()

	reply, err := c.getImage(drawable.id, 0, 0, geom.Width, geom.Height)
	if err != nil {
		return nil, err
	}
	return convertImageData(reply.Data, int(geom.Width), int(geom.Height), int(c.conn.Screen.RootDepth)), nil
}

// windowLookupError classifies a failed window attribute fetch. Only
// BadWindow proves the id no longer names a window; a connection-level
// failure says nothing about the window, so it reports as a capture failure.
func windowLookupError(win xproto.Window, err error) error {
	if _, ok := err.(xproto.WindowError); ok {
		return fmt.Errorf("window %d: %w", win, source.ErrSourceNotFound)
	}
	return fmt.Errorf("window %d attributes unavailable: %v: %w", win, err, source.ErrCaptureFailed)
}

// findCapturableChild searches the window's subtree for a viewable
// input-output child of useful size.
func (c *Capturer) findCapturableChild(parent xproto.Window) (xproto.Window, error) {
	tree, err := xproto.QueryTree(c.conn.Conn(), parent).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to query tree: %w", err)
	}

	for _, child := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(c.conn.Conn(), child).Reply()
		if err != nil {
			continue
		}
		geom, err := xproto.GetGeometry(c.conn.Conn(), xproto.Drawable(child)).Reply()
		if err != nil {
			continue
		}
		if attrs.Class == xproto.WindowClassInputOutput &&
			attrs.MapState == xproto.MapStateViewable &&
			geom.Width > 10 && geom.Height > 10 {
			return child, nil
		}
		if grandchild, err := c.findCapturableChild(child); err == nil {
			return grandchild, nil
		}
	}
	return 0, fmt.Errorf("no capturable child found")
}

// redirected holds the drawable to read plus the cleanup for any composite
// resources backing it.
type redirected struct {
	id      xproto.Drawable
	release func()
}

// redirectedDrawable routes window capture through the Composite extension
// when available, so obscured windows still have full contents. Falls back
// to the window itself when Composite is unavailable or redirection fails.
func (c *Capturer) redirectedDrawable(win xproto.Window) redirected {
	direct := redirected{id: xproto.Drawable(win), release: func() {}}
	if !c.conn.CompositeEnabled() {
		return direct
	}

	log := logger.WithComponent("capture")
	if err := composite.RedirectWindowChecked(c.conn.Conn(), win, composite.RedirectAutomatic).Check(); err != nil {
		log.Debug().Err(err).Uint32("window", uint32(win)).Msg("composite redirect failed, capturing directly")
		return direct
	}

	pixmap, err := xproto.NewPixmapId(c.conn.Conn())
	if err != nil {
		composite.UnredirectWindow(c.conn.Conn(), win, composite.RedirectAutomatic)
		return direct
	}
	if err := composite.NameWindowPixmapChecked(c.conn.Conn(), win, pixmap).Check(); err != nil {
		composite.UnredirectWindow(c.conn.Conn(), win, composite.RedirectAutomatic)
		return direct
	}

	return redirected{
		id: xproto.Drawable(pixmap),
		release: func() {
			xproto.FreePixmap(c.conn.Conn(), pixmap)
			composite.UnredirectWindow(c.conn.Conn(), win, composite.RedirectAutomatic)
		},
	}
}

// getImage performs a GetImage round-trip bounded by the capture timeout.
// An unresponsive server or a window caught mid-destruction must fail, not
// hang the caller.
func (c *Capturer) getImage(drawable xproto.Drawable, x, y int16, width, height uint16) (*xproto.GetImageReply, error) {
	cookie := xproto.GetImage(
		c.conn.Conn(),
		xproto.ImageFormatZPixmap,
		drawable,
		x, y,
		width, height,
		0xffffffff,
	)

	type result struct {
		reply *xproto.GetImageReply
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		reply, err := cookie.Reply()
		ch <- result{reply, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("get image failed: %v: %w", r.err, source.ErrCaptureFailed)
		}
		if r.reply == nil || len(r.reply.Data) == 0 {
			return nil, fmt.Errorf("get image returned no data: %w", source.ErrCaptureFailed)
		}
		return r.reply, nil
	case <-time.After(c.timeout):
		return nil, fmt.Errorf("get image timed out after %s: %w", c.timeout, source.ErrCaptureFailed)
	}
}
