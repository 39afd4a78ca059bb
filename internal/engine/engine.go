// Package engine composes the X11 connection, enumerator and capturer into
// the two-operation surface of the capture engine: enumerate sources, then
// snapshot one of them. Operations are synchronous, one-shot and hold no
// state between calls beyond the underlying X connection.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/bryanchriswhite/snapsource/internal/capture"
	"github.com/bryanchriswhite/snapsource/internal/enumerate"
	"github.com/bryanchriswhite/snapsource/internal/logger"
	"github.com/bryanchriswhite/snapsource/internal/portal"
	"github.com/bryanchriswhite/snapsource/internal/source"
	"github.com/bryanchriswhite/snapsource/internal/x11"
)

// Engine is the capture engine facade. It is safe for concurrent use: the
// shared X connection is not reentrant, so a mutex serializes operations.
type Engine struct {
	mu       sync.Mutex
	conn     *x11.Conn
	enum     *enumerate.Enumerator
	capturer *capture.Capturer
}

// New connects to the display server and builds the engine. Connection
// failures are classified against the session environment (see
// classifyConnectError).
func New(captureTimeout time.Duration) (*Engine, error) {
	conn, err := x11.Connect()
	if err != nil {
		return nil, classifyConnectError(err)
	}

	capturer := capture.New(conn, captureTimeout)
	e := &Engine{
		conn:     conn,
		enum:     enumerate.New(conn, capturer),
		capturer: capturer,
	}

	logger.WithComponent("engine").Debug().
		Dur("capture_timeout", captureTimeout).
		Msg("engine connected")
	return e, nil
}

// classifyConnectError maps a failed X connect onto the error taxonomy. On
// a Wayland session with the ScreenCast portal available the failure is a
// missing grant (XWayland capture needs it); without the portal the session
// cannot be captured; with no session at all the platform is unsupported.
func classifyConnectError(err error) error {
	switch portal.SessionType() {
	case "wayland":
		if portal.ScreenCastAvailable() {
			return fmt.Errorf("wayland session requires a screen-cast grant: %v: %w",
				err, source.ErrPermissionDenied)
		}
		return fmt.Errorf("wayland session without screen-cast portal: %v: %w",
			err, source.ErrUnsupportedPlatform)
	case "x11":
		return fmt.Errorf("x server connection failed: %w", err)
	default:
		return fmt.Errorf("no graphical session detected: %v: %w",
			err, source.ErrUnsupportedPlatform)
	}
}

// EnumerateSources lists capturable displays and windows. A zero-area
// iconSize or thumbSize disables that extraction.
func (e *Engine) EnumerateSources(iconSize, thumbSize source.Size, flags source.Flags) ([]source.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enum.Enumerate(iconSize, thumbSize, flags)
}

// CaptureSnapshot captures the source identified by id, scaled to fit
// within requested. The returned size is the actual output size.
func (e *Engine) CaptureSnapshot(id source.ID, requested source.Size) (*source.ImageBuffer, source.Size, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capturer.Snapshot(id, requested)
}

// Close releases the X connection.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn.Close()
}
