package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/bryanchriswhite/snapsource/internal/logger"
)

// Conn wraps a shared X server connection together with the extension state
// the enumeration and capture paths need. Callers sharing one Conn across
// goroutines must serialize access themselves; the engine does this with a
// mutex.
type Conn struct {
	XU     *xgbutil.XUtil
	Screen *xproto.ScreenInfo
	Root   xproto.Window

	compositeEnabled bool
	randrEnabled     bool
}

// Connect establishes the X connection and initializes the RandR and
// Composite extensions. Composite is optional: without it, window capture
// falls back to direct GetImage and may fail for obscured windows.
func Connect() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	c := &Conn{
		XU:     xu,
		Screen: xu.Screen(),
		Root:   xu.RootWin(),
	}

	log := logger.WithComponent("x11")

	if err := randr.Init(xu.Conn()); err != nil {
		log.Warn().Err(err).Msg("RandR extension not available - display enumeration disabled")
	} else {
		c.randrEnabled = true
	}

	if err := composite.Init(xu.Conn()); err != nil {
		log.Warn().Err(err).Msg("Composite extension not available - capture of obscured windows may fail")
	} else {
		c.compositeEnabled = true
		log.Debug().Msg("Composite extension initialized")
	}

	return c, nil
}

// Conn returns the raw xgb connection.
func (c *Conn) Conn() *xgb.Conn {
	return c.XU.Conn()
}

// CompositeEnabled reports whether the Composite extension is usable.
func (c *Conn) CompositeEnabled() bool {
	return c.compositeEnabled
}

// Close closes the X connection.
func (c *Conn) Close() error {
	c.XU.Conn().Close()
	return nil
}
