package enumerate

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/bryanchriswhite/snapsource/internal/logger"
	"github.com/bryanchriswhite/snapsource/internal/source"
	"github.com/bryanchriswhite/snapsource/internal/x11"
)

// Extractor produces optional per-source preview images. Implemented by the
// capture layer; failures are tolerated per source.
type Extractor interface {
	// Thumbnail captures the source and scales it to fit within size.
	Thumbnail(id source.ID, size source.Size) (*source.ImageBuffer, error)
	// Icon extracts the window's application icon scaled to fit within size.
	Icon(win xproto.Window, size source.Size) (*source.ImageBuffer, error)
}

// Enumerator lists capturable sources. Enumeration is a read-only query: it
// holds no server resources after returning.
type Enumerator struct {
	conn    *x11.Conn
	ext     Extractor
	selfPID int
}

// New creates an Enumerator over an established X connection. ext may be nil
// to disable icon/thumbnail extraction entirely.
func New(conn *x11.Conn, ext Extractor) *Enumerator {
	return &Enumerator{
		conn:    conn,
		ext:     ext,
		selfPID: os.Getpid(),
	}
}

// Enumerate lists displays and windows according to flags. A zero-area
// iconSize or thumbSize disables that extraction. Sources whose extraction
// fails are still returned with the corresponding field nil; individual
// window failures never fail the whole call.
func (e *Enumerator) Enumerate(iconSize, thumbSize source.Size, flags source.Flags) ([]source.Info, error) {
	if err := iconSize.Validate(); err != nil {
		return nil, fmt.Errorf("invalid icon size: %w", err)
	}
	if err := thumbSize.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thumbnail size: %w", err)
	}

	sources := make([]source.Info, 0)

	if !flags.Has(source.FlagIgnoreScreen) {
		displays, err := e.enumerateDisplays(thumbSize)
		if err != nil {
			return nil, err
		}
		sources = append(sources, displays...)
	}

	if !flags.Has(source.FlagIgnoreWindow) {
		windows, err := e.enumerateWindows(iconSize, thumbSize, flags)
		if err != nil {
			return nil, err
		}
		sources = append(sources, windows...)
	}

	return sources, nil
}

func (e *Enumerator) enumerateDisplays(thumbSize source.Size) ([]source.Info, error) {
	displays, err := e.conn.Displays()
	if err != nil {
		return nil, err
	}

	infos := make([]source.Info, 0, len(displays))
	for _, d := range displays {
		info := source.Info{
			ID:        source.ID(d.Index),
			IsWindow:  false,
			Title:     d.Name,
			Rect:      d.Rect,
			IsPrimary: d.Primary,
		}
		info.Thumbnail = e.thumbnail(info.ID, thumbSize)
		infos = append(infos, info)
	}
	return infos, nil
}

func (e *Enumerator) enumerateWindows(iconSize, thumbSize source.Size, flags source.Flags) ([]source.Info, error) {
	metas, err := e.conn.ListWindows()
	if err != nil {
		return nil, err
	}

	infos := make([]source.Info, 0, len(metas))
	for _, meta := range metas {
		if ExcludeWindow(meta, flags, e.selfPID) {
			continue
		}
		info := source.Info{
			ID:          source.ID(meta.ID),
			IsWindow:    true,
			Title:       meta.Title,
			ProcessPath: meta.ProcessPath,
			Rect:        meta.Rect,
			IsMinimized: meta.Minimized,
			IsMaximized: meta.Maximized,
		}
		info.Icon = e.icon(meta.ID, iconSize)
		info.Thumbnail = e.thumbnail(info.ID, thumbSize)
		infos = append(infos, info)
	}
	return infos, nil
}

// thumbnail is best-effort: a window destroyed mid-enumeration or an
// unmapped source simply yields no preview.
func (e *Enumerator) thumbnail(id source.ID, size source.Size) *source.ImageBuffer {
	if e.ext == nil || size.IsZero() {
		return nil
	}
	buf, err := e.ext.Thumbnail(id, size)
	if err != nil {
		logger.WithComponent("enumerate").Debug().
			Err(err).
			Int64("id", int64(id)).
			Msg("thumbnail extraction failed")
		return nil
	}
	return buf
}

func (e *Enumerator) icon(win xproto.Window, size source.Size) *source.ImageBuffer {
	if e.ext == nil || size.IsZero() {
		return nil
	}
	buf, err := e.ext.Icon(win, size)
	if err != nil {
		logger.WithComponent("enumerate").Debug().
			Err(err).
			Uint32("window", uint32(win)).
			Msg("icon extraction failed")
		return nil
	}
	return buf
}
