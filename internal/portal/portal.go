// Package portal probes the xdg-desktop-portal screen-cast interface over
// D-Bus. The engine captures through X11/XWayland, so the portal is only
// consulted to classify connection failures: a Wayland session exposing the
// ScreenCast portal needs a user grant the engine does not hold, while a
// session without it cannot be captured at all.
package portal

import (
	"os"

	"github.com/godbus/dbus/v5"
)

const (
	portalService   = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	screenCastIface = "org.freedesktop.portal.ScreenCast"
)

// SessionType reports the desktop session type: "x11", "wayland" or ""
// when no graphical session is detectable.
func SessionType() string {
	switch os.Getenv("XDG_SESSION_TYPE") {
	case "x11":
		return "x11"
	case "wayland":
		return "wayland"
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}
	if os.Getenv("DISPLAY") != "" {
		return "x11"
	}
	return ""
}

// ScreenCastAvailable reports whether the xdg-desktop-portal ScreenCast
// interface is present on the session bus.
func ScreenCastAvailable() bool {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return false
	}
	defer conn.Close()

	obj := conn.Object(portalService, dbus.ObjectPath(portalPath))
	variant, err := obj.GetProperty(screenCastIface + ".version")
	if err != nil {
		return false
	}
	_, ok := variant.Value().(uint32)
	return ok
}
