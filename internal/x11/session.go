package x11

import "os"

// Session kinds returned by DetectSession.
const (
	SessionX11     = "x11"
	SessionWayland = "wayland"
	SessionUnknown = "unknown"
)

// DetectSession reports which display server the current session runs on,
// judging from the environment.
func DetectSession() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return SessionWayland
	}

	if sessionType == "x11" || x11Display != "" {
		return SessionX11
	}

	return SessionUnknown
}
