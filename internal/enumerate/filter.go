package enumerate

import (
	"github.com/bryanchriswhite/snapsource/internal/source"
	"github.com/bryanchriswhite/snapsource/internal/x11"
)

// ExcludeWindow applies the flag-driven exclusion predicates to one window.
// Each predicate is independent; a window is excluded as soon as any active
// predicate matches. With no flags set the defaults apply: untitled,
// unresponsive, tool, system and zero-layer windows are excluded, minimized
// and current-process windows are kept.
func ExcludeWindow(meta x11.WindowMeta, flags source.Flags, selfPID int) bool {
	if flags.Has(source.FlagIgnoreMinimized) && meta.Minimized {
		return true
	}
	if !flags.Has(source.FlagNotIgnoreUntitled) && meta.Title == "" {
		return true
	}
	if !flags.Has(source.FlagNotIgnoreUnresponsive) && meta.Unresponsive {
		return true
	}
	if flags.Has(source.FlagIgnoreCurrentProcess) && meta.PID != 0 && meta.PID == selfPID {
		return true
	}
	if !flags.Has(source.FlagNotIgnoreToolWindow) && meta.ToolWindow {
		return true
	}
	if flags.Has(source.FlagIgnoreNoProcessPath) && meta.ProcessPath == "" {
		return true
	}
	if !flags.Has(source.FlagNotSkipSystemWindows) && meta.SystemWindow {
		return true
	}
	if !flags.Has(source.FlagNotSkipZeroLayerWindows) && meta.ZeroLayer {
		return true
	}
	return false
}
