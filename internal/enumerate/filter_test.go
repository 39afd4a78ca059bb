package enumerate

import (
	"testing"

	"github.com/bryanchriswhite/snapsource/internal/source"
	"github.com/bryanchriswhite/snapsource/internal/x11"
)

const selfPID = 4242

// normalWindow is a titled, responsive, ordinary application window owned
// by another process. It must survive every default predicate.
func normalWindow() x11.WindowMeta {
	return x11.WindowMeta{
		ID:          0x2800004,
		Title:       "editor",
		PID:         selfPID + 1,
		ProcessPath: "/usr/bin/editor",
	}
}

func TestExcludeWindowDefaults(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*x11.WindowMeta)
		exclude bool
	}{
		{"normal window kept", func(m *x11.WindowMeta) {}, false},
		{"minimized kept by default", func(m *x11.WindowMeta) { m.Minimized = true }, false},
		{"own-process kept by default", func(m *x11.WindowMeta) { m.PID = selfPID }, false},
		{"no process path kept by default", func(m *x11.WindowMeta) { m.ProcessPath = "" }, false},
		{"untitled excluded", func(m *x11.WindowMeta) { m.Title = "" }, true},
		{"unresponsive excluded", func(m *x11.WindowMeta) { m.Unresponsive = true }, true},
		{"tool window excluded", func(m *x11.WindowMeta) { m.ToolWindow = true }, true},
		{"system window excluded", func(m *x11.WindowMeta) { m.SystemWindow = true }, true},
		{"zero-layer excluded", func(m *x11.WindowMeta) { m.ZeroLayer = true }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := normalWindow()
			tc.mutate(&meta)
			if got := ExcludeWindow(meta, source.FlagNone, selfPID); got != tc.exclude {
				t.Fatalf("expected exclude=%v, got %v", tc.exclude, got)
			}
		})
	}
}

func TestExcludeWindowOverrides(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*x11.WindowMeta)
		flags   source.Flags
		exclude bool
	}{
		{"ignore_minimized excludes minimized", func(m *x11.WindowMeta) { m.Minimized = true }, source.FlagIgnoreMinimized, true},
		{"ignore_minimized keeps mapped", func(m *x11.WindowMeta) {}, source.FlagIgnoreMinimized, false},
		{"not_ignore_untitled keeps untitled", func(m *x11.WindowMeta) { m.Title = "" }, source.FlagNotIgnoreUntitled, false},
		{"not_ignore_unresponsive keeps unresponsive", func(m *x11.WindowMeta) { m.Unresponsive = true }, source.FlagNotIgnoreUnresponsive, false},
		{"ignore_current_process excludes own window", func(m *x11.WindowMeta) { m.PID = selfPID }, source.FlagIgnoreCurrentProcess, true},
		{"ignore_current_process keeps foreign window", func(m *x11.WindowMeta) {}, source.FlagIgnoreCurrentProcess, false},
		{"not_ignore_toolwindow keeps tool window", func(m *x11.WindowMeta) { m.ToolWindow = true }, source.FlagNotIgnoreToolWindow, false},
		{"ignore_noprocess_path excludes pathless", func(m *x11.WindowMeta) { m.ProcessPath = "" }, source.FlagIgnoreNoProcessPath, true},
		{"not_skip_system_windows keeps dock", func(m *x11.WindowMeta) { m.SystemWindow = true }, source.FlagNotSkipSystemWindows, false},
		{"not_skip_zero_layer keeps bottom window", func(m *x11.WindowMeta) { m.ZeroLayer = true }, source.FlagNotSkipZeroLayerWindows, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := normalWindow()
			tc.mutate(&meta)
			if got := ExcludeWindow(meta, tc.flags, selfPID); got != tc.exclude {
				t.Fatalf("expected exclude=%v, got %v", tc.exclude, got)
			}
		})
	}
}

func TestExcludeWindowPredicatesAreIndependent(t *testing.T) {
	// A window matching one active exclusion is dropped even when every
	// other predicate is lifted.
	meta := normalWindow()
	meta.Title = ""
	flags := source.FlagAll &^ (source.FlagNotIgnoreUntitled | source.FlagIgnoreScreen | source.FlagIgnoreWindow)
	if !ExcludeWindow(meta, flags, selfPID) {
		t.Fatalf("untitled window kept although untitled exclusion is active")
	}

	// Lifting the matching exclusion keeps it, regardless of the others.
	flags |= source.FlagNotIgnoreUntitled
	if ExcludeWindow(meta, flags, selfPID) {
		t.Fatalf("untitled window dropped although exclusion was lifted")
	}
}

func TestExcludeWindowAllInclusive(t *testing.T) {
	// FlagAll lifts every default exclusion but also activates the opt-in
	// exclusions, so a minimized own-process window is still dropped.
	meta := normalWindow()
	meta.Minimized = true
	if !ExcludeWindow(meta, source.FlagAll, selfPID) {
		t.Fatalf("FlagAll must activate the minimized exclusion")
	}

	meta = normalWindow()
	meta.Title = ""
	meta.ToolWindow = true
	meta.SystemWindow = true
	meta.ZeroLayer = true
	meta.Unresponsive = true
	inclusive := source.FlagNotIgnoreUntitled | source.FlagNotIgnoreUnresponsive |
		source.FlagNotIgnoreToolWindow | source.FlagNotSkipSystemWindows |
		source.FlagNotSkipZeroLayerWindows
	if ExcludeWindow(meta, inclusive, selfPID) {
		t.Fatalf("window dropped although every matching exclusion was lifted")
	}
}
