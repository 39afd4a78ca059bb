package source

import (
	"fmt"
	"strings"
)

// Flags is a bitset of enumeration filter toggles, combined with bitwise OR.
//
// With no flags set, enumeration returns both displays and windows, with the
// default window exclusions applied: untitled, unresponsive, tool, system and
// zero-layer windows are skipped. The IGNORE_* bits add exclusions; the
// NOT_* bits lift the default ones.
type Flags uint32

const (
	FlagNone Flags = 0

	// FlagIgnoreScreen excludes displays from the enumeration.
	FlagIgnoreScreen Flags = 1 << 0
	// FlagIgnoreWindow excludes windows from the enumeration.
	FlagIgnoreWindow Flags = 1 << 1
	// FlagIgnoreMinimized excludes minimized windows.
	FlagIgnoreMinimized Flags = 1 << 2
	// FlagNotIgnoreUntitled includes windows without a title.
	FlagNotIgnoreUntitled Flags = 1 << 3
	// FlagNotIgnoreUnresponsive includes windows whose owning process is gone.
	FlagNotIgnoreUnresponsive Flags = 1 << 4
	// FlagIgnoreCurrentProcess excludes windows owned by the calling process.
	FlagIgnoreCurrentProcess Flags = 1 << 5
	// FlagNotIgnoreToolWindow includes tool/utility windows.
	FlagNotIgnoreToolWindow Flags = 1 << 6
	// FlagIgnoreNoProcessPath excludes windows with no resolvable process path.
	FlagIgnoreNoProcessPath Flags = 1 << 7
	// FlagNotSkipSystemWindows includes docks, desktops and other system windows.
	FlagNotSkipSystemWindows Flags = 1 << 8
	// FlagNotSkipZeroLayerWindows includes windows kept at the bottom layer.
	FlagNotSkipZeroLayerWindows Flags = 1 << 9

	// FlagAll is the union of every toggle.
	FlagAll = FlagIgnoreScreen | FlagIgnoreWindow | FlagIgnoreMinimized |
		FlagNotIgnoreUntitled | FlagNotIgnoreUnresponsive | FlagIgnoreCurrentProcess |
		FlagNotIgnoreToolWindow | FlagIgnoreNoProcessPath |
		FlagNotSkipSystemWindows | FlagNotSkipZeroLayerWindows
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagIgnoreScreen, "ignore_screen"},
	{FlagIgnoreWindow, "ignore_window"},
	{FlagIgnoreMinimized, "ignore_minimized"},
	{FlagNotIgnoreUntitled, "not_ignore_untitled"},
	{FlagNotIgnoreUnresponsive, "not_ignore_unresponsive"},
	{FlagIgnoreCurrentProcess, "ignore_current_process_windows"},
	{FlagNotIgnoreToolWindow, "not_ignore_toolwindow"},
	{FlagIgnoreNoProcessPath, "ignore_noprocess_path"},
	{FlagNotSkipSystemWindows, "not_skip_system_windows"},
	{FlagNotSkipZeroLayerWindows, "not_skip_zero_layer_windows"},
}

// Has reports whether every bit in f is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

func (f Flags) String() string {
	if f == FlagNone {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("unknown(%#x)", uint32(f))
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses a comma-separated list of flag names ("none" and "all"
// included) into a Flags value.
func ParseFlags(s string) (Flags, error) {
	flags := FlagNone
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || name == "none" {
			continue
		}
		if name == "all" {
			flags |= FlagAll
			continue
		}
		matched := false
		for _, fn := range flagNames {
			if fn.name == name {
				flags |= fn.flag
				matched = true
				break
			}
		}
		if !matched {
			return FlagNone, fmt.Errorf("unknown enumeration flag %q", name)
		}
	}
	return flags, nil
}
