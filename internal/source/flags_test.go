package source

import "testing"

func TestFlagValues(t *testing.T) {
	// The bit layout is part of the external contract.
	expected := []struct {
		flag Flags
		bit  uint32
	}{
		{FlagIgnoreScreen, 1 << 0},
		{FlagIgnoreWindow, 1 << 1},
		{FlagIgnoreMinimized, 1 << 2},
		{FlagNotIgnoreUntitled, 1 << 3},
		{FlagNotIgnoreUnresponsive, 1 << 4},
		{FlagIgnoreCurrentProcess, 1 << 5},
		{FlagNotIgnoreToolWindow, 1 << 6},
		{FlagIgnoreNoProcessPath, 1 << 7},
		{FlagNotSkipSystemWindows, 1 << 8},
		{FlagNotSkipZeroLayerWindows, 1 << 9},
	}
	for _, tc := range expected {
		if uint32(tc.flag) != tc.bit {
			t.Fatalf("flag %s: expected bit %#x, got %#x", tc.flag, tc.bit, uint32(tc.flag))
		}
	}
	if FlagNone != 0 {
		t.Fatalf("FlagNone must be zero")
	}
}

func TestFlagAllIsUnion(t *testing.T) {
	var union Flags
	for _, fn := range flagNames {
		union |= fn.flag
	}
	if FlagAll != union {
		t.Fatalf("FlagAll (%#x) is not the union of all flags (%#x)", uint32(FlagAll), uint32(union))
	}
}

func TestFlagOperations(t *testing.T) {
	flags := FlagIgnoreScreen | FlagIgnoreWindow
	if uint32(flags) != 3 {
		t.Fatalf("expected combined value 3, got %d", uint32(flags))
	}
	if !flags.Has(FlagIgnoreScreen) || !flags.Has(FlagIgnoreWindow) {
		t.Fatalf("combined flags missing members")
	}
	if flags.Has(FlagIgnoreMinimized) {
		t.Fatalf("flags must not contain IgnoreMinimized")
	}

	flags &^= FlagIgnoreScreen
	if flags.Has(FlagIgnoreScreen) {
		t.Fatalf("IgnoreScreen still set after removal")
	}
	if !flags.Has(FlagIgnoreWindow) {
		t.Fatalf("IgnoreWindow lost during removal")
	}
}

func TestFlagsString(t *testing.T) {
	if got := FlagNone.String(); got != "none" {
		t.Fatalf("expected none, got %s", got)
	}
	got := (FlagIgnoreScreen | FlagIgnoreMinimized).String()
	if got != "ignore_screen|ignore_minimized" {
		t.Fatalf("unexpected string: %s", got)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		in   string
		want Flags
	}{
		{"", FlagNone},
		{"none", FlagNone},
		{"all", FlagAll},
		{"ignore_window", FlagIgnoreWindow},
		{"ignore_screen,ignore_minimized", FlagIgnoreScreen | FlagIgnoreMinimized},
		{" not_skip_system_windows , not_ignore_toolwindow ", FlagNotSkipSystemWindows | FlagNotIgnoreToolWindow},
		{"IGNORE_SCREEN", FlagIgnoreScreen},
	}
	for _, tc := range tests {
		got, err := ParseFlags(tc.in)
		if err != nil {
			t.Fatalf("ParseFlags(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFlags(%q): expected %#x, got %#x", tc.in, uint32(tc.want), uint32(got))
		}
	}

	if _, err := ParseFlags("bogus_flag"); err == nil {
		t.Fatalf("expected error for unknown flag name")
	}
}
