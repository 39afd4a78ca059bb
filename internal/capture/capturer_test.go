package capture

import (
	"errors"
	"fmt"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

func TestWindowLookupError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"bad window means the id is stale", xproto.WindowError{NiceName: "Window"}, source.ErrSourceNotFound},
		{"connection failure is not a stale id", fmt.Errorf("connection reset"), source.ErrCaptureFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := windowLookupError(0x2800004, tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("windowLookupError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
