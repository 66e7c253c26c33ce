package cli

import (
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/core"
)

func TestFormatFromFlags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		jsonFlag       bool
		envFlag        bool
		want           core.OutputFormat
	}{
		{"neither", false, false, core.FormatHuman},
		{"json wins", true, true, core.FormatJSON},
		{"env only", false, true, core.FormatEnv},
		{"json only", true, false, core.FormatJSON},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := formatFromFlags(tc.jsonFlag, tc.envFlag); got != tc.want {
				t.Errorf("formatFromFlags(%v, %v) = %v, want %v", tc.jsonFlag, tc.envFlag, got, tc.want)
			}
		})
	}
}
