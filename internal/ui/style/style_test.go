package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var semantic = []struct {
	name string
	fn   func(string) string
}{
	{"Success", Success},
	{"Warning", Warning},
	{"Error", Error},
	{"Info", Info},
	{"Header", Header},
	{"Muted", Muted},
}

func TestDisabledReturnsPlainText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("STARCLUSTER_NO_COLOR", "")
	Init(false)

	for _, tt := range semantic {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("test message")
			require.Equal(t, "test message", out)
			require.NotContains(t, out, "\x1b[")
		})
	}
}

func TestEnabledReturnsStyledText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("STARCLUSTER_NO_COLOR", "")
	Init(true)
	t.Cleanup(func() { Init(false) })

	for _, tt := range semantic {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("test message")
			require.Contains(t, out, "test message")
			require.True(t, strings.Contains(out, "\x1b["), "expected ANSI codes in %q", out)
		})
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	for _, key := range []string{"NO_COLOR", "STARCLUSTER_NO_COLOR"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "1")
			Init(true)
			t.Cleanup(func() { Init(false) })

			require.False(t, Enabled())
			require.Equal(t, "test", Warning("test"))
			require.Equal(t, ColorConfig{}, GetColors())
		})
	}
}

func TestEnabledReturnsCorrectState(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("STARCLUSTER_NO_COLOR", "")

	Init(false)
	require.False(t, Enabled())

	Init(true)
	require.True(t, Enabled())
	require.Equal(t, DefaultColors, GetColors())

	Init(false)
}

func TestMakeStyleBold(t *testing.T) {
	require.True(t, makeStyle("bold").GetBold())
	require.False(t, makeStyle("42").GetBold())
}
