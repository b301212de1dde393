package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeAmount(t *testing.T) {
	require.Equal(t, 0.0, safeAmount(math.NaN()))
	require.Equal(t, 0.0, safeAmount(math.Inf(1)))
	require.Equal(t, 0.0, safeAmount(math.Inf(-1)))
	require.Equal(t, 0.0, safeAmount(-500))
	require.Equal(t, 0.0, safeAmount(0))
	require.Equal(t, 1250.5, safeAmount(1250.5))
}

func TestFormatFC(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0 FC"},
		{500, "500 FC"},
		{1200, "1 200 FC"},
		{999999, "999 999 FC"},
		{1234567, "1 234 567 FC"},
		{1200.4, "1 200 FC"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, formatFC(c.in))
	}
}
