package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Description(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		want string
	}{
		{
			name: "all set",
			v:    Vector{Grid: Some(10), Seed: Some(1564.0), Rho: Some(0.5), MaxClusters: Some(-1)},
			want: "(g=10, s=1564, r=0.5, m=-1)",
		},
		{
			name: "all unset",
			v:    Vector{},
			want: "(g=default, s=default, r=default, m=default)",
		},
		{
			name: "fractional seed and tiny rho",
			v:    Vector{Grid: Some(0), Seed: Some(0.1), Rho: Some(0.00001), MaxClusters: Unset[int]()},
			want: "(g=0, s=0.1, r=0.00001, m=default)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Description())
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestVector_FlagsOmitSentinels(t *testing.T) {
	v := Vector{Grid: Unset[int](), Seed: Some(7.0), Rho: Unset[float64](), MaxClusters: Unset[int]()}
	assert.Equal(t, []string{"-s", "7"}, v.Flags())

	assert.Empty(t, Vector{}.Flags())
}

func TestVector_FlagsKeepExplicitDefaults(t *testing.T) {
	// 20, 1564 and 0.4 are the program's own defaults; explicit values must
	// still be passed.
	v := Vector{Grid: Some(20), Seed: Some(1564.0), Rho: Some(0.4), MaxClusters: Some(-1)}
	assert.Equal(t, []string{"-g", "20", "-s", "1564", "-r", "0.4", "-m", "-1"}, v.Flags())
}

func TestVector_FlagsBoundaryValues(t *testing.T) {
	assert.Equal(t, []string{"-r", "0"}, Vector{Rho: Some(0.0)}.Flags())
	assert.Equal(t, []string{"-r", "1"}, Vector{Rho: Some(1.0)}.Flags())
	assert.Equal(t, []string{"-g", "0", "-m", "0"}, Vector{Grid: Some(0), MaxClusters: Some(0)}.Flags())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1000000", FormatNumber(1000000))
	assert.Equal(t, "1.5", FormatNumber(1.5))
	assert.Equal(t, "0.99999", FormatNumber(0.99999))
	assert.Equal(t, "0", FormatNumber(0))
}
