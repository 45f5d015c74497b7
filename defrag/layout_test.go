package defrag

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestGenerate_FourByFour(t *testing.T) {
	g, total := Generate(LayoutParams{Width: 4, Height: 4, Fill: 0.5, BadFraction: 0.125}, NewRand(7))

	require.Equal(t, 16, g.Len())
	require.Equal(t, Unmovable, g.At(0))
	require.Equal(t, 1, g.Count(Unmovable))
	require.Equal(t, g.Count(Pending)+2, total)

	data := g.Count(Pending) + g.Count(Writing) + g.Count(Reading)
	require.LessOrEqual(t, data, 8)
	require.GreaterOrEqual(t, data, 6, "at most the boot cluster and one truncated entry are lost")
	require.LessOrEqual(t, g.Count(Bad), 2)
}

func TestGenerate_Empty(t *testing.T) {
	for _, p := range []LayoutParams{
		{Width: 0, Height: 10, Fill: 0.5},
		{Width: 10, Height: 0, Fill: 0.5},
		{Width: -3, Height: 4, Fill: 0.5},
	} {
		g, total := Generate(p, NewRand(1))
		require.Equal(t, 0, g.Len())
		require.Equal(t, 2, total)
	}
}

func TestGenerate_SingleCluster(t *testing.T) {
	g, _ := Generate(LayoutParams{Width: 1, Height: 1, Fill: 1, BadFraction: 1}, NewRand(3))
	require.Equal(t, []ClusterState{Unmovable}, g.Cells())
}

func TestGenerate_Deterministic(t *testing.T) {
	p := LayoutParams{Width: 78, Height: 16, Fill: 0.65, BadFraction: 0.02}
	a, ta := Generate(p, NewRand(42))
	b, tb := Generate(p, NewRand(42))
	require.Equal(t, a.Cells(), b.Cells())
	require.Equal(t, ta, tb)
}

func TestGenerate_NoBadWhenFractionZero(t *testing.T) {
	g, _ := Generate(LayoutParams{Width: 20, Height: 5, Fill: 0.3}, NewRand(9))
	require.Zero(t, g.Count(Bad))
	require.Equal(t, 100, g.Len())
}

func TestFractionOf(t *testing.T) {
	require.Equal(t, 0, fractionOf(100, -1))
	require.Equal(t, 100, fractionOf(100, 2))
	require.Equal(t, 65, fractionOf(100, 0.65))
	require.Equal(t, 1, fractionOf(78, 0.02))
}

func TestProperty_GenerateInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("generated grids keep size, boot cluster and total", prop.ForAll(
		func(w, h, fillPct, badPct int, seed uint64) bool {
			p := LayoutParams{Width: w, Height: h, Fill: float64(fillPct) / 100, BadFraction: float64(badPct) / 100}
			g, total := Generate(p, NewRand(seed+1))
			if g.Len() != w*h {
				return false
			}
			if total != g.Count(Pending)+2 {
				return false
			}
			if g.Len() == 0 {
				return true
			}
			if g.At(0) != Unmovable || g.Count(Unmovable) != 1 {
				return false
			}
			return g.Count(Bad) <= fractionOf(w*h, p.BadFraction) &&
				g.Count(Reading) <= 1 && g.Count(Writing) <= 1
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 20),
		gen.IntRange(0, 100),
		gen.IntRange(0, 30),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
