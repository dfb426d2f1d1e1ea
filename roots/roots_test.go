package roots

import (
	"math"
	"math/cmplx"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagerr"
)

func magnitudes(rs []Root) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Magnitude
	}
	sort.Float64s(out)
	return out
}

func TestSolveDegreeZero(t *testing.T) {
	for _, p := range []coeffs.Polynomial{nil, {1}, {1, 0, 0}} {
		rs, err := Solve(p)
		require.NoError(t, err)
		assert.Empty(t, rs)
	}
}

func TestSolveLinearIsExact(t *testing.T) {
	for _, c := range []float64{0.1, 0.5, 0.95, 1.1, 2, -0.5, -1.5} {
		rs, err := Solve(coeffs.Polynomial{1, -c})
		require.NoError(t, err)
		require.Len(t, rs, 1)
		assert.Equal(t, 1/math.Abs(c), rs[0].Magnitude)
		assert.Equal(t, math.Abs(c) < 1, rs[0].OutsideUnitCircle)
	}
}

func TestSolveUnitRoot(t *testing.T) {
	rs, err := Solve(coeffs.Polynomial{1, -1})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, 1.0, rs[0].Magnitude)
	assert.False(t, rs[0].OutsideUnitCircle)
}

func TestSolveQuadraticRealRoots(t *testing.T) {
	// 1 - 0.5z + 0.06z² = 0.06(z-5)(z-10/3)
	rs, err := Solve(coeffs.Polynomial{1, -0.5, 0.06})
	require.NoError(t, err)
	require.Len(t, rs, 2)

	m := magnitudes(rs)
	assert.InDelta(t, 10.0/3.0, m[0], 1e-9)
	assert.InDelta(t, 5.0, m[1], 1e-9)
	assert.True(t, AllOutside(rs))
}

func TestSolveComplexPair(t *testing.T) {
	// 1 + z² has roots ±i on the unit circle.
	rs, err := Solve(coeffs.Polynomial{1, 0, 1})
	require.NoError(t, err)
	require.Len(t, rs, 2)
	for _, r := range rs {
		assert.InDelta(t, 1.0, r.Magnitude, 1e-12)
		assert.InDelta(t, 0.0, real(r.Value), 1e-12)
		assert.InDelta(t, 1.0, math.Abs(imag(r.Value)), 1e-12)
	}
	assert.Equal(t, 2, CountInside(rs))
	assert.False(t, AllOutside(rs))
}

func TestSolveRepeatedRoots(t *testing.T) {
	// (1 - 0.5z)² = 1 - z + 0.25z²
	rs, err := Solve(coeffs.Polynomial{1, -1, 0.25})
	require.NoError(t, err)
	require.Len(t, rs, 2)
	for _, r := range rs {
		assert.InDelta(t, 2.0, r.Magnitude, 1e-6)
	}
}

func TestSolveRootsSatisfyPolynomial(t *testing.T) {
	p := coeffs.Polynomial{1, -0.5, 0.3, -0.1, 0.05}
	rs, err := Solve(p)
	require.NoError(t, err)
	require.Len(t, rs, 4)
	for _, r := range rs {
		assert.Less(t, cmplx.Abs(p.Eval(r.Value)), 1e-9, "p(%v) should vanish", r.Value)
	}
}

func TestSolveZeroConstantTerm(t *testing.T) {
	rs, err := Solve(coeffs.Polynomial{0, 0, 1, -0.5})
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, []float64{0, 0, 2}, magnitudes(rs))
}

func TestSolveTrimsHighestZeros(t *testing.T) {
	rs, err := Solve(coeffs.Polynomial{1, -0.5, 0})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, 2.0, rs[0].Magnitude)
}

func TestSolveOverflowIsNumerical(t *testing.T) {
	for _, v := range []coeffs.Vector{{1e308, 1e-308}, {1e308, 1e308, 1e-320}} {
		rs, err := Solve(coeffs.Characteristic(v, coeffs.MA))
		require.Error(t, err, "coefficients %v", v)
		assert.True(t, diagerr.IsNumerical(err))
		assert.ErrorIs(t, err, ErrNoConvergence)
		assert.Nil(t, rs)
	}
}

func TestRootBoundaryTolerance(t *testing.T) {
	assert.False(t, NewRoot(complex(1+Tolerance/2, 0)).OutsideUnitCircle)
	assert.False(t, NewRoot(complex(-1, 0)).OutsideUnitCircle)
	assert.True(t, NewRoot(complex(1+10*Tolerance, 0)).OutsideUnitCircle)
}

func TestRootString(t *testing.T) {
	assert.Equal(t, "2.000000 (|z|=2.000000)", NewRoot(2).String())
	assert.Equal(t, "0.000000-1.000000i (|z|=1.000000)", NewRoot(complex(0, -1)).String())
	assert.InDelta(t, -0.5, NewRoot(0.5).Distance(), 1e-15)
}

func TestEmptyRootSetHolds(t *testing.T) {
	assert.True(t, AllOutside(nil))
	assert.Equal(t, 0, CountInside(nil))
}
