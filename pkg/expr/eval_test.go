package expr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/philipparndt/gosurf/pkg/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalPoint(t *testing.T) {
	tests := []struct {
		src     string
		x, y, z float64
		want    float64
	}{
		{"x*x+y*y+z*z-4", 2, 0, 0, 0},
		{"x-100", 4, 0, 0, -96},
		{"2^3^2", 0, 0, 0, 512},
		{"-x^2", 3, 0, 0, -9},
		{"(-x)^3", 2, 0, 0, -8},
		{"pow(x, 0.5)", 9, 0, 0, 3},
		{"min(x, y, z)", 3, -1, 2, -1},
		{"max(x, y, z)", 3, -1, 2, 3},
		{"abs(y) + sqrt(z)", 0, -2, 16, 6},
		{"x / y", 1, 4, 0, 0.25},
		{"exp(log(x))", 5, 0, 0, 5},
		{"atan(1) * 4", 0, 0, 0, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := Eval(MustParse(tt.src), tt.x, tt.y, tt.z)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func cube(h float64) Bindings {
	i := interval.New(-h, h)
	return Bind(i, i, i)
}

func TestEvalIntervalScenarioPlane(t *testing.T) {
	got := EvalInterval(MustParse("x-100"), cube(4))
	assert.Equal(t, interval.New(-104, -96), got)
	assert.False(t, got.ContainsZero())
}

func TestEvalIntervalSphere(t *testing.T) {
	got := EvalInterval(MustParse("x*x+y*y+z*z-4"), cube(4))
	assert.Equal(t, interval.New(-52, 44), got, "x*x over [-4,4] is evaluated as a product, not a square")

	got = EvalInterval(MustParse("x^2+y^2+z^2-4"), cube(4))
	assert.Equal(t, interval.New(-4, 44), got, "even powers of straddling intervals start at 0")
}

func TestEvalIntervalUndefined(t *testing.T) {
	env := Bind(interval.New(-3, -1), interval.Point(0), interval.Point(0))
	assert.True(t, EvalInterval(MustParse("sqrt(x)"), env).IsUndefined())
	assert.True(t, EvalInterval(MustParse("sqrt(x) + 1"), env).IsUndefined())
	assert.True(t, EvalInterval(MustParse("1 / y"), env).IsUndefined())
	assert.True(t, EvalInterval(MustParse("1 / (x + 2)"), env).IsEntire())
}

func TestEvalIntervalTrigPeriod(t *testing.T) {
	got := EvalInterval(MustParse("sin(x)"), cube(10))
	assert.Equal(t, interval.New(-1, 1), got)
}

var containmentExprs = []string{
	"x*x+y*y+z*z-4",
	"x^2+y^2+z^2-4",
	"(sqrt(x^2+y^2)-2)^2 + z^2 - 0.25",
	"x - 100",
	"sin(x)*cos(y) + z",
	"x*y*z - 0.5",
	"1/(x+y) - z",
	"abs(x) + abs(y) + abs(z) - 1",
	"min(x, y) - max(y, z)",
	"exp(x) - y^3",
	"log(x*x + 1) - z",
	"sqrt(x) - y",
	"pow(abs(x), 1.5) + pow(y, 2) - 1",
	"tan(x/4) - y",
	"atan(x) * -y + z^-2",
	"(x+1)^4 - (y-1)^5",
	"x^y",
}

// TestEvalIntervalContainment samples random points inside random boxes
// and checks each concrete value lies inside the interval bound.
func TestEvalIntervalContainment(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, src := range containmentExprs {
		n := MustParse(src)
		t.Run(src, func(t *testing.T) {
			for b := 0; b < 300; b++ {
				var env Bindings
				for axis := range env {
					c := (r.Float64()*2 - 1) * 4
					h := r.Float64() * 2
					env[axis] = interval.New(c-h, c+h)
				}
				bound := EvalInterval(n, env)
				for s := 0; s < 30; s++ {
					var p [3]float64
					for axis := range p {
						p[axis] = env[axis].Lo + r.Float64()*(env[axis].Hi-env[axis].Lo)
					}
					v := Eval(n, p[0], p[1], p[2])
					if math.IsNaN(v) || math.IsInf(v, 0) {
						continue
					}
					require.True(t, bound.Contains(v),
						"%s over %v = %v misses f(%v) = %g", src, env, bound, p, v)
				}
			}
		})
	}
}
