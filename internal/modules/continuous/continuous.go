// Package continuous holds trigonometric, hyperbolic, exponential,
// logarithmic, geometric and special functions.
package continuous

import (
	"errors"
	"math"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

var (
	errDomain = errors.New("math domain error")
	errRange  = errors.New("math range error")
)

// Namespace returns the continuous math module.
func Namespace() *namespace.Namespace {
	x := namespace.Arg("x", "")
	return namespace.New("continuous").
		Builtin(namespace.Define("sin", "Return the sine of x (measured in radians)", math.Sin, x)).
		Builtin(namespace.Define("cos", "Return the cosine of x (measured in radians)", math.Cos, x)).
		Builtin(namespace.Define("tan", "Return the tangent of x (measured in radians)", math.Tan, x)).
		Func(namespace.Define("asin",
			"Return the arc sine (measured in radians) of x. Result is between -pi/2 and pi/2",
			domain(math.Asin, func(v float64) bool { return v >= -1 && v <= 1 }), x)).
		Func(namespace.Define("acos",
			"Return the arc cosine (measured in radians) of x. Result is between 0 and pi",
			domain(math.Acos, func(v float64) bool { return v >= -1 && v <= 1 }), x)).
		Builtin(namespace.Define("atan",
			"Return the arc tangent (measured in radians) of x. Result is between -pi/2 and pi/2", math.Atan, x)).
		Builtin(namespace.Define("atan2",
			"Return the arc tangent (measured in radians) of y/x. Unlike atan(y/x), the signs of both x and y are considered",
			math.Atan2, namespace.Arg("y", ""), x)).
		Func(namespace.Define("sinh", "Return the hyperbolic sine of x", finite(math.Sinh), x)).
		Func(namespace.Define("cosh", "Return the hyperbolic cosine of x", finite(math.Cosh), x)).
		Builtin(namespace.Define("tanh", "Return the hyperbolic tangent of x", math.Tanh, x)).
		Builtin(namespace.Define("asinh", "Return the inverse hyperbolic sine of x", math.Asinh, x)).
		Func(namespace.Define("acosh", "Return the inverse hyperbolic cosine of x",
			domain(math.Acosh, func(v float64) bool { return v >= 1 }), x)).
		Func(namespace.Define("atanh", "Return the inverse hyperbolic tangent of x",
			domain(math.Atanh, func(v float64) bool { return v > -1 && v < 1 }), x)).
		Func(namespace.Define("exp", "Return e raised to the power of x", finite(math.Exp), x)).
		Func(namespace.Define("expm1",
			"Return exp(x)-1. This function avoids the loss of precision involved in the direct evaluation of exp(x)-1 for small x",
			finite(math.Expm1), x)).
		Func(namespace.Define("log",
			"Return the logarithm of x to the given base. If the base is not specified, returns the natural logarithm (base e) of x",
			logBase, x, namespace.Opt("base", "Logarithm base", math.E))).
		Func(namespace.Define("log10", "Return the base 10 logarithm of x", domain(math.Log10, positive), x)).
		Func(namespace.Define("log2", "Return the base 2 logarithm of x", domain(math.Log2, positive), x)).
		Func(namespace.Define("log1p",
			"Return the natural logarithm of 1+x (base e). The result is computed in a way which is accurate for x near zero",
			domain(math.Log1p, func(v float64) bool { return v > -1 }), x)).
		Func(namespace.Define("degrees", "Convert angle x from radians to degrees", degrees, x)).
		Func(namespace.Define("radians", "Convert angle x from degrees to radians", radians, x)).
		Builtin(namespace.Define("hypot",
			"Return the 2-dimensional euclidean distance, sqrt(x*x + y*y). This is the length of the vector from the origin to point (x, y)",
			math.Hypot, x, namespace.Arg("y", ""))).
		Func(namespace.Define("multidimensional_hypot",
			"Return the multidimensional euclidean distance. This is the length of the vector from the origin to point (x, y, z, ...)",
			hypotN, namespace.Arg("coordinates", ""))).
		Func(namespace.Define("dist",
			"Return the Euclidean distance between two points p and q. Both inputs must have the same dimension.",
			dist, namespace.Arg("p", "Coordinates of the first point"), namespace.Arg("q", "Coordinates of the second point"))).
		Func(namespace.Define("gamma", "Gamma function at x", gamma, x)).
		Func(namespace.Define("lgamma", "Natural logarithm of absolute value of Gamma function at x", lgamma, x)).
		Builtin(namespace.Define("erf", "Error function at x", math.Erf, x)).
		Builtin(namespace.Define("erfc", "Complementary error function at x", math.Erfc, x))
}

func positive(v float64) bool { return v > 0 }

// domain rejects inputs outside the function's domain. NaN passes through.
func domain(f func(float64) float64, ok func(float64) bool) func(float64) (float64, error) {
	return func(v float64) (float64, error) {
		if !math.IsNaN(v) && !ok(v) {
			return 0, errDomain
		}
		return f(v), nil
	}
}

// finite reports overflow of a finite input as a range error.
func finite(f func(float64) float64) func(float64) (float64, error) {
	return func(v float64) (float64, error) {
		r := f(v)
		if math.IsInf(r, 0) && !math.IsInf(v, 0) {
			return 0, errRange
		}
		return r, nil
	}
}

func logBase(x, base float64) (float64, error) {
	if x <= 0 || base <= 0 {
		return 0, errDomain
	}
	if base == 1 {
		return 0, errors.New("float division by zero")
	}
	if base == math.E {
		return math.Log(x), nil
	}
	return math.Log(x) / math.Log(base), nil
}

func degrees(x float64) float64 { return x * (180 / math.Pi) }

func radians(x float64) float64 { return x * (math.Pi / 180) }

func hypotN(coordinates []float64) float64 {
	h := 0.0
	for _, c := range coordinates {
		h = math.Hypot(h, c)
	}
	return h
}

func dist(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, errors.New("both points must have the same number of dimensions")
	}
	h := 0.0
	for i := range p {
		h = math.Hypot(h, p[i]-q[i])
	}
	return h, nil
}

func nonPositiveInteger(x float64) bool {
	return x <= 0 && x == math.Trunc(x)
}

func gamma(x float64) (float64, error) {
	if nonPositiveInteger(x) || math.IsInf(x, -1) {
		return 0, errDomain
	}
	r := math.Gamma(x)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) {
		return 0, errRange
	}
	return r, nil
}

func lgamma(x float64) (float64, error) {
	if nonPositiveInteger(x) {
		return 0, errDomain
	}
	r, _ := math.Lgamma(x)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) {
		return 0, errRange
	}
	return r, nil
}
