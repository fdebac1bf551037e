// Package arithmetic holds the elementary, rounding and floating point tools.
package arithmetic

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

var (
	errDivisionByZero = errors.New("float division by zero")
	errDomain         = errors.New("math domain error")
	errRange          = errors.New("math range error")
	errEmpty          = errors.New("array is an empty sequence")
)

// Namespace returns the arithmetic module.
func Namespace() *namespace.Namespace {
	return namespace.New("arithmetic").
		Func(namespace.Define("add",
			"Return the sum of all the elements in the array of numbers. When the array is empty, return 0.",
			add, namespace.Arg("array", "Numbers to sum"))).
		Func(namespace.Define("subtract", "Return the difference of a and b",
			subtract, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("multiply",
			"Return the product of all the elements in the array of numbers. When the array is empty, return 1.",
			multiply, namespace.Arg("array", "Numbers to multiply"))).
		Func(namespace.Define("divide", "Return the quotient of a and b",
			divide, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("modulo", "Floor-division modulo: Return the remainder of a divided by b",
			modulo, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("floor_divide", "Return the floor division of a by b",
			floorDivide, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("pow", "Return a raised to the power of b",
			pow, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("minimum", "Return the smallest number in the array",
			minimum, namespace.Arg("array", ""))).
		Func(namespace.Define("maximum", "Return the largest number in the array",
			maximum, namespace.Arg("array", ""))).
		Func(namespace.Define("sign", "Return the sign of x (-1, 0, or 1)",
			sign, namespace.Arg("x", ""))).
		Func(namespace.Define("clamp", "Clamp x to be between min_val and max_val",
			clamp, namespace.Arg("x", ""), namespace.Arg("min_val", ""), namespace.Arg("max_val", ""))).
		Func(namespace.Define("round_to", "Round x to n decimal places (default n is 0)",
			roundTo, namespace.Arg("x", ""), namespace.Opt("n", "Decimal places", 0))).
		Func(namespace.Define("absolute", "Return the absolute value of the float x",
			absolute, namespace.Arg("x", ""))).
		Func(namespace.Define("sqrt", "Return the square root of x",
			sqrt, namespace.Arg("x", ""))).
		Func(namespace.Define("ceil", "Return the ceiling of x as an integer. This is the smallest integer >= x",
			ceil, namespace.Arg("x", ""))).
		Func(namespace.Define("floor", "Return the floor of x as an integer. This is the largest integer <= x",
			floor, namespace.Arg("x", ""))).
		Func(namespace.Define("trunc", "Truncate the real x to the nearest integer toward 0",
			trunc, namespace.Arg("x", ""))).
		Builtin(namespace.Define("copysign", "Return a float with the magnitude (absolute value) of x but the sign of y",
			math.Copysign, namespace.Arg("x", ""), namespace.Arg("y", ""))).
		Func(namespace.Define("frexp",
			"Return the mantissa and exponent of x, as pair (m, e). m is a float and e is an int, such that x = m * 2.**e",
			frexp, namespace.Arg("x", ""))).
		Func(namespace.Define("ldexp", "Return x * (2**i). This is essentially the inverse of frexp()",
			ldexp, namespace.Arg("x", ""), namespace.Arg("i", ""))).
		Func(namespace.Define("modf",
			"Return the fractional and integer parts of x. Both results carry the sign of x and are floats",
			modf, namespace.Arg("x", "")))
}

// Sum returns the compensated sum of xs.
func Sum(xs []float64) float64 {
	var sum, c float64
	for _, x := range xs {
		t := sum + x
		if math.Abs(sum) >= math.Abs(x) {
			c += (sum - t) + x
		} else {
			c += (x - t) + sum
		}
		sum = t
	}
	if math.IsInf(sum, 0) || math.IsNaN(sum) {
		return sum
	}
	return sum + c
}

func add(array []float64) float64 { return Sum(array) }

func subtract(a, b float64) float64 { return a - b }

func multiply(array []float64) float64 {
	p := 1.0
	for _, x := range array {
		p *= x
	}
	return p
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivisionByZero
	}
	return a / b, nil
}

// floorMod follows floored division: the remainder takes the sign of b.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 {
		if (b < 0) != (m < 0) {
			m += b
		}
	} else {
		m = math.Copysign(0, b)
	}
	return m
}

func modulo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.New("float modulo by zero")
	}
	return floorMod(a, b), nil
}

func floorDivide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.New("float floor division by zero")
	}
	m := math.Mod(a, b)
	div := (a - m) / b
	if m != 0 && (b < 0) != (m < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, a/b), nil
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q += 1
	}
	return q, nil
}

func pow(a, b float64) (float64, error) {
	if a == 0 && b < 0 {
		return 0, errors.New("0.0 cannot be raised to a negative power")
	}
	r := math.Pow(a, b)
	if math.IsNaN(r) && !math.IsNaN(a) && !math.IsNaN(b) {
		return 0, errors.New("negative number cannot be raised to a fractional power")
	}
	if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return 0, errRange
	}
	return r, nil
}

func minimum(array []float64) (float64, error) {
	if len(array) == 0 {
		return 0, errEmpty
	}
	m := array[0]
	for _, x := range array[1:] {
		if x < m {
			m = x
		}
	}
	return m, nil
}

func maximum(array []float64) (float64, error) {
	if len(array) == 0 {
		return 0, errEmpty
	}
	m := array[0]
	for _, x := range array[1:] {
		if x > m {
			m = x
		}
	}
	return m, nil
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func clamp(x, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(x, maxVal))
}

// roundTo rounds half to even on the decimal value of x.
func roundTo(x float64, n int) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) || n > 323 {
		return x
	}
	if n < 0 {
		if n < -308 {
			return math.Copysign(0, x)
		}
		p := math.Pow10(-n)
		return math.RoundToEven(x/p) * p
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', n, 64), 64)
	if err != nil {
		return x
	}
	return r
}

func absolute(x float64) float64 { return math.Abs(x) }

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, errDomain
	}
	return math.Sqrt(x), nil
}

func toInteger(x float64) (*big.Int, error) {
	if math.IsNaN(x) {
		return nil, errors.New("cannot convert float NaN to integer")
	}
	if math.IsInf(x, 0) {
		return nil, errors.New("cannot convert float infinity to integer")
	}
	i, _ := new(big.Float).SetFloat64(x).Int(nil)
	return i, nil
}

func ceil(x float64) (*big.Int, error)  { return toInteger(math.Ceil(x)) }
func floor(x float64) (*big.Int, error) { return toInteger(math.Floor(x)) }
func trunc(x float64) (*big.Int, error) { return toInteger(math.Trunc(x)) }

func frexp(x float64) []any {
	m, e := math.Frexp(x)
	return []any{m, e}
}

func ldexp(x float64, i int) (float64, error) {
	r := math.Ldexp(x, i)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) {
		return 0, errRange
	}
	return r, nil
}

func modf(x float64) []float64 {
	if math.IsInf(x, 0) {
		return []float64{math.Copysign(0, x), x}
	}
	ip, frac := math.Modf(x)
	return []float64{frac, ip}
}
