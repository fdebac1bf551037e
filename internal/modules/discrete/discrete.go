// Package discrete holds integer, number theory and combinatorial tools.
// Results that can outgrow int64 are returned as *big.Int.
package discrete

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

// maxOperand bounds factorial and permutation inputs so one call cannot
// stall the server.
const maxOperand = 100000

// Namespace returns the discrete math module.
func Namespace() *namespace.Namespace {
	return namespace.New("discrete").
		Func(namespace.Define("isqrt", "Return the integer part of the square root of the input",
			isqrt, namespace.Arg("x", ""))).
		Func(namespace.Define("factorial", "Find x!. Raise a ValueError if x is negative or non-integral",
			factorial, namespace.Arg("x", ""))).
		Func(namespace.Define("gcd", "Greatest Common Divisor of a and b",
			gcd, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("lcm", "Least Common Multiple of a and b",
			lcm, namespace.Arg("a", ""), namespace.Arg("b", ""))).
		Func(namespace.Define("combination",
			"Number of ways to choose k items from n items without repetition and without order (binomial coefficient)",
			combination, namespace.Arg("n", ""), namespace.Arg("k", ""))).
		Func(namespace.Define("permutation",
			"Number of ways to choose k items from n items without repetition and with order. If k is None, defaults to n.",
			permutation, namespace.Arg("n", ""), namespace.Opt("k", "Items chosen, defaults to n", nil)))
}

func isqrt(x int64) (int64, error) {
	if x < 0 {
		return 0, errors.New("isqrt() argument must be nonnegative")
	}
	return new(big.Int).Sqrt(big.NewInt(x)).Int64(), nil
}

func factorial(x int64) (*big.Int, error) {
	if x < 0 {
		return nil, errors.New("factorial() not defined for negative values")
	}
	if x > maxOperand {
		return nil, fmt.Errorf("factorial() argument should not exceed %d", maxOperand)
	}
	return new(big.Int).MulRange(1, x), nil
}

func gcd(a, b int64) *big.Int {
	x := new(big.Int).Abs(big.NewInt(a))
	y := new(big.Int).Abs(big.NewInt(b))
	return new(big.Int).GCD(nil, nil, x, y)
}

func lcm(a, b int64) *big.Int {
	if a == 0 || b == 0 {
		return new(big.Int)
	}
	prod := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	prod.Abs(prod)
	return prod.Quo(prod, gcd(a, b))
}

func checkNonNegative(n, k int64) error {
	if n < 0 {
		return errors.New("n must be a non-negative integer")
	}
	if k < 0 {
		return errors.New("k must be a non-negative integer")
	}
	return nil
}

func combination(n, k int64) (*big.Int, error) {
	if err := checkNonNegative(n, k); err != nil {
		return nil, err
	}
	if k > n {
		return new(big.Int), nil
	}
	if n-k < k {
		k = n - k
	}
	if k > maxOperand {
		return nil, fmt.Errorf("min(k, n-k) should not exceed %d", maxOperand)
	}
	return new(big.Int).Binomial(n, k), nil
}

func permutation(n int64, k *int64) (*big.Int, error) {
	kk := n
	if k != nil {
		kk = *k
	}
	if err := checkNonNegative(n, kk); err != nil {
		return nil, err
	}
	if kk > n {
		return new(big.Int), nil
	}
	if kk > maxOperand {
		return nil, fmt.Errorf("k should not exceed %d", maxOperand)
	}
	return new(big.Int).MulRange(n-kk+1, n), nil
}
