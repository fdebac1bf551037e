// Package random holds cryptographically secure generators.
package random

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// source is swapped in tests.
var source io.Reader = rand.Reader

// Namespace returns the random generator module.
func Namespace() *namespace.Namespace {
	return namespace.New("random").
		Func(namespace.Define("generate_uuid",
			"Generate and return a cryptographically secure random UUID string using uuid4",
			generateUUID)).
		Func(namespace.Define("generate_random_number",
			"Generate and return a cryptographically secure random number between min_value and max_value (inclusive). Default min_value and max_value are 0 and 9223372036854775807 respectively.",
			generateRandomNumber,
			namespace.Opt("min_value", "Lower bound (inclusive)", 0),
			namespace.Opt("max_value", "Upper bound (inclusive)", int64(math.MaxInt64)))).
		Func(namespace.Define("generate_random_text",
			"Generate and return a cryptographically secure text string of the specified length, containing letters and digits. Default length is 10.",
			generateRandomText,
			namespace.Opt("length", "The length of the string to generate (must be non-negative)", 10)))
}

func generateUUID() (string, error) {
	id, err := uuid.NewRandomFromReader(source)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func generateRandomNumber(minValue, maxValue int64) (int64, error) {
	if minValue >= maxValue {
		return 0, errors.New("min_value must be < max_value")
	}
	span := new(big.Int).Sub(big.NewInt(maxValue), big.NewInt(minValue))
	span.Add(span, big.NewInt(1))
	n, err := rand.Int(source, span)
	if err != nil {
		return 0, err
	}
	return n.Add(n, big.NewInt(minValue)).Int64(), nil
}

// maxTextLength bounds generate_random_text so one call cannot exhaust memory.
const maxTextLength = 1 << 20

func generateRandomText(length int) (string, error) {
	if length < 0 {
		return "", errors.New("length must be non-negative")
	}
	if length > maxTextLength {
		return "", fmt.Errorf("length must be at most %d", maxTextLength)
	}
	var b strings.Builder
	b.Grow(length)
	limit := big.NewInt(int64(len(alphabet)))
	for range length {
		n, err := rand.Int(source, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}
