// Package stats holds descriptive statistics over arrays of numbers.
package stats

import (
	"errors"
	"math"
	"slices"
	"sort"

	"github.com/bobmcallan/minimcp-servers/internal/modules/arithmetic"
	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

// Namespace returns the statistics module.
func Namespace() *namespace.Namespace {
	data := namespace.Arg("data", "Array of numbers")
	x := namespace.Arg("x", "First input")
	y := namespace.Arg("y", "Second input")
	xbar := namespace.Opt("xbar", "Mean of data, computed when absent", nil)
	return namespace.New("stats").
		Func(namespace.Define("mean",
			"Convert data to floats and compute the arithmetic mean. It always returns a float. If the input dataset is empty, it raises a StatisticsError.",
			mean, data)).
		Func(namespace.Define("geometric_mean",
			"Convert data to floats and compute the geometric mean. Raises a StatisticsError if the input dataset is empty, if it contains a zero, or if it contains a negative value.",
			geometricMean, data)).
		Func(namespace.Define("harmonic_mean",
			"Return the harmonic mean of data. The harmonic mean is the reciprocal of the arithmetic mean of the reciprocals of the data. It can be used for averaging ratios or rates.",
			harmonicMean, data, namespace.Opt("weights", "Optional weight per data point", nil))).
		Func(namespace.Define("median",
			"Return the median (middle value) of numeric data. When the number of data points is even, the median is interpolated by taking the average of the two middle values.",
			median, data)).
		Func(namespace.Define("median_low",
			"Return the low median of numeric data. When the number of data points is even, the smaller of the two middle values is returned.",
			medianLow, data)).
		Func(namespace.Define("median_high",
			"Return the high median of data. When the number of data points is even, the larger of the two middle values is returned.",
			medianHigh, data)).
		Func(namespace.Define("median_grouped",
			"Return the 50th percentile (median) of grouped continuous data values. Optional argument interval represents the class interval, and defaults to 1.",
			medianGrouped, data, namespace.Opt("interval", "Class interval", 1.0))).
		Func(namespace.Define("mode",
			"Return the mode of the data. This is the value that appears most frequently in the data.",
			mode, data)).
		Func(namespace.Define("multimode",
			"Return a list of the most frequently occurring values. Will return more than one result if there are multiple modes or an empty list if data is empty.",
			multimode, data)).
		Func(namespace.Define("quantiles",
			"Return the quantiles of the data. This is the values that divide the data into equal parts.",
			quantiles, data)).
		Func(namespace.Define("pvariance",
			"Return the population variance of the data. This is the variance of the population.",
			pvariance, data)).
		Func(namespace.Define("variance",
			"Return the sample variance of data. data should be an array of real-valued numbers, with at least two values. The optional argument xbar, if given, should be the mean of the data.",
			variance, data, xbar)).
		Func(namespace.Define("pstdev",
			"Return the population standard deviation of the data. This is the standard deviation of the population.",
			pstdev, data)).
		Func(namespace.Define("stdev",
			"Return the square root of the sample variance. The optional argument xbar, if given, should be the mean of the data.",
			stdev, data, xbar)).
		Func(namespace.Define("covariance",
			"Return the sample covariance of two inputs x and y. Covariance is a measure of the joint variability of two inputs.",
			covariance, x, y)).
		Func(namespace.Define("correlation",
			"Return the Pearson's correlation coefficient for two inputs. It takes values between -1 and +1.",
			correlation, x, y)).
		Func(namespace.Define("linear_regression",
			"Slope and intercept for simple linear regression estimated using ordinary least squares. The parameters are returned as an array [slope, intercept]",
			linearRegression, x, y))
}

func sorted(data []float64) []float64 {
	s := slices.Clone(data)
	slices.Sort(s)
	return s
}

func mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, errors.New("mean requires at least one data point")
	}
	return arithmetic.Sum(data) / float64(len(data)), nil
}

func geometricMean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, errors.New("geometric_mean requires at least one data point")
	}
	identical := true
	logs := make([]float64, len(data))
	for i, x := range data {
		if x <= 0 {
			return 0, errors.New("geometric mean requires a non-empty dataset containing positive numbers")
		}
		if x != data[0] {
			identical = false
		}
		logs[i] = math.Log(x)
	}
	if identical {
		return data[0], nil
	}
	return math.Exp(arithmetic.Sum(logs) / float64(len(data))), nil
}

func harmonicMean(data, weights []float64) (float64, error) {
	if len(data) == 0 {
		return 0, errors.New("harmonic_mean requires at least one data point")
	}
	if weights == nil {
		weights = make([]float64, len(data))
		for i := range weights {
			weights[i] = 1
		}
	} else if len(weights) != len(data) {
		return 0, errors.New("number of weights does not match data size")
	}

	// Values are checked in order; a zero ends the scan with a mean of 0.
	recips := make([]float64, len(data))
	for i, x := range data {
		if x < 0 {
			return 0, errors.New("harmonic mean does not support negative values")
		}
		if x == 0 {
			return 0, nil
		}
		if weights[i] < 0 {
			return 0, errors.New("weights must be non-negative")
		}
		recips[i] = weights[i] / x
	}
	total := arithmetic.Sum(weights)
	if total <= 0 {
		return 0, errors.New("weighted sum must be positive")
	}
	return total / arithmetic.Sum(recips), nil
}

var errNoMedian = errors.New("no median for empty data")

func median(data []float64) (float64, error) {
	n := len(data)
	if n == 0 {
		return 0, errNoMedian
	}
	s := sorted(data)
	if n%2 == 1 {
		return s[n/2], nil
	}
	return (s[n/2-1] + s[n/2]) / 2, nil
}

func medianLow(data []float64) (float64, error) {
	n := len(data)
	if n == 0 {
		return 0, errNoMedian
	}
	s := sorted(data)
	if n%2 == 1 {
		return s[n/2], nil
	}
	return s[n/2-1], nil
}

func medianHigh(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, errNoMedian
	}
	return sorted(data)[len(data)/2], nil
}

// medianGrouped interpolates within the class holding the middle value.
func medianGrouped(data []float64, interval float64) (float64, error) {
	n := len(data)
	if n == 0 {
		return 0, errNoMedian
	}
	s := sorted(data)
	x := s[n/2]
	i := sort.SearchFloat64s(s, x)
	j := i + sort.Search(n-i, func(k int) bool { return s[i+k] > x })

	lower := x - interval/2
	return lower + interval*(float64(n)/2-float64(i))/float64(j-i), nil
}

// counts returns distinct values in first-seen order with their frequencies.
func counts(data []float64) ([]float64, map[float64]int) {
	freq := make(map[float64]int, len(data))
	var order []float64
	for _, x := range data {
		if _, ok := freq[x]; !ok {
			order = append(order, x)
		}
		freq[x]++
	}
	return order, freq
}

func mode(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, errors.New("no mode for empty data")
	}
	order, freq := counts(data)
	best := order[0]
	for _, v := range order[1:] {
		if freq[v] > freq[best] {
			best = v
		}
	}
	return best, nil
}

func multimode(data []float64) []float64 {
	order, freq := counts(data)
	top := 0
	for _, c := range freq {
		top = max(top, c)
	}
	modes := []float64{}
	for _, v := range order {
		if freq[v] == top {
			modes = append(modes, v)
		}
	}
	return modes
}

// quantiles returns the three cut points dividing data into quartiles using
// the exclusive method.
func quantiles(data []float64) ([]float64, error) {
	const n = 4
	ld := len(data)
	if ld < 1 {
		return nil, errors.New("must have at least one data point")
	}
	s := sorted(data)
	if ld == 1 {
		return []float64{s[0], s[0], s[0]}, nil
	}
	m := ld + 1
	result := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		j := i * m / n
		j = min(max(j, 1), ld-1)
		delta := i*m - j*n
		result = append(result, (s[j-1]*float64(n-delta)+s[j]*float64(delta))/n)
	}
	return result, nil
}

// sumSquares returns the sum of squared deviations from c. When c is the
// computed mean the rounding error of the mean is corrected for.
func sumSquares(data []float64, c float64, corrected bool) float64 {
	devs := make([]float64, len(data))
	sq := make([]float64, len(data))
	for i, x := range data {
		devs[i] = x - c
		sq[i] = devs[i] * devs[i]
	}
	ss := arithmetic.Sum(sq)
	if corrected {
		d := arithmetic.Sum(devs)
		ss -= d * d / float64(len(data))
	}
	return math.Max(ss, 0)
}

func pvariance(data []float64) (float64, error) {
	n := len(data)
	if n < 1 {
		return 0, errors.New("pvariance requires at least one data point")
	}
	c, _ := mean(data)
	return sumSquares(data, c, true) / float64(n), nil
}

func variance(data []float64, xbar *float64) (float64, error) {
	n := len(data)
	if n < 2 {
		return 0, errors.New("variance requires at least two data points")
	}
	if xbar != nil {
		return sumSquares(data, *xbar, false) / float64(n-1), nil
	}
	c, _ := mean(data)
	return sumSquares(data, c, true) / float64(n-1), nil
}

func pstdev(data []float64) (float64, error) {
	v, err := pvariance(data)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

func stdev(data []float64, xbar *float64) (float64, error) {
	v, err := variance(data, xbar)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// centered returns the sums of products of deviations from the means.
func centered(x, y []float64, name string) (sxy, sxx, syy, xbar, ybar float64, err error) {
	n := len(x)
	if len(y) != n {
		return 0, 0, 0, 0, 0, errors.New(name + " requires that both inputs have same number of data points")
	}
	if n < 2 {
		return 0, 0, 0, 0, 0, errors.New(name + " requires at least two data points")
	}
	xbar = arithmetic.Sum(x) / float64(n)
	ybar = arithmetic.Sum(y) / float64(n)
	pxy := make([]float64, n)
	pxx := make([]float64, n)
	pyy := make([]float64, n)
	for i := range x {
		dx, dy := x[i]-xbar, y[i]-ybar
		pxy[i], pxx[i], pyy[i] = dx*dy, dx*dx, dy*dy
	}
	return arithmetic.Sum(pxy), arithmetic.Sum(pxx), arithmetic.Sum(pyy), xbar, ybar, nil
}

func covariance(x, y []float64) (float64, error) {
	sxy, _, _, _, _, err := centered(x, y, "covariance")
	if err != nil {
		return 0, err
	}
	return sxy / float64(len(x)-1), nil
}

func correlation(x, y []float64) (float64, error) {
	sxy, sxx, syy, _, _, err := centered(x, y, "correlation")
	if err != nil {
		return 0, err
	}
	if sxx == 0 || syy == 0 {
		return 0, errors.New("at least one of the inputs is constant")
	}
	return sxy / math.Sqrt(sxx*syy), nil
}

func linearRegression(x, y []float64) ([]float64, error) {
	sxy, sxx, _, xbar, ybar, err := centered(x, y, "linear regression")
	if err != nil {
		return nil, err
	}
	if sxx == 0 {
		return nil, errors.New("x is constant")
	}
	slope := sxy / sxx
	return []float64{slope, ybar - slope*xbar}, nil
}
