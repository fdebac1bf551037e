// Package datetime holds UTC time, duration and calendar tools. Local time
// is never consulted: the server need not run on the client's machine.
package datetime

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

// now is swapped in tests.
var now = time.Now

// isoLayouts are the accepted ISO 8601 forms, tried in order. Forms without
// an offset are read as UTC.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"20060102",
}

// Namespace returns the datetime module.
func Namespace() *namespace.Namespace {
	zero := func(name, doc string) namespace.Param { return namespace.Opt(name, doc, 0) }
	return namespace.New("datetime").
		Func(namespace.Define("epoch_seconds_now", "Return the current epoch seconds.", epochSecondsNow)).
		Func(namespace.Define("iso_utc_now", "Return the current ISO 8601 UTC string.", isoUTCNow)).
		Func(namespace.Define("epoch_to_iso_utc", "Return the ISO 8601 UTC string for the given epoch seconds.",
			epochToISOUTC, namespace.Arg("epoch_seconds", ""))).
		Func(namespace.Define("iso_utc_to_epoch", "Return the epoch seconds for the given ISO 8601 UTC string.",
			isoUTCToEpoch, namespace.Arg("iso_utc", ""))).
		Func(namespace.Define("is_valid_iso_format", "Check if a string is a valid ISO 8601 format.",
			isValidISOFormat, namespace.Arg("iso_str", ""))).
		Func(namespace.Define("duration_seconds",
			"Return the number of seconds in the given duration. Total duration in seconds as integer. Can be negative.",
			durationSeconds,
			zero("days", "Number of days (default: 0)"),
			zero("seconds", "Number of seconds (default: 0)"),
			zero("minutes", "Number of minutes (default: 0)"),
			zero("hours", "Number of hours (default: 0)"),
			zero("weeks", "Number of weeks (default: 0)"))).
		Func(namespace.Define("format_duration",
			`Format seconds into a human-readable duration string (e.g., "1d 2h 30m 45s"). Can be negative.`,
			formatDuration, namespace.Arg("seconds", "Duration in seconds (can be negative)"))).
		Func(namespace.Define("isleap", "Return True if the year is a leap year, False otherwise.",
			isLeap, namespace.Arg("year", ""))).
		Func(namespace.Define("days_in_month", "Return the number of days in the given month.",
			daysInMonth, namespace.Arg("year", ""), namespace.Arg("month", "")))
}

func epochSecondsNow() int64 { return now().Unix() }

// isoFormat renders t with a +00:00 offset, showing microseconds only when
// they are non-zero.
func isoFormat(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}

func isoUTCNow() string { return isoFormat(now()) }

func epochToISOUTC(epochSeconds int64) (string, error) {
	t := time.Unix(epochSeconds, 0).UTC()
	if y := t.Year(); y < 1 || y > 9999 {
		return "", fmt.Errorf("year %d is out of range", y)
	}
	return isoFormat(t), nil
}

func parseISO(s string) (time.Time, error) {
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO format: %s", s)
}

func isoUTCToEpoch(isoUTC string) (int64, error) {
	t, err := parseISO(isoUTC)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

func isValidISOFormat(isoStr string) bool {
	_, err := parseISO(isoStr)
	return err == nil
}

// maxDurationDays is the largest magnitude, in whole days, a duration may have.
const maxDurationDays = 999999999

func durationSeconds(days, seconds, minutes, hours, weeks int64) (int64, error) {
	total := new(big.Int)
	for _, term := range []struct{ n, unit int64 }{
		{weeks, 7 * 86400}, {days, 86400}, {hours, 3600}, {minutes, 60}, {seconds, 1},
	} {
		total.Add(total, new(big.Int).Mul(big.NewInt(term.n), big.NewInt(term.unit)))
	}

	// Floor division, so -1s is day -1.
	wholeDays := new(big.Int).Div(total, big.NewInt(86400))
	if wholeDays.CmpAbs(big.NewInt(maxDurationDays)) > 0 {
		return 0, fmt.Errorf("days=%s; must have magnitude <= %d", wholeDays, maxDurationDays)
	}
	return total.Int64(), nil
}

func formatDuration(seconds int64) string {
	sign := ""
	mag := uint64(seconds)
	if seconds < 0 {
		sign = "-"
		mag = -mag
	}

	days, rem := mag/86400, mag%86400
	hours, rem := rem/3600, rem%3600
	minutes, secs := rem/60, rem%60

	var parts []string
	for _, p := range []struct {
		n    uint64
		unit string
	}{{days, "d"}, {hours, "h"}, {minutes, "m"}} {
		if p.n != 0 {
			parts = append(parts, strconv.FormatUint(p.n, 10)+p.unit)
		}
	}
	if secs != 0 || len(parts) == 0 {
		parts = append(parts, strconv.FormatUint(secs, 10)+"s")
	}
	return sign + strings.Join(parts, " ")
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, errors.New("bad month number; must be 1-12")
	}
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}
