package server

import "time"

// IsOutsideThresholdPeriod reports whether the reference time is
// further in the past than the given duration expression.
func IsOutsideThresholdPeriod(t time.Time, period string) (bool, error) {
	d, err := time.ParseDuration(period)
	if err != nil {
		return false, err
	}
	return time.Since(t) > d, nil
}
