// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"math"
	"time"
)

const (
	nanosInADay = float64(24 * time.Hour)
	// leapBugSerial is the serial of the fictitious 1900-02-29 of the 1900
	// date system, days before it are shifted by one.
	leapBugSerial = 60
)

var (
	excel1900Epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	excel1904Epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// wallClock drops the location of t and keeps its wall clock reading, the
// serial date format carries no time zone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// timeToSerial provides a function to convert a time into a serial date
// number of the 1900 or 1904 date system.
func timeToSerial(t time.Time, date1904 bool) float64 {
	t = wallClock(t)
	if date1904 {
		return daysSince(excel1904Epoch, t)
	}
	serial := daysSince(excel1900Epoch, t)
	if serial < leapBugSerial+1 {
		serial--
	}
	return serial
}

func daysSince(epoch, t time.Time) float64 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	whole := (midnight.Unix() - epoch.Unix()) / 86400
	return float64(whole) + float64(t.Sub(midnight))/nanosInADay
}

// serialToTime provides a function to convert a serial date number of the
// 1900 or 1904 date system into a UTC time, rounded to the millisecond.
func serialToTime(serial float64, date1904 bool) time.Time {
	epoch := excel1900Epoch
	if date1904 {
		epoch = excel1904Epoch
	} else if serial < leapBugSerial {
		serial++
	}
	whole := math.Floor(serial)
	frac := serial - whole
	ms := math.Round(frac * nanosInADay / float64(time.Millisecond))
	return epoch.AddDate(0, 0, int(whole)).Add(time.Duration(ms) * time.Millisecond)
}

// isMidnight reports whether the time carries no time of day.
func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
