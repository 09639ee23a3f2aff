package chain

import "time"

// maxExpirations caps the candidate list handed to the synthesizer.
const maxExpirations = 3

// Expirations returns up to three candidate expiration Fridays whose
// days-to-expiry fall inside [minDte, maxDte], measured from today.
//
// Candidates are generated in two passes: weekly cycles (1 to 12 weeks out,
// rolled forward to Friday) followed by monthly cycles (the 15th of the next
// 1 to 3 months rolled forward to Friday, approximating the third-Friday
// listing convention). Weekly candidates therefore rank ahead of monthly
// ones, and the first entry is the primary expiry consumed downstream.
//
// The list may be short or empty for narrow or distant DTE windows; callers
// must tolerate that.
func Expirations(today time.Time, minDte, maxDte int) []time.Time {
	var out []time.Time

	for weeks := 1; weeks <= 12; weeks++ {
		d := nextFriday(today.AddDate(0, 0, weeks*7))
		if dte := DaysUntil(today, d); dte >= minDte && dte <= maxDte {
			out = append(out, d)
			if len(out) == maxExpirations {
				return out
			}
		}
	}

	for months := 1; months <= 3; months++ {
		mid := time.Date(today.Year(), today.Month(), 15, 0, 0, 0, 0, today.Location()).AddDate(0, months, 0)
		d := nextFriday(mid)
		if dte := DaysUntil(today, d); dte >= minDte && dte <= maxDte {
			out = append(out, d)
			if len(out) == maxExpirations {
				return out
			}
		}
	}

	return out
}

// NextFridayOnOrAfter rolls d forward to the first Friday on or after it.
func NextFridayOnOrAfter(d time.Time) time.Time { return nextFriday(d) }

func nextFriday(d time.Time) time.Time {
	for d.Weekday() != time.Friday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// DaysUntil returns the whole number of days from 'from' to 'to', floored.
func DaysUntil(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
