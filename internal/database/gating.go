package database

import "time"

// NextAvailable returns the earliest moment a new post is allowed after a
// post published at lastPostedAt, given the server's minimum gap in minutes.
func NextAvailable(lastPostedAt time.Time, gapMinutes int) time.Time {
	return lastPostedAt.Add(time.Duration(gapMinutes) * time.Minute)
}

// RemainingWait reports whether a post is allowed now and, if not, the number
// of whole minutes left until the gap since lastPostedAt has elapsed.
func RemainingWait(lastPostedAt time.Time, gapMinutes int, now time.Time) (bool, int) {
	gap := time.Duration(gapMinutes) * time.Minute
	elapsed := now.Sub(lastPostedAt)
	if elapsed >= gap {
		return true, 0
	}
	return false, int((gap - elapsed).Minutes())
}

// FindConflict checks a proposed schedule time against existing post times
// under the minimum-gap rule. Times closer than the gap in either direction
// conflict. On conflict it returns the first conflicting slot's next free
// time and true.
func FindConflict(proposed time.Time, gapMinutes int, existing []time.Time) (time.Time, bool) {
	gap := time.Duration(gapMinutes) * time.Minute
	for _, t := range existing {
		diff := proposed.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if diff < gap {
			return t.Add(gap), true
		}
	}
	return time.Time{}, false
}
