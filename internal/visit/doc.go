// Package visit counts visitor returns at day granularity.
//
// A Tracker reads the count and the last visit from the session, falling back to
// the advisory visits and last_visit cookies. A return after one or more whole days
// increments the count. A return within the same day resets it to 1 and leaves the
// last visit untouched.
//
// Timestamps are written as RFC 3339 with an explicit offset. Cookies written by
// older releases ("2016-09-01 12:00:00.123456") are still accepted.
package visit
