package util

import "time"

// FromUnixMillis converts an epoch-millisecond timestamp to UTC time.
func FromUnixMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
