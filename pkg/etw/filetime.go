package etw

import (
	"math"
	"time"
)

// unixEpochFiletime is 1970-01-01T00:00:00Z expressed as a FILETIME (100ns
// intervals since 1601-01-01T00:00:00Z).
const unixEpochFiletime int64 = 0x019db1ded53e8000

const ticksPerSecond = 10000000

// FiletimeFromTime32 converts a 32-bit time_t to a FILETIME.
func FiletimeFromTime32(t int32) int64 {
	return int64(t)*ticksPerSecond + unixEpochFiletime
}

// FiletimeFromTime64 converts a 64-bit time_t to a FILETIME. Values outside of
// the FILETIME range saturate.
func FiletimeFromTime64(t int64) int64 {
	const maxSeconds = (math.MaxInt64 - unixEpochFiletime) / ticksPerSecond
	const minSeconds = -unixEpochFiletime / ticksPerSecond
	switch {
	case t >= maxSeconds:
		return math.MaxInt64
	case t <= minSeconds:
		return 0
	}
	return t*ticksPerSecond + unixEpochFiletime
}

// FiletimeFromDurationAfter1970 converts a non-negative offset from the Unix
// epoch to a FILETIME, saturating at math.MaxInt64.
func FiletimeFromDurationAfter1970(d time.Duration) int64 {
	ticks := int64(d / 100)
	if ticks > math.MaxInt64-unixEpochFiletime {
		return math.MaxInt64
	}
	return unixEpochFiletime + ticks
}

// FiletimeFromDurationBefore1970 converts a non-negative offset before the Unix
// epoch to a FILETIME, saturating at 0.
func FiletimeFromDurationBefore1970(d time.Duration) int64 {
	ticks := int64(d / 100)
	if ticks > unixEpochFiletime {
		return 0
	}
	return unixEpochFiletime - ticks
}

// FiletimeFromTime converts a calendar time to a FILETIME. Times before 1601
// saturate at 0.
func FiletimeFromTime(t time.Time) int64 {
	ft := FiletimeFromTime64(t.Unix())
	if ft == 0 || ft == math.MaxInt64 {
		return ft
	}
	return ft + int64(t.Nanosecond()/100)
}
