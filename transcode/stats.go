package transcode

import "time"

// BitrateStatistics tracks per-second throughput for one output track,
// adapted from the teacher's stream.BitrateStatistics (same second-bucket
// approach, renamed fields, no mutex of its own — the owning Stream guards
// every instance with its statsMu: the encode worker updates it under that
// lock and the diagnostics accessors read it under the same lock).
type BitrateStatistics struct {
	totalBytes     int64
	elapsedSeconds int
	currentSecond  int

	previousSecondBytes int
	latestSecondBytes   int
}

func newBitrateStatistics() *BitrateStatistics {
	return &BitrateStatistics{currentSecond: -1}
}

func (b *BitrateStatistics) observe(size int) {
	b.totalBytes += int64(size)

	second := time.Now().Second()
	if b.currentSecond == -1 {
		b.currentSecond = second
	}

	if second != b.currentSecond {
		b.elapsedSeconds++
		b.currentSecond = second
		b.previousSecondBytes = b.latestSecondBytes
		b.latestSecondBytes = 0
	}

	b.latestSecondBytes += size
}

// Average returns the bytes observed before the current wall-clock second
// divided by the number of second changes seen between observations (a
// gap with no observations counts as one change). Until the first change
// it returns the bytes observed in the current second.
func (b *BitrateStatistics) Average() int {
	if b.elapsedSeconds < 1 {
		return b.latestSecondBytes
	}
	return int((b.totalBytes - int64(b.latestSecondBytes)) / int64(b.elapsedSeconds))
}

// Total returns the cumulative byte count.
func (b *BitrateStatistics) Total() int64 {
	return b.totalBytes
}

// PreviousSecond returns the byte count observed during the last fully
// elapsed second.
func (b *BitrateStatistics) PreviousSecond() int {
	return b.previousSecondBytes
}
