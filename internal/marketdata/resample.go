package marketdata

import (
	"fmt"

	"rangehedge/internal/backtest"
	"rangehedge/internal/model"
)

// Resample buckets a swap stream into a fixed-interval bar series. Each
// bar carries the tick of the last swap in its bucket; buckets with no
// swaps repeat the previous bar's tick. Buckets are aligned to the epoch,
// and only swaps with timestamp in [start, end) are considered. A zero
// start or end is taken from the stream itself.
func Resample(swaps []model.SwapRecord, interval int64, start, end int64) ([]model.Bar, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("resample interval must be positive, got %d", interval)
	}

	first := -1
	last := -1
	for i, swap := range swaps {
		if start > 0 && swap.Timestamp < start {
			continue
		}
		if end > 0 && swap.Timestamp >= end {
			break
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return nil, fmt.Errorf("%w: no swaps in [%d, %d)", backtest.ErrEmptySeries, start, end)
	}

	window := swaps[first : last+1]
	firstBucket := bucketStart(window[0].Timestamp, interval)
	lastBucket := bucketStart(window[len(window)-1].Timestamp, interval)

	bars := make([]model.Bar, 0, (lastBucket-firstBucket)/interval+1)
	cursor := 0
	tick := window[0].Tick
	for ts := firstBucket; ts <= lastBucket; ts += interval {
		for cursor < len(window) && window[cursor].Timestamp < ts+interval {
			tick = window[cursor].Tick
			cursor++
		}
		bars = append(bars, model.Bar{Timestamp: ts, Tick: tick})
	}

	return bars, nil
}

func bucketStart(ts, interval int64) int64 {
	return ts - ts%interval
}
