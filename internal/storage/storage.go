package storage

import "rangehedge/internal/model"

// SwapSink is a sink for fetched swap records.
type SwapSink interface {
	PutSwapBatch(swaps []model.SwapRecord) error
}
