package ingest

import "fmt"

// blockSpan is an inclusive window of block numbers covered by one log
// filter call.
type blockSpan struct {
	From uint64
	To   uint64
}

// splitBlocks cuts [from, to] into spans of at most batch blocks each,
// sized to keep individual eth_getLogs calls within provider limits.
func splitBlocks(from, to, batch uint64) ([]blockSpan, error) {
	if batch == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block %d is before from block %d", to, from)
	}

	spans := make([]blockSpan, 0, (to-from)/batch+1)
	for start := from; ; {
		end := start + batch - 1
		if end >= to || end < start {
			spans = append(spans, blockSpan{From: start, To: to})
			return spans, nil
		}
		spans = append(spans, blockSpan{From: start, To: end})
		start = end + 1
	}
}
