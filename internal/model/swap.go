package model

// SwapRecord is one pool swap observation in token units, normalized for
// storage. FeesX and FeesY hold the pool-wide fee collected by the swap,
// derived from the pool fee tier on the exact-input side.
type SwapRecord struct {
	Timestamp   int64   `json:"timestamp"`
	Tick        int     `json:"tick"`
	Liquidity   float64 `json:"liquidity"`
	FeesX       float64 `json:"fees_x"`
	FeesY       float64 `json:"fees_y"`
	BlockNumber uint64  `json:"block_number,omitempty"`
	TxHash      string  `json:"tx_hash,omitempty"`
	LogIndex    uint64  `json:"log_index,omitempty"`
}

// Bar is one fixed-cadence tick observation of the resampled series.
type Bar struct {
	Timestamp int64 `json:"timestamp"`
	Tick      int   `json:"tick"`
}
