package dex

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"rangehedge/internal/model"
)

// SwapDecoder turns a pool's Swap logs into swap records with amounts
// in token units. Fees are approximated from the pool fee tier on the
// input side of each swap.
type SwapDecoder struct {
	poolABI   abi.ABI
	swapTopic common.Hash
	feePPM    uint32
	scaleX    float64
	scaleY    float64
	scaleL    float64
}

// NewSwapDecoder builds a decoder for one pool from its metadata and
// token decimals. Liquidity is scaled with the geometric mean of the
// two token scales, matching the units the position math works in.
func NewSwapDecoder(meta PoolMeta, decimals0, decimals1 uint8) (*SwapDecoder, error) {
	poolABI, err := V3PoolABI()
	if err != nil {
		return nil, err
	}

	return &SwapDecoder{
		poolABI:   poolABI,
		swapTopic: poolABI.Events["Swap"].ID,
		feePPM:    meta.FeePPM,
		scaleX:    math.Pow10(int(decimals0)),
		scaleY:    math.Pow10(int(decimals1)),
		scaleL:    math.Pow(10, (float64(decimals0)+float64(decimals1))/2),
	}, nil
}

// Topic returns the Swap event signature hash.
func (d *SwapDecoder) Topic() common.Hash {
	return d.swapTopic
}

// Decode converts a raw Swap log into a swap record.
func (d *SwapDecoder) Decode(log types.Log, timestamp uint64) (model.SwapRecord, error) {
	if len(log.Topics) == 0 || log.Topics[0] != d.swapTopic {
		return model.SwapRecord{}, fmt.Errorf("not a swap log")
	}

	values, err := d.poolABI.Unpack("Swap", log.Data)
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("unpack swap: %w", err)
	}
	if len(values) != 5 {
		return model.SwapRecord{}, fmt.Errorf("unexpected swap field count %d", len(values))
	}

	amount0, err := asBigInt(values[0])
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("amount0: %w", err)
	}
	amount1, err := asBigInt(values[1])
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("amount1: %w", err)
	}
	liquidity, err := asBigInt(values[3])
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("liquidity: %w", err)
	}
	tickInt, err := asBigInt(values[4])
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("tick: %w", err)
	}
	tick, err := int24FromBig(tickInt)
	if err != nil {
		return model.SwapRecord{}, fmt.Errorf("tick: %w", err)
	}

	record := model.SwapRecord{
		Timestamp:   int64(timestamp),
		Tick:        int(tick),
		Liquidity:   scaledFloat(liquidity, d.scaleL),
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash.Hex(),
		LogIndex:    uint64(log.Index),
	}

	// The fee accrues on the input token. A positive amount flows into
	// the pool, a negative one flows out.
	if amount0.Sign() > 0 && amount1.Sign() < 0 {
		record.FeesX = scaledFloat(feeFromAmount(amount0, d.feePPM), d.scaleX)
	} else if amount1.Sign() > 0 && amount0.Sign() < 0 {
		record.FeesY = scaledFloat(feeFromAmount(amount1, d.feePPM), d.scaleY)
	}

	return record, nil
}

func feeFromAmount(amountIn *big.Int, feePPM uint32) *big.Int {
	fee := new(big.Int).Abs(amountIn)
	fee.Mul(fee, big.NewInt(int64(feePPM)))
	fee.Div(fee, big.NewInt(1_000_000))
	return fee
}

func scaledFloat(value *big.Int, scale float64) float64 {
	f, _ := new(big.Float).SetInt(value).Float64()
	return f / scale
}
