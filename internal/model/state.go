package model

import (
	"encoding/json"
	"fmt"
)

// Bias is the directional lean of the hedge.
type Bias int

const (
	ShortBias Bias = -1
	Neutral   Bias = 0
	LongBias  Bias = 1
)

func (b Bias) String() string {
	switch b {
	case ShortBias:
		return "short"
	case LongBias:
		return "long"
	default:
		return "neutral"
	}
}

// Reason tags why a step rebalanced. At most one reason is recorded per
// step; later entries in the evaluation order override earlier ones.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonLimitTrigger
	ReasonBaseTrigger
	ReasonDelta
	ReasonInitialization
)

func (r Reason) String() string {
	switch r {
	case ReasonLimitTrigger:
		return "limit_trigger"
	case ReasonBaseTrigger:
		return "base_trigger"
	case ReasonDelta:
		return "delta"
	case ReasonInitialization:
		return "initialization"
	default:
		return "none"
	}
}

// MarshalJSON encodes the reason as its string tag.
func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the reason from its string tag.
func (r *Reason) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "none":
		*r = ReasonNone
	case "limit_trigger":
		*r = ReasonLimitTrigger
	case "base_trigger":
		*r = ReasonBaseTrigger
	case "delta":
		*r = ReasonDelta
	case "initialization":
		*r = ReasonInitialization
	default:
		return fmt.Errorf("unknown rebalance reason: %s", tag)
	}
	return nil
}

// Position is a concentrated-liquidity range. Both bounds are aligned to
// the pool tick spacing and LowerTick < UpperTick for a live position.
type Position struct {
	LowerTick int     `json:"lower_tick"`
	UpperTick int     `json:"upper_tick"`
	Liquidity float64 `json:"liquidity"`
}

// StepState is the immutable snapshot produced for one bar. It holds the
// portfolio after the rebalance decision taken at that bar, the fees
// attributed over the interval the decision consumed (already folded into
// the outside reserve), and the decision outcome itself.
type StepState struct {
	Index     int     `json:"index"`
	Timestamp int64   `json:"timestamp"`
	Tick      int     `json:"tick"`
	Price     float64 `json:"price"`

	Base  Position `json:"base"`
	Limit Position `json:"limit"`

	BaseLowerTrigger  int `json:"base_lower_trigger_tick"`
	BaseUpperTrigger  int `json:"base_upper_trigger_tick"`
	LimitLowerTrigger int `json:"limit_lower_trigger_tick"`
	LimitUpperTrigger int `json:"limit_upper_trigger_tick"`

	OutsideX float64 `json:"outside_x"`
	OutsideY float64 `json:"outside_y"`
	FeesX    float64 `json:"fees_x"`
	FeesY    float64 `json:"fees_y"`

	Lent     float64 `json:"lent"`
	Borrowed float64 `json:"borrowed"`

	Rebalanced bool   `json:"rebalanced"`
	Reason     Reason `json:"reason"`

	BaseValue       float64 `json:"base_value"`
	LimitValue      float64 `json:"limit_value"`
	OutsideValue    float64 `json:"outside_value"`
	FeesValue       float64 `json:"fees_value"`
	TotalValue      float64 `json:"total_value"`
	NormalizedDelta float64 `json:"normalized_delta"`
	HealthFactor    float64 `json:"health_factor"`
}
