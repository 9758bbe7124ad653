package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"rangehedge/internal/backtest"
)

// BacktestConfig holds configuration for the run command: the input
// series, the output sinks, and the strategy parameters.
type BacktestConfig struct {
	SwapsPath string
	Interval  time.Duration
	StartDate string
	EndDate   string

	Out   string
	PGDSN string
	RunID string

	DecimalsX int
	DecimalsY int

	TickSpacing int
	StartValue  float64

	DeltaThreshold float64

	BaseLowerBoundTicks   int
	BaseUpperBoundTicks   int
	BaseLowerTriggerTicks int
	BaseUpperTriggerTicks int

	LimitBoundTicks   int
	LimitTriggerTicks int

	LendingAPY           float64
	BorrowingAPY         float64
	LiquidationThreshold float64

	LogLevel string
}

// LoadBacktest merges config file, environment variables, and flags into BacktestConfig.
func LoadBacktest(cfgFile string, flags *pflag.FlagSet) (BacktestConfig, error) {
	v := newViper()

	v.SetDefault("swaps", "./data/swaps.jsonl")
	v.SetDefault("interval", 5*time.Minute)
	v.SetDefault("start-value", 1.0)
	v.SetDefault("delta-threshold", 0.05)
	v.SetDefault("liquidation-threshold", 0.8)
	v.SetDefault("log-level", "info")

	if err := bindAndRead(v, cfgFile, flags); err != nil {
		return BacktestConfig{}, err
	}

	cfg := BacktestConfig{
		SwapsPath: v.GetString("swaps"),
		Interval:  v.GetDuration("interval"),
		StartDate: v.GetString("start"),
		EndDate:   v.GetString("end"),

		Out:   v.GetString("out"),
		PGDSN: v.GetString("pg-dsn"),
		RunID: v.GetString("run-id"),

		DecimalsX: v.GetInt("decimals-x"),
		DecimalsY: v.GetInt("decimals-y"),

		TickSpacing: v.GetInt("tick-spacing"),
		StartValue:  v.GetFloat64("start-value"),

		DeltaThreshold: v.GetFloat64("delta-threshold"),

		BaseLowerBoundTicks:   v.GetInt("base-lower-bound"),
		BaseUpperBoundTicks:   v.GetInt("base-upper-bound"),
		BaseLowerTriggerTicks: v.GetInt("base-lower-trigger"),
		BaseUpperTriggerTicks: v.GetInt("base-upper-trigger"),

		LimitBoundTicks:   v.GetInt("limit-bound"),
		LimitTriggerTicks: v.GetInt("limit-trigger"),

		LendingAPY:           v.GetFloat64("lending-apy"),
		BorrowingAPY:         v.GetFloat64("borrowing-apy"),
		LiquidationThreshold: v.GetFloat64("liquidation-threshold"),

		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

// Params converts the strategy portion of the config into engine
// parameters. The step cadence per year follows from the bar interval.
func (c BacktestConfig) Params() backtest.Params {
	stepsPerYear := 0.0
	if c.Interval > 0 {
		stepsPerYear = float64(365*24*time.Hour) / float64(c.Interval)
	}

	return backtest.Params{
		DecimalsX: c.DecimalsX,
		DecimalsY: c.DecimalsY,

		TickSpacing: c.TickSpacing,
		StartValue:  c.StartValue,

		DeltaThreshold: c.DeltaThreshold,

		BaseLowerBoundTicks:   c.BaseLowerBoundTicks,
		BaseUpperBoundTicks:   c.BaseUpperBoundTicks,
		BaseLowerTriggerTicks: c.BaseLowerTriggerTicks,
		BaseUpperTriggerTicks: c.BaseUpperTriggerTicks,

		LimitBoundTicks:   c.LimitBoundTicks,
		LimitTriggerTicks: c.LimitTriggerTicks,

		LendingAPY:           c.LendingAPY,
		BorrowingAPY:         c.BorrowingAPY,
		LiquidationThreshold: c.LiquidationThreshold,

		StepsPerYear: stepsPerYear,
	}
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339).
func ParseTimestamp(input string) (int64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return 0, err
		}
		return val, nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return 0, err
	}
	return tm.Unix(), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
