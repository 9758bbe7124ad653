package config

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"", 0, true},
		{"1700000000", 1700000000, true},
		{"2023-11-14T22:13:20Z", 1700000000, true},
		{"not-a-time", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.input)
		if tc.ok && err != nil {
			t.Errorf("ParseTimestamp(%q): %v", tc.input, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseTimestamp(%q): expected error", tc.input)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimestamp(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParamsCadence(t *testing.T) {
	cfg := BacktestConfig{
		Interval:            5 * time.Minute,
		TickSpacing:         60,
		StartValue:          1,
		BaseLowerBoundTicks: 100,
		BaseUpperBoundTicks: 100,
		LimitBoundTicks:     200,
	}

	params := cfg.Params()
	if params.StepsPerYear != 365*24*12 {
		t.Fatalf("steps per year = %v, want %d", params.StepsPerYear, 365*24*12)
	}
	if params.TickSpacing != 60 || params.LimitBoundTicks != 200 {
		t.Fatalf("strategy params not carried over: %+v", params)
	}
}
