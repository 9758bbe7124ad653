package marketdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSwaps(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swaps.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadSwaps(t *testing.T) {
	path := writeTempSwaps(t,
		`{"timestamp":100,"tick":-5,"liquidity":1000,"fees_x":0.5,"fees_y":0.25}`,
		``,
		`not json`,
		`{"timestamp":160,"tick":3,"liquidity":900,"fees_x":0,"fees_y":0}`,
	)

	swaps, err := ReadSwaps(path, nil)
	if err != nil {
		t.Fatalf("ReadSwaps: %v", err)
	}
	if len(swaps) != 2 {
		t.Fatalf("len(swaps) = %d, want 2", len(swaps))
	}
	if swaps[0].Tick != -5 || swaps[0].FeesX != 0.5 {
		t.Fatalf("first record = %+v", swaps[0])
	}
	if swaps[1].Timestamp != 160 {
		t.Fatalf("second timestamp = %d, want 160", swaps[1].Timestamp)
	}
}

func TestReadSwapsOutOfOrder(t *testing.T) {
	path := writeTempSwaps(t,
		`{"timestamp":200,"tick":0}`,
		`{"timestamp":100,"tick":0}`,
	)
	if _, err := ReadSwaps(path, nil); err == nil {
		t.Fatal("expected ordering error")
	}
}

func TestReadSwapsMissingFile(t *testing.T) {
	if _, err := ReadSwaps(filepath.Join(t.TempDir(), "absent.jsonl"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}
