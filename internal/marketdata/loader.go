package marketdata

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"rangehedge/internal/model"
)

// ReadSwaps loads a swap JSONL file into memory. Records must be ordered
// by timestamp; malformed lines are logged and skipped.
func ReadSwaps(path string, logger *zap.Logger) ([]model.SwapRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open swaps: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var swaps []model.SwapRecord
	var total, failed int
	lastTs := int64(0)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var record model.SwapRecord
		if err := json.Unmarshal(line, &record); err != nil {
			failed++
			logger.Warn("decode swap record", zap.Int("line", total), zap.Error(err))
			continue
		}

		if record.Timestamp < lastTs {
			return nil, fmt.Errorf("swaps out of order at line %d: %d after %d", total, record.Timestamp, lastTs)
		}
		lastTs = record.Timestamp

		swaps = append(swaps, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan swaps: %w", err)
	}

	logger.Info("swaps loaded",
		zap.String("path", path),
		zap.Int("records", len(swaps)),
		zap.Int("failed", failed),
	)

	return swaps, nil
}
