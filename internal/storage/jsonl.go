package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"rangehedge/internal/model"
)

// JsonlSwapStore appends swap records to a JSONL file.
type JsonlSwapStore struct {
	path string
	mu   sync.Mutex
}

func NewJsonlSwapStore(path string) *JsonlSwapStore {
	return &JsonlSwapStore{path: path}
}

// PutSwapBatch appends a batch of swap records as JSON lines.
func (s *JsonlSwapStore) PutSwapBatch(swaps []model.SwapRecord) error {
	if len(swaps) == 0 {
		return nil
	}

	if err := ensureDir(s.path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range swaps {
		if err := writeLine(writer, record); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

// WriteStates writes a full state series as JSONL, replacing any
// existing file atomically.
func WriteStates(path string, states []model.StepState) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, state := range states {
		if err := writeLine(writer, state); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flush output: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close output: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func writeLine(writer *bufio.Writer, record interface{}) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := writer.Write(line); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}
