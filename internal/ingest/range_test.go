package ingest

import (
	"reflect"
	"testing"
)

func TestSplitBlocks(t *testing.T) {
	got, err := splitBlocks(100, 105, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []blockSpan{
		{From: 100, To: 101},
		{From: 102, To: 103},
		{From: 104, To: 105},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans mismatch: %+v != %+v", got, want)
	}
}

func TestSplitBlocksUneven(t *testing.T) {
	got, err := splitBlocks(0, 6, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []blockSpan{
		{From: 0, To: 2},
		{From: 3, To: 5},
		{From: 6, To: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans mismatch: %+v != %+v", got, want)
	}
}

func TestSplitBlocksSingle(t *testing.T) {
	got, err := splitBlocks(5, 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []blockSpan{{From: 5, To: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans mismatch: %+v != %+v", got, want)
	}
}

func TestSplitBlocksInvalid(t *testing.T) {
	if _, err := splitBlocks(10, 9, 1); err == nil {
		t.Fatalf("expected error for inverted span")
	}
	if _, err := splitBlocks(1, 10, 0); err == nil {
		t.Fatalf("expected error for zero batch size")
	}
}
