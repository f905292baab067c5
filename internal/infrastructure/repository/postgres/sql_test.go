package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatal("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("pq: connection refused")) {
		t.Fatal("expected false for unrelated error")
	}
}

func TestChunkRows(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	chunks := chunkRows(rows, 2)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 2 || len(chunks[2]) != 1 {
		t.Fatalf("unexpected chunk sizes: %v", chunks)
	}

	if got := chunkRows([]int{}, 2); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := chunkRows(rows, 0); got != nil {
		t.Fatalf("expected nil for zero chunk size, got %v", got)
	}
}
