package postgres

import (
	"database/sql"
	"errors"
)

// Bulk inserts stay below the postgres bind parameter ceiling by chunking
// rows; 100 rows of ~15 columns keeps a comfortable margin.
const insertChunkSize = 100

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func chunkRows[T any](rows []T, size int) [][]T {
	if size <= 0 || len(rows) == 0 {
		return nil
	}

	out := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}

	return out
}
