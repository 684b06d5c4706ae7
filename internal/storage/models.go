package storage

import "time"

// HistoryRow is a persisted history entry with its storage metadata.
type HistoryRow struct {
	Seq       int64
	ID        string
	CreatedAt time.Time
	Text      string
	Type      string
}
