// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package history tracks which chapters a user has read.

Each user keeps at most one history entry per chapter. Re-reading a chapter
refreshes the entry's timestamp instead of adding a duplicate row, so the
history list stays a deduplicated, recency-ordered view of the user's
reading activity. The one-entry rule is enforced by the read-then-write
application logic, not by database constraints; the race between concurrent
writers is an accepted property.
*/
package history

import "time"

// Entry is a single reading-history record.
type Entry struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"user_id"`
	MangaID    int64 `json:"manga_id"`
	ChapterID  int64 `json:"chapter_id"`
	PageNumber int   `json:"page_number"`
	// ReadDuration is the seconds the reader spent on the chapter,
	// accumulated across visits. Zero until the client reports one.
	ReadDuration int       `json:"read_duration"`
	ReadAt       time.Time `json:"read_at"`
}

// View is an [Entry] enriched with display fields for list responses.
type View struct {
	Entry
	MangaTitle    string  `json:"manga_title"`
	ChapterNumber float64 `json:"chapter_number"`
}
