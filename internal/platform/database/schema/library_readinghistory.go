package schema

// LibraryReadingHistoryTable represents the 'library.readinghistory' table
type LibraryReadingHistoryTable struct {
	Table        string
	ID           string
	UserID       string
	MangaID      string
	ChapterID    string
	PageNumber   string
	ReadDuration string
	ReadAt       string
}

// LibraryReadingHistory is the schema definition for library.readinghistory
var LibraryReadingHistory = LibraryReadingHistoryTable{
	Table:        "library.readinghistory",
	ID:           "id",
	UserID:       "userid",
	MangaID:      "mangaid",
	ChapterID:    "chapterid",
	PageNumber:   "pagenumber",
	ReadDuration: "readduration",
	ReadAt:       "readat",
}
