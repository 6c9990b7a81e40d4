package schema

// LibraryBookmarkTable represents the 'library.bookmark' table
type LibraryBookmarkTable struct {
	Table      string
	ID         string
	UserID     string
	MangaID    string
	ChapterID  string
	PageNumber string
	Note       string
	CreatedAt  string
}

// LibraryBookmark is the schema definition for library.bookmark
var LibraryBookmark = LibraryBookmarkTable{
	Table:      "library.bookmark",
	ID:         "id",
	UserID:     "userid",
	MangaID:    "mangaid",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	Note:       "note",
	CreatedAt:  "createdat",
}
