package schema

// CoreMangaTable represents the 'core.manga' table
type CoreMangaTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	Description   string
	CoverImageURL string
	Genres        string
	CreatedAt     string
}

// CoreManga is the schema definition for core.manga
var CoreManga = CoreMangaTable{
	Table:         "core.manga",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	Description:   "description",
	CoverImageURL: "coverimageurl",
	Genres:        "genres",
	CreatedAt:     "createdat",
}
