// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package comment implements chapter discussion threads.

Comments attach to chapters and are listed oldest first, so a thread reads
top to bottom in posting order. Authors may edit and delete their own
comments; administrators may delete any comment through the moderation
surface but may not edit other users' words.
*/
package comment

import "time"

// Comment is a single chapter comment.
type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ChapterID int64     `json:"chapter_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View is a [Comment] enriched with the author's username for display.
type View struct {
	Comment
	Username string `json:"username"`
}

// ModerationView extends [View] with catalog context for the admin surface.
type ModerationView struct {
	View
	MangaID       int64   `json:"manga_id"`
	MangaTitle    string  `json:"manga_title"`
	ChapterNumber float64 `json:"chapter_number"`
}

// Request field identifiers.
const (
	FieldChapterID = "chapterID"
	FieldCommentID = "commentID"
	FieldBody      = "body"
)
