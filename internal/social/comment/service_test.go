// Copyright (c) 2026 Mangabay. All rights reserved.

package comment

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # Fakes

type fakeRepository struct {
	nextID    int64
	comments  map[int64]*Comment
	usernames map[int64]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:    1,
		comments:  make(map[int64]*Comment),
		usernames: make(map[int64]string),
	}
}

func (repo *fakeRepository) FindByID(_ context.Context, id int64) (*Comment, error) {
	comment, ok := repo.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *comment
	return &clone, nil
}

func (repo *fakeRepository) ListByChapter(_ context.Context, chapterID int64) ([]View, error) {
	var views []View
	for _, comment := range repo.comments {
		if comment.ChapterID != chapterID {
			continue
		}
		views = append(views, View{Comment: *comment, Username: repo.usernames[comment.UserID]})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.Before(views[j].CreatedAt) })
	return views, nil
}

func (repo *fakeRepository) Insert(_ context.Context, comment *Comment) error {
	comment.ID = repo.nextID
	repo.nextID++
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	clone := *comment
	repo.comments[comment.ID] = &clone
	return nil
}

func (repo *fakeRepository) UpdateBody(_ context.Context, id int64, body string) error {
	comment, ok := repo.comments[id]
	if !ok {
		return apperr.NotFound("Comment")
	}
	comment.Body = body
	comment.UpdatedAt = time.Now()
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

func (repo *fakeRepository) Moderation(_ context.Context, search string, limit, offset int) ([]ModerationView, int, error) {
	var views []ModerationView
	for _, comment := range repo.comments {
		username := repo.usernames[comment.UserID]
		if search != "" &&
			!strings.Contains(strings.ToLower(comment.Body), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(username), strings.ToLower(search)) {
			continue
		}
		views = append(views, ModerationView{View: View{Comment: *comment, Username: username}})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })

	total := len(views)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return views[offset:end], total, nil
}

func memberClaims(userID int64) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Role: sec.RoleUser}
}

func adminClaims(userID int64) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Role: sec.RoleAdmin}
}

// # Tests

func TestAdd_TrimsAndStores(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	comment, err := service.Add(context.Background(), 1, 7, "  great chapter  ")
	require.NoError(t, err)

	assert.Equal(t, "great chapter", comment.Body)
	assert.Equal(t, int64(7), comment.ChapterID)
	assert.NotZero(t, comment.ID)
}

func TestAdd_RejectsEmptyAndOversized(t *testing.T) {
	service := NewService(newFakeRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace only", body: "   \n\t "},
		{name: "over the limit", body: strings.Repeat("a", 1001)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Add(ctx, 1, 7, tc.body)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestAdd_AcceptsExactLimit(t *testing.T) {
	service := NewService(newFakeRepository())

	comment, err := service.Add(context.Background(), 1, 7, strings.Repeat("a", 1000))
	require.NoError(t, err)
	assert.Len(t, comment.Body, 1000)
}

func TestEdit_AuthorOnly(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	posted, err := service.Add(ctx, 1, 7, "first draft")
	require.NoError(t, err)

	_, err = service.Edit(ctx, 2, posted.ID, "hijacked")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.Equal(t, "first draft", repo.comments[posted.ID].Body)

	edited, err := service.Edit(ctx, 1, posted.ID, "second draft")
	require.NoError(t, err)
	assert.Equal(t, "second draft", edited.Body)
	assert.Equal(t, "second draft", repo.comments[posted.ID].Body)
}

func TestDelete_AuthorOrAdmin(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	posted, err := service.Add(ctx, 1, 7, "to be moderated")
	require.NoError(t, err)

	err = service.Delete(ctx, memberClaims(2), posted.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.Len(t, repo.comments, 1)

	require.NoError(t, service.Delete(ctx, adminClaims(99), posted.ID))
	assert.Empty(t, repo.comments)
}

func TestDelete_OwnComment(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	posted, err := service.Add(ctx, 1, 7, "regretted immediately")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, memberClaims(1), posted.ID))
	assert.Empty(t, repo.comments)
}

func TestListByChapter_OldestFirst(t *testing.T) {
	repo := newFakeRepository()
	repo.usernames[1] = "asuka"
	repo.usernames[2] = "kenji"
	service := NewService(repo)
	ctx := context.Background()

	first, err := service.Add(ctx, 1, 7, "first!")
	require.NoError(t, err)
	repo.comments[first.ID].CreatedAt = time.Now().Add(-time.Minute)
	_, err = service.Add(ctx, 2, 7, "second")
	require.NoError(t, err)
	_, err = service.Add(ctx, 1, 8, "other thread")
	require.NoError(t, err)

	views, err := service.ListByChapter(ctx, 7)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "first!", views[0].Body)
	assert.Equal(t, "asuka", views[0].Username)
	assert.Equal(t, "second", views[1].Body)
	assert.Equal(t, "kenji", views[1].Username)
}

func TestModeration_FiltersBySearch(t *testing.T) {
	repo := newFakeRepository()
	repo.usernames[1] = "asuka"
	repo.usernames[2] = "kenji"
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.Add(ctx, 1, 7, "loved the pacing")
	require.NoError(t, err)
	_, err = service.Add(ctx, 2, 8, "the art dipped this week")
	require.NoError(t, err)

	result, err := service.Moderation(ctx, "pacing", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Comments, 1)
	assert.Equal(t, "loved the pacing", result.Comments[0].Body)
	assert.Equal(t, 1, result.Meta.Total)

	all, err := service.Moderation(ctx, "", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, all.Comments, 2)
}
