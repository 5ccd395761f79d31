package repository

import (
	"context"
	"errors"
	"testing"

	"kiroku/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostCreateThenGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{
		Title:         "はじめての記事",
		Content:       "<p>本文</p>",
		CoverImageKey: "private/900150983cd24fb0d6963f7d28e17f72",
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotEmpty(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "はじめての記事", got.Title)
	assert.Equal(t, "<p>本文</p>", got.Content)
	assert.Equal(t, "private/900150983cd24fb0d6963f7d28e17f72", got.CoverImageKey)
	assert.Equal(t, 0, got.Likes)
}

func TestPostLikeIncrementsTwice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "記事", Content: "本文"}
	require.NoError(t, repo.Create(ctx, post))

	// Likes are not deduplicated: two calls mean plus two.
	require.NoError(t, repo.Like(ctx, post.ID))
	require.NoError(t, repo.Like(ctx, post.ID))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)
}

func TestPostLikeMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Like(context.Background(), "no-such-id")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestPostDeleteRemovesThread(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	replyRepo := NewReplyRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "消える記事", Content: "本文"}
	require.NoError(t, postRepo.Create(ctx, post))

	comment := &models.Comment{PostID: post.ID, Content: "コメント"}
	require.NoError(t, commentRepo.Create(ctx, comment))

	reply := &models.Reply{CommentID: comment.ID, Content: "返信"}
	require.NoError(t, replyRepo.Create(ctx, reply))

	require.NoError(t, postRepo.Delete(ctx, post.ID))

	_, err := postRepo.GetByID(ctx, post.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = commentRepo.GetByID(ctx, comment.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = replyRepo.GetByID(ctx, reply.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestPostGetPreloadsThread(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	replyRepo := NewReplyRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "スレッド", Content: "本文"}
	require.NoError(t, postRepo.Create(ctx, post))

	comment := &models.Comment{PostID: post.ID, Content: "一件目"}
	require.NoError(t, commentRepo.Create(ctx, comment))
	require.NoError(t, replyRepo.Create(ctx, &models.Reply{CommentID: comment.ID, Content: "返信1"}))
	require.NoError(t, replyRepo.Create(ctx, &models.Reply{CommentID: comment.ID, Content: "返信2"}))

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Len(t, got.Comments[0].Replies, 2)
}

func TestCommentAndReplyLikes(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	replyRepo := NewReplyRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "記事", Content: "本文"}
	require.NoError(t, postRepo.Create(ctx, post))
	comment := &models.Comment{PostID: post.ID, Content: "コメント"}
	require.NoError(t, commentRepo.Create(ctx, comment))
	reply := &models.Reply{CommentID: comment.ID, Content: "返信"}
	require.NoError(t, replyRepo.Create(ctx, reply))

	require.NoError(t, commentRepo.Like(ctx, comment.ID))
	require.NoError(t, replyRepo.Like(ctx, reply.ID))
	require.NoError(t, replyRepo.Like(ctx, reply.ID))

	gotComment, err := commentRepo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotComment.Likes)

	gotReply, err := replyRepo.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotReply.Likes)
}

func TestCommentListByPost(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "記事", Content: "本文"}
	require.NoError(t, postRepo.Create(ctx, post))
	other := &models.Post{Title: "別の記事", Content: "本文"}
	require.NoError(t, postRepo.Create(ctx, other))

	require.NoError(t, commentRepo.Create(ctx, &models.Comment{PostID: post.ID, Content: "a"}))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{PostID: post.ID, Content: "b"}))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{PostID: other.ID, Content: "c"}))

	comments, err := commentRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
