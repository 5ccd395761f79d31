package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%s"
	postListKey   = "posts:all"
)

const (
	PostTTL     = 30 * time.Minute
	PostListTTL = 5 * time.Minute
)

func PostKey(postID string) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostListKey() string {
	return postListKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops the cached detail for one post and the list cache.
func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID), postListKey)
}
