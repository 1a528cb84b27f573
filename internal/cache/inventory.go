package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	SpeakKeyPrefix   = "speak:%d"
	TagListKeyPrefix = "tags:%d"
)

const (
	SpeakTTL   = 10 * time.Minute
	TagListTTL = 10 * time.Minute
)

func SpeakKey(speakID uint) string {
	return fmt.Sprintf(SpeakKeyPrefix, speakID)
}

func TagListKey(userID uint) string {
	return fmt.Sprintf(TagListKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateSpeak(ctx context.Context, speakID uint) {
	Invalidate(ctx, SpeakKey(speakID))
}

func InvalidateTagList(ctx context.Context, userID uint) {
	Invalidate(ctx, TagListKey(userID))
}
