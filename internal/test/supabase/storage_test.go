package supabase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"estiloplus-backend/internal/supabase"
)

func TestGeneratedImagePath(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

	path := supabase.GeneratedImagePath(userID, now)

	assert.Equal(t, fmt.Sprintf("generated/%s/%d.png", userID, now.UnixMilli()), path)
}

func TestGeneratedImagePath_DistinctPerMillisecond(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	first := supabase.GeneratedImagePath(userID, now)
	second := supabase.GeneratedImagePath(userID, now.Add(time.Millisecond))

	assert.NotEqual(t, first, second)
}

func TestNewStorageClient_TrimsTrailingSlash(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co/", "service-role-key", "images")

	assert.NoError(t, err)
	url := client.GetPublicURL("generated/u/1.png")
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/images/generated/u/1.png", url)
}
