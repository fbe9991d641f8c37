package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRender(t *testing.T) {
	template := &NotificationTemplate{
		TitleTemplate:   "Video viewed by {viewer_name}",
		MessageTemplate: "{viewer_name} watched {video_title} for {duration}s",
	}

	title, message := template.Render(map[string]interface{}{
		"viewer_name": "Acme Corp",
		"video_title": "My pitch",
		"duration":    95,
	})
	assert.Equal(t, "Video viewed by Acme Corp", title)
	assert.Equal(t, "Acme Corp watched My pitch for 95s", message)
}

func TestTemplateRenderLeavesUnknownPlaceholders(t *testing.T) {
	template := &NotificationTemplate{
		TitleTemplate:   "Hello {name}",
		MessageTemplate: "{missing}",
	}

	title, message := template.Render(map[string]interface{}{"name": "Jean"})
	assert.Equal(t, "Hello Jean", title)
	assert.Equal(t, "{missing}", message)
}

func TestShouldSendUnknownTypeDefaultsTrue(t *testing.T) {
	pref := &NotificationPreference{}
	assert.True(t, pref.ShouldSend(NotificationSystemUpdate))
	assert.False(t, pref.ShouldSend(NotificationVideoViewed))

	pref.NotifyVideoViewed = true
	assert.True(t, pref.ShouldSend(NotificationVideoViewed))
}

func TestIsExpired(t *testing.T) {
	assert.False(t, (&Notification{}).IsExpired())

	past := time.Now().Add(-time.Hour)
	assert.True(t, (&Notification{ExpiresAt: &past}).IsExpired())

	future := time.Now().Add(time.Hour)
	assert.False(t, (&Notification{ExpiresAt: &future}).IsExpired())
}
