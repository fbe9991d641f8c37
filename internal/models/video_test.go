package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationFormatted(t *testing.T) {
	assert.Equal(t, "00:00", (&Video{}).DurationFormatted())
	assert.Equal(t, "00:45", (&Video{Duration: 45}).DurationFormatted())
	assert.Equal(t, "02:05", (&Video{Duration: 125.7}).DurationFormatted())
}

func TestIsReadyThreshold(t *testing.T) {
	assert.False(t, (&Video{OverallQualityScore: 79}).IsReady())
	assert.True(t, (&Video{OverallQualityScore: 80}).IsReady())
}

func TestValidCheckType(t *testing.T) {
	assert.True(t, ValidCheckType(CheckTypeFace))
	assert.True(t, ValidCheckType(CheckTypePositioning))
	assert.False(t, ValidCheckType(CheckType("telepathy")))
}
