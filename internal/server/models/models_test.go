package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToken_Expired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&Token{ExpiresAt: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&Token{ExpiresAt: now}).Expired(now))
	assert.True(t, (&Token{ExpiresAt: now.Add(-time.Minute)}).Expired(now))
}

func TestTaskPatch_Empty(t *testing.T) {
	title := "x"
	done := false

	assert.True(t, TaskPatch{}.Empty())
	assert.False(t, TaskPatch{Title: &title}.Empty())
	assert.False(t, TaskPatch{Completed: &done}.Empty())
}
