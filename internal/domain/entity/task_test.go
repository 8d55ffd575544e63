package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_ApplyDefaults(t *testing.T) {
	task := &Task{Title: "write report"}
	task.ApplyDefaults()

	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusPending, task.Status)

	explicit := &Task{Priority: PriorityHigh, Status: StatusCompleted}
	explicit.ApplyDefaults()

	assert.Equal(t, PriorityHigh, explicit.Priority)
	assert.Equal(t, StatusCompleted, explicit.Status)
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, Priority("Low").IsValid())
	assert.False(t, Priority("low").IsValid())
	assert.False(t, Priority("").IsValid())

	assert.True(t, Status("In Progress").IsValid())
	assert.False(t, Status("Done").IsValid())
}

func TestUser_Sanitized(t *testing.T) {
	user := &User{Name: "A", Email: "a@x.com", PasswordHash: "$2a$10$hash"}

	clean := user.Sanitized()

	assert.Empty(t, clean.PasswordHash)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Nil(t, (*User)(nil).Sanitized())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}
