package service

import (
	"tasktrack/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenService issues and verifies signed credentials.
type TokenService interface {
	// Issue creates a credential bound to subjectID that expires after the configured TTL.
	Issue(subjectID uuid.UUID) (*entity.Credential, error)

	// Verify never fails: malformed, forged and expired tokens all yield
	// entity.InvalidVerdict.
	Verify(token string) entity.Verdict
}
