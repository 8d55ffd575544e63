package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a signed, time-limited token bound to one subject.
// It is immutable once issued.
type Credential struct {
	Token     string
	SubjectID uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verdict is the outcome of verifying a credential. SubjectID is only set
// when Valid is true.
type Verdict struct {
	Valid     bool
	SubjectID uuid.UUID
}

// InvalidVerdict is the verdict for any credential that fails verification.
var InvalidVerdict = Verdict{}
