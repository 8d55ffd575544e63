// Package credential persists the signed-in session on the client.
package credential

import (
	"tasktrack/internal/client/model"
	"tasktrack/internal/errors"
)

// ErrNoSession is returned by Get when nothing is stored.
var ErrNoSession = errors.New("no stored credential")

// Store keeps at most one session.
type Store interface {
	Get() (*model.Session, error)
	Set(session *model.Session) error
	Clear() error
}

func validate(session *model.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session without a token")
	}

	return nil
}

func clone(session *model.Session) *model.Session {
	c := *session
	if session.User != nil {
		u := *session.User
		c.User = &u
	}

	return &c
}
