package credential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"tasktrack/internal/client/model"
	"tasktrack/internal/errors"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// FileStore keeps the session as a JSON file readable only by its owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is $XDG_CONFIG_HOME/tasktrack/credential.json or its
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve config dir")
	}

	return filepath.Join(dir, "tasktrack", "credential.json"), nil
}

func (s *FileStore) Get() (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "read credential file")
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "decode credential file")
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}

	return &session, nil
}

// Set replaces the file atomically.
func (s *FileStore) Set(session *model.Session) error {
	if err := validate(session); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode credential")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return errors.Wrap(err, "create credential dir")
	}

	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()

		return errors.Wrap(err, "chmod temp file")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()

		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replace credential file")
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "remove credential file")
	}

	return nil
}
