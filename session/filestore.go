package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// storedSession is the durable key-value layout. Expiry is persisted as
// milliseconds since epoch so the file stays readable by the rest of the
// console tooling.
type storedSession struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *UserProfile `json:"user"`
	ExpiresAt    int64        `json:"expiresAt"`
}

// FileStore keeps the session in a single JSON file, the console's analog of
// the browser's origin-scoped storage. Writes go through a temp file and
// rename, so a concurrent reader never sees a half-written session.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the conventional per-user session file location.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "[DefaultSessionPath] resolve home directory")
	}
	return filepath.Join(home, ".schooltrack", "session.json"), nil
}

func (fs *FileStore) Save(s Session) error {
	if !s.Complete() {
		return IncompleteSessionErr
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Save] create session directory")
	}
	data, err := json.Marshal(toStored(s))
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal session")
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write session file")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.Save] replace session file")
	}
	return nil
}

// Load reads the stored session. Anything unreadable, unparseable, or
// incomplete reads as absent.
func (fs *FileStore) Load() (Session, bool) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return Session{}, false
	}
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return Session{}, false
	}
	s := fromStored(stored)
	if !s.Complete() {
		return Session{}, false
	}
	return s, true
}

// Clear removes the session file. Clearing an already-absent session is not
// an error.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove session file")
	}
	return nil
}

func toStored(s Session) storedSession {
	return storedSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         s.User,
		ExpiresAt:    s.ExpiresAt.UnixMilli(),
	}
}

func fromStored(st storedSession) Session {
	s := Session{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		User:         st.User,
	}
	if st.ExpiresAt > 0 {
		s.ExpiresAt = time.UnixMilli(st.ExpiresAt)
	}
	if s.User != nil && s.User.Permissions == nil {
		s.User.Permissions = []string{}
	}
	return s
}
