// Package keychain stores the punchlog bearer token between runs.
// One slot, one token: absence means logged out.
package keychain

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultFileName is the token file created under the user config dir.
const DefaultFileName = "token"

// File persists the token in a single file, readable only by the
// owner. An absent file reads back as an empty token.
type File struct {
	path string
}

// NewFile returns a file-backed slot at the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultPath resolves the conventional token location under the
// user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "unable to resolve user config dir")
	}
	return filepath.Join(dir, "punchlog", DefaultFileName), nil
}

func (f *File) Get() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "unable to read credential file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *File) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to create credential dir")
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to write credential file")
	}
	return nil
}

func (f *File) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to remove credential file")
	}
	return nil
}

// Memory is an in-process slot, used by tests and ephemeral sessions.
type Memory struct {
	mu    sync.Mutex
	token string
}

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
