package form

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/zalando/go-keyring"
)

// Store is the persistence port for the serialized birth record: one blob
// under a fixed key. Load reports (nil, nil) when no record exists.
// Implementations are single-writer from the engine's perspective.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}

// NewStore builds the configured backend. The birth record is sensitive,
// so the default backend is the OS keyring.
func NewStore(cfg config.StoreConfig) (Store, error) {
	slog.Debug(config.MsgStoreSelected,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyStore, cfg.Mode,
	)
	switch cfg.Mode {
	case config.StoreModeKeyring:
		return &KeyringStore{Service: config.KeyringService, Account: config.KeyringAccount}, nil
	case config.StoreModeFile:
		path := cfg.Path
		if path == "" {
			dir, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", config.ErrCacheDir, err)
			}
			path = filepath.Join(dir, config.AppID, config.StorageFileName)
		}
		return &FileStore{Path: path}, nil
	case config.StoreModeMemory:
		return &MemoryStore{}, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrStoreUnknown, cfg.Mode)
	}
}

// KeyringStore keeps the record in the OS keyring.
type KeyringStore struct {
	Service string
	Account string
}

// Load implements Store.
func (s *KeyringStore) Load() ([]byte, error) {
	data, err := keyring.Get(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// Save implements Store.
func (s *KeyringStore) Save(data []byte) error {
	return keyring.Set(s.Service, s.Account, string(data))
}

// Delete implements Store.
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// FileStore keeps the record in a user-only file.
type FileStore struct {
	Path string
}

// Load implements Store.
func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save implements Store.
func (s *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), config.DirPermUserRWX); err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, config.FilePermUserRW)
}

// Delete implements Store.
func (s *FileStore) Delete() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore keeps the record for the process lifetime only. Also the
// degraded mode the Manager falls into when a real backend keeps failing.
type MemoryStore struct {
	data []byte
}

// Load implements Store.
func (s *MemoryStore) Load() ([]byte, error) {
	if s.data == nil {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Save implements Store.
func (s *MemoryStore) Save(data []byte) error {
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete() error {
	s.data = nil
	return nil
}
