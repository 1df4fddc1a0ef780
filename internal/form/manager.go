package form

import (
	"log/slog"
	"net/url"
	"sync"

	"github.com/tartampluch/go-shuwen/internal/config"
)

// Manager owns the working record and its persistence side effects. All
// mutations are serialized by a mutex; the HTTP layer is the only writer,
// so the engine itself holds no further locking. Persistence failures
// degrade to in-memory-only operation for the session, never past the
// engine boundary.
type Manager struct {
	mu        sync.Mutex
	store     Store
	defaults  BirthRecord
	working   BirthRecord
	committed BirthRecord
}

// NewManager reconciles the initial record from the link parameters and
// the persisted record, per the initialize contract: a non-empty link wins
// over storage, an empty link falls back to storage, and storage read
// failures recover to the defaults.
func NewManager(store Store, defaults BirthRecord, link url.Values) *Manager {
	m := &Manager{store: store, defaults: defaults}

	var stored *BirthRecord
	data, err := store.Load()
	if err != nil {
		slog.Warn(config.ErrStoreRead,
			config.LogKeyComponent, config.CompForm,
			config.LogKeyError, err,
		)
	} else if rec, ok := DecodeStorage(data); ok {
		stored = &rec
		slog.Debug(config.MsgRecordLoaded, config.LogKeyComponent, config.CompForm)
	}

	m.working = Initialize(link, stored, defaults)
	m.committed = m.working

	if len(decodeLink(link)) > 0 {
		slog.Info(config.MsgLinkApplied, config.LogKeyComponent, config.CompForm)
		// A link-initialized record is user-visible state; persist it like
		// any other mutation.
		m.persistLocked()
	} else if stored != nil {
		slog.Debug(config.MsgStoredApplied, config.LogKeyComponent, config.CompForm)
	}

	return m
}

// ApplyEdit mutates one field of the working record, re-applies the
// mutual-exclusion invariant, and persists the result.
func (m *Manager) ApplyEdit(key, value string) BirthRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.working = ApplyEdit(m.working, key, value)
	slog.Debug(config.MsgRecordEdited,
		config.LogKeyComponent, config.CompForm,
		config.LogKeyField, key,
	)
	m.persistLocked()
	return m.working
}

// Working returns the current uncommitted record.
func (m *Manager) Working() BirthRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.working
}

// Commit snapshots the working record as the committed one. Derived facts
// are always computed from the committed snapshot, so a half-edited record
// can never leak into a derivation.
func (m *Manager) Commit() BirthRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = m.working
	return m.committed
}

// Committed returns the record derivations run against.
func (m *Manager) Committed() BirthRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// Reset deletes the persisted copy and restores the defaults.
func (m *Manager) Reset() BirthRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(); err != nil {
		slog.Warn(config.ErrStoreDelete,
			config.LogKeyComponent, config.CompForm,
			config.LogKeyError, err,
		)
	}
	m.working = m.defaults
	m.committed = m.defaults
	slog.Info(config.MsgRecordReset, config.LogKeyComponent, config.CompForm)
	return m.working
}

// ShareLink renders the shareable form of the committed record.
func (m *Manager) ShareLink(includeSensitive bool) url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, share, err := Serialize(m.committed, includeSensitive)
	if err != nil {
		return url.Values{}
	}
	return share
}

// persistLocked writes the storage form; callers hold m.mu. A failed write
// is logged and the session continues in memory.
func (m *Manager) persistLocked() {
	data, err := m.working.EncodeStorage()
	if err == nil {
		err = m.store.Save(data)
	}
	if err != nil {
		slog.Warn(config.ErrStoreWrite,
			config.LogKeyComponent, config.CompForm,
			config.LogKeyError, err,
		)
		return
	}
	slog.Debug(config.MsgRecordSaved,
		config.LogKeyComponent, config.CompForm,
		config.LogKeySizeBytes, len(data),
	)
}
