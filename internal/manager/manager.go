// Package manager orchestrates the user management flow: fetch-on-activate,
// create/edit dialog lifecycle, and dispatching mutations to the record
// store with a refetch after each success. All store errors are converted to
// transient notices here; nothing propagates past this boundary.
package manager

import (
	"context"
	"log"
	"sync"

	"github.com/urmhq/urm/internal/event"
	"github.com/urmhq/urm/internal/eventbus"
	"github.com/urmhq/urm/internal/store"
)

// Store is the slice of the record store client the manager needs.
type Store interface {
	List(ctx context.Context) ([]store.Record, error)
	Create(ctx context.Context, data map[string]any) (store.Record, error)
	Update(ctx context.Context, id string, data map[string]any) (store.Record, error)
	Delete(ctx context.Context, id string) error
}

// NoticeKind distinguishes success from error notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient, non-blocking user notification.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// State is a renderable snapshot of the manager.
type State struct {
	Records    []store.Record
	Loading    bool
	DialogOpen bool
	Editing    store.Record // nil = create mode
	FormBusy   bool
}

// Manager holds the console state. All mutation happens under one mutex and
// records are only ever replaced wholesale, never merged.
type Manager struct {
	mu    sync.Mutex
	store Store
	bus   *eventbus.Bus // optional

	records    []store.Record
	loading    bool
	dialogOpen bool
	editing    store.Record
	formBusy   bool
	notices    []Notice
}

// New creates a Manager over the given store. bus may be nil.
func New(st Store, bus *eventbus.Bus) *Manager {
	return &Manager{store: st, bus: bus}
}

// Load fetches the record list and replaces the local copy. On failure the
// previous list stays as last-known-good and an error notice is queued.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	records, err := m.store.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		log.Printf("manager: list failed: %v", err)
		m.notices = append(m.notices, Notice{NoticeError, "Failed to fetch users"})
		return
	}
	m.records = records
}

// OpenCreate opens the dialog in create mode.
func (m *Manager) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = nil
	m.dialogOpen = true
}

// OpenEdit opens the dialog pre-filled with the given record.
func (m *Manager) OpenEdit(rec store.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = rec
	m.dialogOpen = true
}

// Cancel closes the dialog unconditionally. Uncommitted field state is owned
// by the form, so there is nothing to revert here.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dialogOpen = false
	m.editing = nil
}

// Submit creates or updates depending on the dialog mode. On success: a
// confirmation notice, the dialog closes, and exactly one refetch runs. On
// failure the dialog stays open so entered values survive.
func (m *Manager) Submit(ctx context.Context, values map[string]any) {
	m.mu.Lock()
	m.formBusy = true
	editing := m.editing
	m.mu.Unlock()

	var (
		saved store.Record
		err   error
	)
	if editing != nil {
		saved, err = m.store.Update(ctx, editing.ID(), values)
	} else {
		saved, err = m.store.Create(ctx, values)
	}

	m.mu.Lock()
	if err != nil {
		log.Printf("manager: submit failed: %v", err)
		m.notices = append(m.notices, Notice{NoticeError, "Operation failed"})
		m.formBusy = false
		m.mu.Unlock()
		return
	}

	if editing != nil {
		m.notices = append(m.notices, Notice{NoticeSuccess, "User updated successfully"})
	} else {
		m.notices = append(m.notices, Notice{NoticeSuccess, "User created successfully"})
	}
	m.dialogOpen = false
	m.editing = nil
	m.mu.Unlock()

	m.publish(ctx, editing != nil, saved.ID())
	m.Load(ctx)

	m.mu.Lock()
	m.formBusy = false
	m.mu.Unlock()
}

// Delete removes a record. The local list is left untouched until the
// refetch completes; there is no optimistic row removal.
func (m *Manager) Delete(ctx context.Context, id string) {
	if err := m.store.Delete(ctx, id); err != nil {
		log.Printf("manager: delete failed: %v", err)
		m.mu.Lock()
		m.notices = append(m.notices, Notice{NoticeError, "Failed to delete user"})
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.notices = append(m.notices, Notice{NoticeSuccess, "User deleted successfully"})
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(ctx, event.NewUserDeleted(id))
	}
	m.Load(ctx)
}

func (m *Manager) publish(ctx context.Context, updated bool, id string) {
	if m.bus == nil {
		return
	}
	if updated {
		m.bus.Publish(ctx, event.NewUserUpdated(id))
	} else {
		m.bus.Publish(ctx, event.NewUserCreated(id))
	}
}

// Snapshot returns a copy of the current state for rendering.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Records:    append([]store.Record(nil), m.records...),
		Loading:    m.loading,
		DialogOpen: m.dialogOpen,
		Editing:    m.editing,
		FormBusy:   m.formBusy,
	}
}

// Find returns the loaded record with the given id.
func (m *Manager) Find(id string) (store.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ID() == id {
			return rec, true
		}
	}
	return nil, false
}

// DrainNotices returns queued notices and clears the queue.
func (m *Manager) DrainNotices() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.notices
	m.notices = nil
	return out
}
