// Package memory is an in-process Persistence Store for local runs and tests.
//
// One mutex guards every table, so uniqueness is enforced atomically with the
// write, the same way a database constraint would be.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/query"
)

type DB struct {
	mu       sync.RWMutex
	users    map[int64]domain.User
	data     map[int64]domain.Data
	services map[int64]domain.Service
	seq      struct{ users, data, services int64 }
	now      func() time.Time
}

func New() *DB {
	return &DB{
		users:    make(map[int64]domain.User),
		data:     make(map[int64]domain.Data),
		services: make(map[int64]domain.Service),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewStore bundles the memory repositories over db.
func NewStore(db *DB) ports.Store {
	return ports.Store{
		Users:    (*userRepo)(db),
		Data:     (*dataRepo)(db),
		Services: (*serviceRepo)(db),
		Lookup:   (*lookup)(db),
		Ping:     func(context.Context) error { return nil },
		Close:    func(context.Context) error { return nil },
	}
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type userRepo DB

func (r *userRepo) conflict(u domain.User, selfID int64) error {
	for id, existing := range r.users {
		if id == selfID {
			continue
		}
		if existing.Email == u.Email {
			return domain.NewConflict(domain.ResourceUser, "email")
		}
		if existing.Phone == u.Phone {
			return domain.NewConflict(domain.ResourceUser, "phone")
		}
	}
	return nil
}

func (r *userRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.conflict(*u, 0); err != nil {
		return nil, err
	}
	r.seq.users++
	created := *u
	created.ID = r.seq.users
	if created.CreatedAt.IsZero() {
		created.CreatedAt = r.now()
	}
	r.users[created.ID] = created
	return &created, nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceUser, id)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, id := range sortedIDs(r.users) {
		u := r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.NewNotFound(domain.ResourceUser, id)
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.NewNotFound(domain.ResourceUser, id)
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Data
// ---------------------------------------------------------------------------

type dataRepo DB

func (r *dataRepo) Create(_ context.Context, d *domain.Data) (*domain.Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq.data++
	created := *d
	created.ID = r.seq.data
	r.data[created.ID] = created
	return &created, nil
}

func (r *dataRepo) FindByID(_ context.Context, id int64) (*domain.Data, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.data[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceData, id)
	}
	return &d, nil
}

func (r *dataRepo) matching(filter query.DataFilter) []*domain.Data {
	out := []*domain.Data{}
	for _, id := range sortedIDs(r.data) {
		d := r.data[id]
		if filter.Matches(d) {
			out = append(out, &d)
		}
	}
	return out
}

func (r *dataRepo) List(_ context.Context, filter query.DataFilter, page query.PageRequest) ([]*domain.Data, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.matching(filter)
	return query.Slice(all, page), int64(len(all)), nil
}

func (r *dataRepo) Export(_ context.Context, filter query.DataFilter) ([]*domain.Data, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.matching(filter), nil
}

func (r *dataRepo) Update(_ context.Context, d *domain.Data) (*domain.Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[d.ID]; !ok {
		return nil, domain.NewNotFound(domain.ResourceData, d.ID)
	}
	r.data[d.ID] = *d
	updated := *d
	return &updated, nil
}

func (r *dataRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return domain.NewNotFound(domain.ResourceData, id)
	}
	delete(r.data, id)
	return nil
}

// ---------------------------------------------------------------------------
// Services
// ---------------------------------------------------------------------------

type serviceRepo DB

func (r *serviceRepo) nameTaken(name string, selfID int64) bool {
	for id, s := range r.services {
		if id != selfID && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func (r *serviceRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(s.Name, 0) {
		return nil, domain.NewConflict(domain.ResourceService, "service")
	}
	r.seq.services++
	created := *s
	created.ID = r.seq.services
	created.CreatedAt = r.now()
	created.UpdatedAt = created.CreatedAt
	r.services[created.ID] = created
	return &created, nil
}

func (r *serviceRepo) FindByID(_ context.Context, id int64) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceService, id)
	}
	return &s, nil
}

func (r *serviceRepo) List(_ context.Context) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Service, 0, len(r.services))
	for _, id := range sortedIDs(r.services) {
		s := r.services[id]
		out = append(out, &s)
	}
	return out, nil
}

func (r *serviceRepo) Update(_ context.Context, s *domain.Service) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.services[s.ID]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceService, s.ID)
	}
	if r.nameTaken(s.Name, s.ID) {
		return nil, domain.NewConflict(domain.ResourceService, "service")
	}
	updated := *s
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.now()
	r.services[s.ID] = updated
	return &updated, nil
}

func (r *serviceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return domain.NewNotFound(domain.ResourceService, id)
	}
	delete(r.services, id)
	return nil
}

// ---------------------------------------------------------------------------
// Uniqueness lookup
// ---------------------------------------------------------------------------

type lookup DB

func (l *lookup) Exists(_ context.Context, field domain.UniqueField, value string, excludeID int64) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	switch field {
	case domain.UniqueUserEmail:
		for id, u := range l.users {
			if id != excludeID && u.Email == value {
				return true, nil
			}
		}
	case domain.UniqueUserPhone:
		for id, u := range l.users {
			if id != excludeID && u.Phone == value {
				return true, nil
			}
		}
	case domain.UniqueServiceName:
		return (*serviceRepo)(l).nameTaken(value, excludeID), nil
	}
	return false, nil
}
