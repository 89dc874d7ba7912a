package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.NewConflict(domain.ResourceUser, "email")
		}
	}
	r.nextID++
	clone := *u
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceUser, id)
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.NewNotFound(domain.ResourceUser, id)
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFound(domain.ResourceUser, id)
	}
	delete(r.users, id)
	return nil
}

type stubDataRepo struct {
	items      map[int64]*domain.Data
	nextID     int64
	lastFilter query.DataFilter
	lastPage   query.PageRequest
}

func newStubDataRepo() *stubDataRepo {
	return &stubDataRepo{items: make(map[int64]*domain.Data)}
}

func (r *stubDataRepo) Create(_ context.Context, d *domain.Data) (*domain.Data, error) {
	r.nextID++
	clone := *d
	clone.ID = r.nextID
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDataRepo) FindByID(_ context.Context, id int64) (*domain.Data, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceData, id)
	}
	clone := *d
	return &clone, nil
}

func (r *stubDataRepo) matching(filter query.DataFilter) []*domain.Data {
	var out []*domain.Data
	for _, d := range r.items {
		if filter.Matches(*d) {
			clone := *d
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubDataRepo) List(_ context.Context, filter query.DataFilter, page query.PageRequest) ([]*domain.Data, int64, error) {
	r.lastFilter, r.lastPage = filter, page
	all := r.matching(filter)
	return query.Slice(all, page), int64(len(all)), nil
}

func (r *stubDataRepo) Export(_ context.Context, filter query.DataFilter) ([]*domain.Data, error) {
	r.lastFilter = filter
	return r.matching(filter), nil
}

func (r *stubDataRepo) Update(_ context.Context, d *domain.Data) (*domain.Data, error) {
	if _, ok := r.items[d.ID]; !ok {
		return nil, domain.NewNotFound(domain.ResourceData, d.ID)
	}
	clone := *d
	r.items[d.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDataRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFound(domain.ResourceData, id)
	}
	delete(r.items, id)
	return nil
}

type stubServiceRepo struct {
	items  map[int64]*domain.Service
	nextID int64
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{items: make(map[int64]*domain.Service)}
}

func (r *stubServiceRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	r.nextID++
	clone := *s
	clone.ID = r.nextID
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceService, id)
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) List(_ context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.items {
		clone := *s
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if _, ok := r.items[s.ID]; !ok {
		return nil, domain.NewNotFound(domain.ResourceService, s.ID)
	}
	clone := *s
	clone.UpdatedAt = time.Now().UTC()
	r.items[s.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFound(domain.ResourceService, id)
	}
	delete(r.items, id)
	return nil
}

// stubLookup answers uniqueness checks from the stub repositories.
type stubLookup struct {
	users    *stubUserRepo
	services *stubServiceRepo
}

func (l *stubLookup) Exists(_ context.Context, field domain.UniqueField, value string, excludeID int64) (bool, error) {
	switch field {
	case domain.UniqueUserEmail:
		for id, u := range l.users.users {
			if u.Email == value && id != excludeID {
				return true, nil
			}
		}
	case domain.UniqueUserPhone:
		for id, u := range l.users.users {
			if u.Phone == value && id != excludeID {
				return true, nil
			}
		}
	case domain.UniqueServiceName:
		for id, s := range l.services.items {
			if strings.EqualFold(s.Name, value) && id != excludeID {
				return true, nil
			}
		}
	}
	return false, nil
}

type stubImageStore struct {
	files map[string][]byte
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{files: make(map[string][]byte)}
}

func (s *stubImageStore) Save(_ context.Context, name string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.files[name] = buf.Bytes()
	return nil
}

func (s *stubImageStore) Path(name string) (string, error) {
	return "/tmp/" + name, nil
}
