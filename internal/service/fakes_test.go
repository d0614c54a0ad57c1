package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]domain.Profile{}}
}

func (r *memProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.profiles[p.UserID]; ok {
		p.ID, p.CreatedAt = old.ID, old.CreatedAt
	} else {
		p.ID, p.CreatedAt = primitive.NewObjectID(), time.Now().UTC()
	}
	r.profiles[p.UserID] = *p
	return nil
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// memPlanRepo keeps plans in insertion order.
type memPlanRepo struct {
	mu    sync.Mutex
	plans []domain.GeneratedPlan
}

func (r *memPlanRepo) Create(_ context.Context, p *domain.GeneratedPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	r.plans = append(r.plans, *p)
	return p.ID, nil
}

func (r *memPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.GeneratedPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPlanRepo) ListByUserID(_ context.Context, userID string, limit int64) ([]domain.GeneratedPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.GeneratedPlan{}
	for i := len(r.plans) - 1; i >= 0; i-- {
		if r.plans[i].UserID != userID {
			continue
		}
		out = append(out, r.plans[i])
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *memPlanRepo) SetLocked(_ context.Context, id primitive.ObjectID, userID string, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		if r.plans[i].ID == id && r.plans[i].UserID == userID {
			r.plans[i].Plan.Locked = locked
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memPlanRepo) SetExportKey(_ context.Context, id primitive.ObjectID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		if r.plans[i].ID == id {
			r.plans[i].ExportKey = key
			return nil
		}
	}
	return repository.ErrNotFound
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	putErr  error
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

func (s *memStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.objects[key] = body
	return nil
}

func (s *memStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://storage.test/" + key + "?sig=x", nil
}

func (s *memStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
