package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	p := &Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, phone, updated_at
		FROM profiles
		WHERE id = $1
	`, userID).Scan(&p.ID, &p.FullName, &p.Phone, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *Profile) error {
	err := r.db.QueryRow(ctx, `
		UPDATE profiles
		SET full_name = $1,
		    phone = $2,
		    updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, p.FullName, p.Phone, p.ID).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// InMemoryRepository is used by tests.
type InMemoryRepository struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewInMemoryRepository(seed ...Profile) *InMemoryRepository {
	r := &InMemoryRepository{profiles: make(map[string]Profile)}
	for _, p := range seed {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.profiles[p.ID] = *p
	return nil
}
