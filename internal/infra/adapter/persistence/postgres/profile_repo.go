package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepo{db: db}
}

func (repo *ProfileRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	const query = `SELECT id, email, role FROM profiles WHERE id = $1`
	var (
		p    entity.Profile
		role string
	)
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	p.Role = entity.Role(role)
	return &p, nil
}
