package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	List(ctx context.Context) ([]domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
}

type settingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var setting domain.Setting
	query := `SELECT key, value, updated_at FROM settings WHERE key = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &setting, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	settings := []domain.Setting{}
	err := conn(ctx, r.db).SelectContext(ctx, &settings, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	return settings, err
}

func (r *settingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING updated_at`

	return conn(ctx, r.db).QueryRowxContext(ctx, query, setting.Key, setting.Value).Scan(&setting.UpdatedAt)
}
