// postgres предоставляет реализацию identity.Directory на базе PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/identity"
)

type Directory struct {
	db      *pgxpool.Pool
	avatars identity.AvatarResolver
}

// New создает и инициализирует пул соединений к PostgreSQL.
// avatars опционален (nil — ссылки строятся только из avatar_url профиля).
func New(ctx context.Context, dbURL string, avatars identity.AvatarResolver) (*Directory, error) {
	const op = "identity/postgres/New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Directory{db: db, avatars: avatars}, nil
}

// Close закрывает пул соединений.
// Должен вызываться при остановке приложения.
func (d *Directory) Close() {
	d.db.Close()
}

// Проверка выполнения контракта верхнего уровня.
var _ identity.Directory = (*Directory)(nil)
