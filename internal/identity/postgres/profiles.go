package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/identity"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/pkg/log"
)

// ProfileByID возвращает актуальный снапшот профиля по user_id.
// Ошибки: identity.ErrNotFound при отсутствии записи, иные — как есть.
//
// Ссылка на аватар собирается по приоритету:
//  1. avatar_url, зафиксированный в профиле (публичный base URL бакета);
//  2. presigned GET по avatar_key, если сконфигурирован резолвер;
//  3. пустая строка (аватара нет).
//
// Ошибка резолвера не проваливает lookup: имя важнее картинки, профиль
// возвращается без ссылки на аватар.
func (d *Directory) ProfileByID(ctx context.Context, userID uuid.UUID) (*models.IdentitySnapshot, error) {
	const op = "identity/postgres/ProfileByID"

	q := `
	SELECT user_id, username, avatar_key, avatar_url
	FROM profiles
	WHERE user_id = $1
	`

	var (
		snap      models.IdentitySnapshot
		avatarKey string
		avatarURL string
	)

	err := d.db.QueryRow(ctx, q, userID).Scan(
		&snap.UserID,
		&snap.DisplayName,
		&avatarKey,
		&avatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, identity.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case avatarURL != "":
		snap.AvatarURL = avatarURL
	case avatarKey != "" && d.avatars != nil:
		url, rerr := d.avatars.AvatarURL(ctx, avatarKey)
		if rerr != nil {
			log.From(ctx).Warn("avatar resolve failed",
				"op", op,
				"user_id", userID.String(),
				"err", rerr,
			)
		} else {
			snap.AvatarURL = url
		}
	}

	return &snap, nil
}
