// identity содержит контракт справочника профилей (Identity Directory).
//
// Справочник возвращает актуальный срез профиля на момент запроса; профилями
// владеет и изменяет users-подсистема витрины, здесь они только читаются.
// Любой отдельный lookup может завершиться ошибкой — вызывающая сторона
// обязана уметь откатываться на снапшот, сохранённый в самом элементе.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
)

var (
	// ErrNotFound — профиль отсутствует (пользователь удалён или ещё не создан).
	ErrNotFound = errors.New("not found")
)

// Directory — контракт чтения профилей.
type Directory interface {
	// ProfileByID возвращает актуальный снапшот профиля по user_id.
	// Если записи нет — ErrNotFound.
	ProfileByID(ctx context.Context, userID uuid.UUID) (*models.IdentitySnapshot, error)
}

// AvatarResolver строит публичную ссылку на объект аватара по его ключу
// в бакете. Нужен для профилей, у которых зафиксирован только avatar_key
// (публичный base URL бакета не сконфигурирован).
type AvatarResolver interface {
	AvatarURL(ctx context.Context, key string) (string, error)
}
