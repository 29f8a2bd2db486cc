// storage содержит контракт контент-store engagement-сервиса.
//
// Хранилище — единственный источник истины: обогащённые элементы, флаги
// доступности удаления и признак «отзыв уже оставлен» пересчитываются из него
// при каждой перезагрузке, а не мутируются на месте.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateReview — нарушение уникальности (parent_id, author_id) для отзывов.
	ErrDuplicateReview = errors.New("duplicate review")
)

// Storage описывает операции над элементами вовлечения и ссылками на родителей.
type Storage interface {
	// CreateItem вставляет элемент. Входной item должен содержать ParentID,
	// AuthorID, AuthorName, Kind и Body (для KindReview — также Rating);
	// ID и CreatedAt вычисляются хранилищем.
	// Для KindReview уникальность (parent_id, author_id) обеспечивает
	// частичный уникальный индекс; при конфликте — ErrDuplicateReview.
	// Авторитетна именно эта проверка: клиентская подсказка в выдаче — только
	// оптимизация UI.
	CreateItem(ctx context.Context, item models.EngagementItem) (*models.EngagementItem, error)

	// DeleteItem удаляет элемент безвозвратно. Авторизация — ответственность
	// вызывающего, хранилище её не проверяет.
	// Если запись не найдена (в т.ч. повторное удаление) — ErrNotFound.
	DeleteItem(ctx context.Context, id string) error

	// ItemByID возвращает элемент по его строковому идентификатору.
	// Если запись не найдена — ErrNotFound.
	ItemByID(ctx context.Context, id string) (*models.EngagementItem, error)

	// ListByParent возвращает элементы родителя в порядке создания
	// (created_at ASC, _id ASC). Родитель без элементов — не ошибка,
	// возвращается пустая выдача.
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.EngagementItem, error)

	// ParentRefByID возвращает ссылку на родительский контент (пост/товар).
	// Если записи нет — ErrNotFound.
	ParentRefByID(ctx context.Context, parentID uuid.UUID) (*models.ParentContentRef, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
