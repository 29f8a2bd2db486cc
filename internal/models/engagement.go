// Package models содержит доменные сущности engagement-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind — вид элемента вовлечения.
type Kind string

const (
	// KindComment — комментарий к посту блога.
	KindComment Kind = "comment"
	// KindReview — отзыв о товаре (с оценкой 1..5).
	KindReview Kind = "review"
)

// Valid сообщает, входит ли значение в допустимый набор.
func (k Kind) Valid() bool {
	return k == KindComment || k == KindReview
}

// EngagementItem — внутренняя доменная модель элемента вовлечения (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB. Наружу/вовнутрь конвертируется в string.
//   - ParentID/AuthorID — UUID из смежных подсистем витрины (каталог/блог/пользователи).
//   - AuthorName/AuthorAvatarURL — снапшот профиля на момент создания; актуальные
//     данные подтягиваются при чтении (см. rehydrate), снапшот — резерв на случай
//     недоступности справочника.
//   - Rating заполняется только для KindReview (1..5); для комментария всегда 0.
//   - Для KindReview действует уникальность (parent_id, author_id) — не более
//     одного отзыва пользователя на товар.
type EngagementItem struct {
	ID              string
	ParentID        uuid.UUID
	AuthorID        uuid.UUID
	AuthorName      string
	AuthorAvatarURL string
	Kind            Kind
	Body            string
	Rating          int32
	CreatedAt       time.Time
}

// ParentContentRef — ссылка на родительский контент витрины.
// У постов блога есть владелец (автор поста), у товаров владельца нет —
// OwnerID == uuid.Nil означает «без владельца».
type ParentContentRef struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// HasOwner сообщает, есть ли у родительского контента владелец.
func (p ParentContentRef) HasOwner() bool {
	return p.OwnerID != uuid.Nil
}

// EnrichedItem — элемент вовлечения, обогащённый актуальными данными профиля
// и признаком доступности удаления для текущего зрителя.
// DisplayName/AvatarURL — результат слияния «живого» снапшота со снапшотом
// на момент создания (живые данные имеют приоритет, см. mergeSnapshot).
type EnrichedItem struct {
	EngagementItem

	DisplayName string
	AvatarURL   string
	CanDelete   bool
}

// Listing — результат чтения вовлечения по одному родителю.
// ViewerHasReview — клиентская подсказка «отзыв уже оставлен» (не авторитетна:
// источником истины остаётся уникальный индекс хранилища).
type Listing struct {
	Parent          ParentContentRef
	Items           []EnrichedItem
	ViewerHasReview bool
}
