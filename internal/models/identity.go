package models

import "github.com/google/uuid"

// IdentitySnapshot — актуальный срез профиля пользователя на момент запроса
// (никогда — на момент создания элемента). Владеет и изменяет профиль
// users-подсистема; здесь он только читается.
type IdentitySnapshot struct {
	UserID      uuid.UUID
	DisplayName string
	AvatarURL   string
}

// ViewerContext — идентичность и роль актора, выполняющего действие.
// UserID == uuid.Nil означает анонимного зрителя.
// Контекст передаётся явно в каждый вызов — движок не читает глобальную сессию.
type ViewerContext struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// Authenticated сообщает, аутентифицирован ли зритель.
func (v ViewerContext) Authenticated() bool {
	return v.UserID != uuid.Nil
}
