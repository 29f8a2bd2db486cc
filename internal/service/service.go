// service содержит бизнес-логику engagement-сервиса.
package service

import (
	"errors"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/config"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/identity"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры (длина текста, диапазон оценки и т.п.).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated — действие требует аутентифицированного зрителя.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized — зритель аутентифицирован, но не имеет права на действие.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateReview — у зрителя уже есть отзыв на этот товар.
	ErrDuplicateReview = errors.New("duplicate review")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — движок вовлечения: чтение с регидрацией, создание и удаление
// элементов. Справочник профилей опрашивается только на чтение; его отказ
// по отдельному автору не является ошибкой операции.
type Service struct {
	storage   storage.Storage
	directory identity.Directory
	cfg       config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, directory identity.Directory, cfg config.Config) *Service {
	return &Service{
		storage:   storage,
		directory: directory,
		cfg:       cfg,
	}
}
