package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/pkg/log"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/storage"
)

// Входные структуры сервисного слоя.

// SubmitInput — создание комментария или отзыва.
// Правила:
//   - ParentID, Kind и Body обязательны всегда;
//   - Rating обязателен для KindReview (1..5) и запрещён для KindComment;
//   - AuthorName — снапшот имени из сессионного провайдера, сохраняется
//     рядом с элементом как резерв на случай недоступности справочника;
//   - AuthorAvatarURL опционален (аналогичный снапшот аватара).
type SubmitInput struct {
	ParentID        uuid.UUID
	Kind            models.Kind
	Body            string
	Rating          int32
	AuthorName      string
	AuthorAvatarURL string
}

// ListEngagement — выдача вовлечения по родителю: чтение из хранилища,
// регидрация профилей и расчёт признаков для зрителя.
//
// Валидация:
//   - parentID обязателен (uuid.Nil -> ErrInvalidArgument).
//
// Поведение/ошибки:
//   - ErrNotFound — родительский контент не существует;
//   - ErrInternal — ошибки стораджа/БД/контекста.
//
// Анонимному зрителю выдача доступна: CanDelete у всех элементов false,
// ViewerHasReview false.
func (s *Service) ListEngagement(ctx context.Context, viewer models.ViewerContext, parentID uuid.UUID) (*models.Listing, error) {
	const op = "service/engagement/ListEngagement"

	lg := log.From(ctx).With("op", op, "parent_id", parentID.String())

	if parentID == uuid.Nil {
		lg.Warn("invalid argument: empty parent_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	parent, err := s.storage.ParentRefByID(ctx, parentID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ParentRefByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	items, err := s.storage.ListByParent(ctx, parentID)
	if err != nil {
		lg.Error("storage error on ListByParent", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	enriched := s.rehydrate(ctx, items)
	for i := range enriched {
		enriched[i].CanDelete = CanDelete(viewer, enriched[i].EngagementItem, *parent)
	}

	return &models.Listing{
		Parent:          *parent,
		Items:           enriched,
		ViewerHasReview: viewer.Authenticated() && !CanSubmitReview(viewer, items),
	}, nil
}

// SubmitEngagement — бизнес-операция создания элемента вовлечения.
//
// Валидация:
//   - зритель должен быть аутентифицирован (иначе ErrUnauthenticated);
//   - ParentID обязателен, Kind — из допустимого набора;
//   - Body нормализуется (TrimSpace), длина в рунах — [BodyMin, BodyMax];
//   - Rating: для отзыва обязателен и в [1,5], для комментария запрещён;
//   - AuthorName нормализуется и не должен быть пустым.
//
// Поведение/ошибки:
//   - ErrNotFound — родительский контент не существует;
//   - ErrDuplicateReview — отзыв этого автора на этот товар уже есть
//     (конфликт уникального индекса — авторитетная проверка);
//   - ErrInternal — прочие ошибки стораджа/БД/контекста.
func (s *Service) SubmitEngagement(ctx context.Context, viewer models.ViewerContext, in SubmitInput) (*models.EngagementItem, error) {
	const op = "service/engagement/SubmitEngagement"

	lg := log.From(ctx).With(
		"op", op,
		"parent_id", in.ParentID.String(),
		"kind", string(in.Kind),
	)

	if !viewer.Authenticated() {
		lg.Warn("unauthenticated submit")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	lg = lg.With("author_id", viewer.UserID.String())

	if in.ParentID == uuid.Nil {
		lg.Warn("invalid argument: empty parent_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !in.Kind.Valid() {
		lg.Warn("invalid argument: unknown kind")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Body = strings.TrimSpace(in.Body)
	if n := utf8.RuneCountInString(in.Body); n < s.cfg.Limits.BodyMin || n > s.cfg.Limits.BodyMax {
		lg.Warn("invalid argument: body length out of range", "len", n)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Оценка присутствует тогда и только тогда, когда это отзыв.
	switch in.Kind {
	case models.KindReview:
		if in.Rating < 1 || in.Rating > 5 {
			lg.Warn("invalid argument: rating out of range", "rating", in.Rating)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	case models.KindComment:
		if in.Rating != 0 {
			lg.Warn("invalid argument: rating on comment")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}

	in.AuthorName = strings.TrimSpace(in.AuthorName)
	if in.AuthorName == "" {
		lg.Warn("invalid argument: empty author_name")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.storage.ParentRefByID(ctx, in.ParentID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ParentRefByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	item := models.EngagementItem{
		ParentID:        in.ParentID,
		AuthorID:        viewer.UserID,
		AuthorName:      in.AuthorName,
		AuthorAvatarURL: strings.TrimSpace(in.AuthorAvatarURL),
		Kind:            in.Kind,
		Body:            in.Body,
		Rating:          in.Rating,
	}

	result, err := s.storage.CreateItem(ctx, item)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateReview):
			lg.Warn("duplicate review")
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateReview)
		default:
			lg.Error("storage error on CreateItem", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// DeleteEngagement — удаление элемента после проверки прав (CanDelete).
//
// Валидация:
//   - id не должен быть пустым.
//
// Поведение/ошибки:
//   - ErrUnauthorized — зритель не имеет права удалить элемент (включая
//     анонимного зрителя; до этой ветки UI доходить не должен — кнопка
//     удаления для таких зрителей не отрисовывается);
//   - ErrNotFound — элемент не найден (в т.ч. уже удалён конкурентно);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) DeleteEngagement(ctx context.Context, viewer models.ViewerContext, id string) error {
	const op = "service/engagement/DeleteEngagement"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !viewer.Authenticated() {
		lg.Warn("unauthorized: anonymous viewer")
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	item, err := s.storage.ItemByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("item not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ItemByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	parent, err := s.storage.ParentRefByID(ctx, item.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Родительская запись исчезла: модерационное делегирование
			// недоступно, но автор и администратор всё ещё могут удалить.
			lg.Warn("parent ref missing, falling back to ownerless ref")
			parent = &models.ParentContentRef{ID: item.ParentID}
		default:
			lg.Error("storage error on ParentRefByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if !CanDelete(viewer, *item, *parent) {
		lg.Warn("unauthorized delete attempt", "viewer_id", viewer.UserID.String())
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	if err := s.storage.DeleteItem(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("item vanished before delete")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteItem", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}
