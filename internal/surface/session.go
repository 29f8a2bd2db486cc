// surface реализует контур взаимодействия поверх движка вовлечения:
// одна сессия на родительский контент, явный конечный автомат состояний
// и перезагрузочная модель консистентности — каждая успешная мутация
// перезапускает полный конвейер чтения (list + rehydrate), никогда не
// латая выдачу в памяти. Ценой лишних обращений покупается гарантия:
// отображаемые элементы, имена и аватары не отстают от хранилища больше,
// чем на один round trip.
package surface

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/pkg/log"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/service"
)

var (
	// ErrBusy — по этому родителю уже идёт мутация; повторный сабмит
	// отклоняется до обращения к хранилищу.
	ErrBusy = errors.New("mutation in flight")
	// ErrInvalidTransition — операция недопустима в текущем состоянии
	// (например, подтверждение удаления без запроса).
	ErrInvalidTransition = errors.New("invalid transition")
)

// Engine — контракт движка, который потребляет контур.
// Реализуется service.Service; в тестах подменяется моками.
type Engine interface {
	ListEngagement(ctx context.Context, viewer models.ViewerContext, parentID uuid.UUID) (*models.Listing, error)
	SubmitEngagement(ctx context.Context, viewer models.ViewerContext, in service.SubmitInput) (*models.EngagementItem, error)
	DeleteEngagement(ctx context.Context, viewer models.ViewerContext, id string) error
}

// State — именованное состояние сессии.
type State int8

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateLoadError
	StateSubmitting
	StateSubmitError
	StateConfirmingDelete
	StateDeleting
	StateDeleteError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadError:
		return "load_error"
	case StateSubmitting:
		return "submitting"
	case StateSubmitError:
		return "submit_error"
	case StateConfirmingDelete:
		return "confirming_delete"
	case StateDeleting:
		return "deleting"
	case StateDeleteError:
		return "delete_error"
	default:
		return "unknown"
	}
}

// Session — контур взаимодействия по одному parentID.
//
// Переходы:
//
//	Idle -> Loading -> Loaded | LoadError
//	Loaded -> Submitting -> Loaded (reload) | SubmitError (ввод сохранён)
//	Loaded -> ConfirmingDelete -> Deleting -> Loaded (reload) | DeleteError
//
// Прямого перехода Loaded -> Deleting нет: удаление всегда проходит через
// подтверждение. В один момент времени по родителю выполняется не более
// одной мутации.
type Session struct {
	engine   Engine
	parentID uuid.UUID

	mu            sync.Mutex
	state         State
	listing       *models.Listing
	pendingDelete string
	draft         *service.SubmitInput
	lastErr       error
}

// NewSession создаёт сессию в состоянии Idle.
func NewSession(engine Engine, parentID uuid.UUID) *Session {
	return &Session{
		engine:   engine,
		parentID: parentID,
		state:    StateIdle,
	}
}

// State возвращает текущее состояние.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Listing возвращает последнюю успешную выдачу (nil до первой загрузки).
func (s *Session) Listing() *models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listing
}

// Draft возвращает сохранённый ввод после неудачного сабмита (nil, если его нет).
func (s *Session) Draft() *service.SubmitInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// PendingDelete возвращает id элемента, ожидающего подтверждения удаления.
func (s *Session) PendingDelete() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete
}

// LastErr возвращает ошибку, приведшую в текущее ошибочное состояние.
func (s *Session) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load запускает конвейер чтения. Допустим из Idle, Loaded и любого
// ошибочного состояния (повтор); во время Loading/мутации — ErrBusy.
func (s *Session) Load(ctx context.Context, viewer models.ViewerContext) error {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StateLoaded, StateLoadError, StateSubmitError, StateDeleteError:
		s.state = StateLoading
	case StateLoading, StateSubmitting, StateDeleting:
		s.mu.Unlock()
		return ErrBusy
	default:
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	s.mu.Unlock()

	listing, err := s.engine.ListEngagement(ctx, viewer, s.parentID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateLoadError
		s.lastErr = err
		return err
	}

	s.state = StateLoaded
	s.listing = listing
	s.lastErr = nil
	return nil
}

// Submit отправляет новый элемент. Допустим из Loaded и SubmitError
// (повтор с сохранённым вводом); во время любой незавершённой операции —
// ErrBusy, из ConfirmingDelete — ErrInvalidTransition.
//
// Исходы:
//   - успех: полная перезагрузка выдачи, состояние Loaded, черновик очищен;
//   - ErrDuplicateReview: перезагрузка (выдача перейдёт в «отзыв уже
//     оставлен»), черновик очищен, ошибка возвращается как уведомление;
//   - прочие ошибки: SubmitError, ввод сохранён для повторной отправки.
func (s *Session) Submit(ctx context.Context, viewer models.ViewerContext, in service.SubmitInput) (*models.EngagementItem, error) {
	s.mu.Lock()
	switch s.state {
	case StateLoaded, StateSubmitError:
		s.state = StateSubmitting
		draft := in
		s.draft = &draft
	case StateLoading, StateSubmitting, StateDeleting:
		s.mu.Unlock()
		return nil, ErrBusy
	default:
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	s.mu.Unlock()

	item, err := s.engine.SubmitEngagement(ctx, viewer, in)

	if err != nil {
		if errors.Is(err, service.ErrDuplicateReview) {
			// Отзыв уже есть: не ошибка формы, а повод показать
			// актуальное состояние «уже оставлен».
			s.reload(ctx, viewer, true)
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = StateSubmitError
		s.lastErr = err
		return nil, err
	}

	s.reload(ctx, viewer, true)
	return item, nil
}

// RequestDelete переводит сессию в ожидание подтверждения удаления.
// Допустим из Loaded и DeleteError (повторная попытка).
func (s *Session) RequestDelete(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateLoaded, StateDeleteError:
		s.state = StateConfirmingDelete
		s.pendingDelete = itemID
		return nil
	default:
		return ErrInvalidTransition
	}
}

// CancelDelete отменяет подтверждение и возвращает сессию в Loaded.
func (s *Session) CancelDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateConfirmingDelete {
		return ErrInvalidTransition
	}

	s.state = StateLoaded
	s.pendingDelete = ""
	return nil
}

// ConfirmDelete выполняет удаление запрошенного элемента. Допустим только
// из ConfirmingDelete — прямого пути Loaded -> Deleting нет.
//
// Исходы:
//   - успех: полная перезагрузка, Loaded;
//   - ErrNotFound (элемент удалён конкурентно): восстановление
//     перезагрузкой, не фатально — цель достигнута;
//   - прочие ошибки (включая ErrUnauthorized): DeleteError, управление
//     повторной попыткой снова доступно через RequestDelete.
func (s *Session) ConfirmDelete(ctx context.Context, viewer models.ViewerContext) error {
	s.mu.Lock()
	if s.state != StateConfirmingDelete {
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	id := s.pendingDelete
	s.state = StateDeleting
	s.mu.Unlock()

	err := s.engine.DeleteEngagement(ctx, viewer, id)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// Элемент исчез до нас — не повторный успех, но и не сбой:
			// выдача просто перечитывается.
			log.From(ctx).Warn("delete target vanished, reloading",
				"parent_id", s.parentID.String(),
				"id", id,
			)

			s.mu.Lock()
			s.pendingDelete = ""
			s.mu.Unlock()
			s.reloadFromDeleting(ctx, viewer)
			return nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = StateDeleteError
		s.pendingDelete = ""
		s.lastErr = err
		return err
	}

	s.mu.Lock()
	s.pendingDelete = ""
	s.mu.Unlock()
	s.reloadFromDeleting(ctx, viewer)
	return nil
}

// reload перечитывает выдачу после мутации. clearDraft очищает черновик
// (успешный сабмит либо переход в «отзыв уже оставлен»).
// Ошибка перезагрузки переводит сессию в LoadError; сама мутация при этом
// уже состоялась, и её результат вызывающему не искажается.
func (s *Session) reload(ctx context.Context, viewer models.ViewerContext, clearDraft bool) {
	listing, err := s.engine.ListEngagement(ctx, viewer, s.parentID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if clearDraft {
		s.draft = nil
	}

	if err != nil {
		s.state = StateLoadError
		s.lastErr = err
		return
	}

	s.state = StateLoaded
	s.listing = listing
	s.lastErr = nil
}

// reloadFromDeleting — та же перезагрузка, без работы с черновиком.
func (s *Session) reloadFromDeleting(ctx context.Context, viewer models.ViewerContext) {
	s.reload(ctx, viewer, false)
}
