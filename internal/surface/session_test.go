package surface

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/service"
	mocks "github.com/pribylovaa/go-coffee-shop/engagement-service/mocks/enginemocks"
)

func testViewer() models.ViewerContext {
	return models.ViewerContext{UserID: uuid.New()}
}

func testListing(parentID uuid.UUID) *models.Listing {
	return &models.Listing{
		Parent: models.ParentContentRef{ID: parentID},
	}
}

// loadedSession — сессия, доведённая до Loaded одним успешным Load.
func loadedSession(t *testing.T, engine *mocks.MockEngine, parentID uuid.UUID, viewer models.ViewerContext) *Session {
	t.Helper()

	engine.EXPECT().
		ListEngagement(gomock.Any(), viewer, parentID).
		Return(testListing(parentID), nil)

	s := NewSession(engine, parentID)
	require.NoError(t, s.Load(context.Background(), viewer))
	require.Equal(t, StateLoaded, s.State())

	return s
}

func TestSession_Load_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	listing := testListing(parentID)
	engine.EXPECT().
		ListEngagement(gomock.Any(), viewer, parentID).
		Return(listing, nil)

	s := NewSession(engine, parentID)
	require.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Load(context.Background(), viewer))
	require.Equal(t, StateLoaded, s.State())
	require.Equal(t, listing, s.Listing())
	require.NoError(t, s.LastErr())
}

func TestSession_Load_ErrorThenRetry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	gomock.InOrder(
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(nil, service.ErrInternal),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	s := NewSession(engine, parentID)

	err := s.Load(context.Background(), viewer)
	require.ErrorIs(t, err, service.ErrInternal)
	require.Equal(t, StateLoadError, s.State())
	require.Nil(t, s.Listing())

	// Повтор из LoadError допустим.
	require.NoError(t, s.Load(context.Background(), viewer))
	require.Equal(t, StateLoaded, s.State())
	require.NotNil(t, s.Listing())
}

func TestSession_Submit_SuccessReloads(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	in := service.SubmitInput{
		ParentID:   parentID,
		Kind:       models.KindComment,
		Body:       "отличный товар",
		AuthorName: "alice",
	}
	created := &models.EngagementItem{ID: "abc", ParentID: parentID, Kind: models.KindComment}

	gomock.InOrder(
		engine.EXPECT().
			SubmitEngagement(gomock.Any(), viewer, in).
			Return(created, nil),
		// Перезагрузочная модель: успех мутации запускает полный конвейер чтения.
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	item, err := s.Submit(context.Background(), viewer, in)
	require.NoError(t, err)
	require.Equal(t, created, item)
	require.Equal(t, StateLoaded, s.State())
	require.Nil(t, s.Draft())
}

func TestSession_Submit_ErrorPreservesDraft(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	in := service.SubmitInput{
		ParentID:   parentID,
		Kind:       models.KindReview,
		Body:       "ok",
		Rating:     5,
		AuthorName: "alice",
	}

	gomock.InOrder(
		engine.EXPECT().
			SubmitEngagement(gomock.Any(), viewer, in).
			Return(nil, service.ErrInvalidArgument),
		// Повтор из SubmitError с тем же вводом.
		engine.EXPECT().
			SubmitEngagement(gomock.Any(), viewer, in).
			Return(&models.EngagementItem{ID: "abc"}, nil),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	_, err := s.Submit(context.Background(), viewer, in)
	require.ErrorIs(t, err, service.ErrInvalidArgument)
	require.Equal(t, StateSubmitError, s.State())
	require.NotNil(t, s.Draft())
	require.Equal(t, in, *s.Draft())

	_, err = s.Submit(context.Background(), viewer, in)
	require.NoError(t, err)
	require.Equal(t, StateLoaded, s.State())
	require.Nil(t, s.Draft())
}

func TestSession_Submit_DuplicateReviewReloads(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	in := service.SubmitInput{
		ParentID:   parentID,
		Kind:       models.KindReview,
		Body:       "повторный отзыв",
		Rating:     4,
		AuthorName: "alice",
	}

	reloaded := testListing(parentID)
	reloaded.ViewerHasReview = true

	gomock.InOrder(
		engine.EXPECT().
			SubmitEngagement(gomock.Any(), viewer, in).
			Return(nil, service.ErrDuplicateReview),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(reloaded, nil),
	)

	_, err := s.Submit(context.Background(), viewer, in)
	require.ErrorIs(t, err, service.ErrDuplicateReview)
	// Не ошибка формы: сессия показывает актуальное «отзыв уже оставлен».
	require.Equal(t, StateLoaded, s.State())
	require.Nil(t, s.Draft())
	require.True(t, s.Listing().ViewerHasReview)
}

func TestSession_Submit_BusyRejectedBeforeEngine(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	in := service.SubmitInput{
		ParentID:   parentID,
		Kind:       models.KindComment,
		Body:       "первый",
		AuthorName: "alice",
	}

	release := make(chan struct{})
	started := make(chan struct{})

	gomock.InOrder(
		engine.EXPECT().
			SubmitEngagement(gomock.Any(), viewer, in).
			DoAndReturn(func(context.Context, models.ViewerContext, service.SubmitInput) (*models.EngagementItem, error) {
				close(started)
				<-release
				return &models.EngagementItem{ID: "abc"}, nil
			}),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Submit(context.Background(), viewer, in)
	}()

	<-started

	// Вторая мутация по тому же родителю отклоняется до обращения к движку:
	// на SubmitEngagement нет второго ожидания, и ctrl.Finish это проверит.
	_, err := s.Submit(context.Background(), viewer, in)
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	<-done

	require.Equal(t, StateLoaded, s.State())
}

func TestSession_Delete_ConfirmAndCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	require.NoError(t, s.RequestDelete("item-1"))
	require.Equal(t, StateConfirmingDelete, s.State())
	require.Equal(t, "item-1", s.PendingDelete())

	// Отмена возвращает в Loaded без обращения к движку.
	require.NoError(t, s.CancelDelete())
	require.Equal(t, StateLoaded, s.State())
	require.Empty(t, s.PendingDelete())

	gomock.InOrder(
		engine.EXPECT().
			DeleteEngagement(gomock.Any(), viewer, "item-1").
			Return(nil),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	require.NoError(t, s.RequestDelete("item-1"))
	require.NoError(t, s.ConfirmDelete(context.Background(), viewer))
	require.Equal(t, StateLoaded, s.State())
	require.Empty(t, s.PendingDelete())
}

func TestSession_Delete_NotFoundRecoversByReload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	gomock.InOrder(
		engine.EXPECT().
			DeleteEngagement(gomock.Any(), viewer, "gone").
			Return(service.ErrNotFound),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	require.NoError(t, s.RequestDelete("gone"))
	// Конкурентное исчезновение цели не фатально: перечитали и продолжили.
	require.NoError(t, s.ConfirmDelete(context.Background(), viewer))
	require.Equal(t, StateLoaded, s.State())
}

func TestSession_Delete_ErrorThenRetry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	gomock.InOrder(
		engine.EXPECT().
			DeleteEngagement(gomock.Any(), viewer, "item-1").
			Return(service.ErrUnauthorized),
		engine.EXPECT().
			DeleteEngagement(gomock.Any(), viewer, "item-1").
			Return(nil),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(testListing(parentID), nil),
	)

	require.NoError(t, s.RequestDelete("item-1"))

	err := s.ConfirmDelete(context.Background(), viewer)
	require.ErrorIs(t, err, service.ErrUnauthorized)
	require.Equal(t, StateDeleteError, s.State())

	// Повтор снова проходит через подтверждение.
	require.NoError(t, s.RequestDelete("item-1"))
	require.NoError(t, s.ConfirmDelete(context.Background(), viewer))
	require.Equal(t, StateLoaded, s.State())
}

func TestSession_Delete_ReloadFailureAfterSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()

	s := loadedSession(t, engine, parentID, viewer)

	gomock.InOrder(
		engine.EXPECT().
			DeleteEngagement(gomock.Any(), viewer, "item-1").
			Return(nil),
		engine.EXPECT().
			ListEngagement(gomock.Any(), viewer, parentID).
			Return(nil, service.ErrInternal),
	)

	require.NoError(t, s.RequestDelete("item-1"))

	// Удаление состоялось; сбой перезагрузки не искажает его результат.
	require.NoError(t, s.ConfirmDelete(context.Background(), viewer))
	require.Equal(t, StateLoadError, s.State())
	require.ErrorIs(t, s.LastErr(), service.ErrInternal)
}

func TestSession_InvalidTransitions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEngine(ctrl)
	parentID := uuid.New()
	viewer := testViewer()
	ctx := context.Background()

	s := NewSession(engine, parentID)

	// Из Idle допустим только Load.
	_, err := s.Submit(ctx, viewer, service.SubmitInput{})
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, s.RequestDelete("x"), ErrInvalidTransition)
	require.ErrorIs(t, s.CancelDelete(), ErrInvalidTransition)
	require.ErrorIs(t, s.ConfirmDelete(ctx, viewer), ErrInvalidTransition)

	engine.EXPECT().
		ListEngagement(gomock.Any(), viewer, parentID).
		Return(testListing(parentID), nil)
	require.NoError(t, s.Load(ctx, viewer))

	// Прямого пути Loaded -> Deleting нет.
	require.ErrorIs(t, s.ConfirmDelete(ctx, viewer), ErrInvalidTransition)
	require.ErrorIs(t, s.CancelDelete(), ErrInvalidTransition)

	// Во время подтверждения сабмит недопустим.
	require.NoError(t, s.RequestDelete("item-1"))
	_, err = s.Submit(ctx, viewer, service.SubmitInput{})
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, s.Load(ctx, viewer), ErrInvalidTransition)
}
