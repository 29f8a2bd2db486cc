package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/service"
)

// Engagement — контракт движка вовлечения, который потребляют хендлеры.
// Реализуется service.Service; в тестах подменяется моками.
type Engagement interface {
	ListEngagement(ctx context.Context, viewer models.ViewerContext, parentID uuid.UUID) (*models.Listing, error)
	SubmitEngagement(ctx context.Context, viewer models.ViewerContext, in service.SubmitInput) (*models.EngagementItem, error)
	DeleteEngagement(ctx context.Context, viewer models.ViewerContext, id string) error
}

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	engine Engagement
}

func New(engine Engagement) *Handlers {
	return &Handlers{engine: engine}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
