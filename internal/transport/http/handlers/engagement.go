package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/service"
	apierrors "github.com/pribylovaa/go-coffee-shop/engagement-service/internal/transport/http/errors"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/transport/http/middleware"
)

// DTO HTTP-слоя. Время отдаём в RFC3339 (UTC), идентификаторы — строками.

type submitRequest struct {
	Kind   string `json:"kind"`
	Body   string `json:"body"`
	Rating int32  `json:"rating,omitempty"`
}

type itemResponse struct {
	ID         string `json:"id"`
	ParentID   string `json:"parent_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Kind       string `json:"kind"`
	Body       string `json:"body"`
	Rating     int32  `json:"rating,omitempty"`
	CreatedAt  string `json:"created_at"`
	CanDelete  bool   `json:"can_delete"`
}

type listingResponse struct {
	ParentID        string         `json:"parent_id"`
	Items           []itemResponse `json:"items"`
	ViewerHasReview bool           `json:"viewer_has_review"`
}

func itemFromEnriched(e models.EnrichedItem) itemResponse {
	return itemResponse{
		ID:         e.ID,
		ParentID:   e.ParentID.String(),
		AuthorID:   e.AuthorID.String(),
		AuthorName: e.DisplayName,
		AvatarURL:  e.AvatarURL,
		Kind:       string(e.Kind),
		Body:       e.Body,
		Rating:     e.Rating,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
		CanDelete:  e.CanDelete,
	}
}

func itemFromModel(m *models.EngagementItem) itemResponse {
	return itemResponse{
		ID:         m.ID,
		ParentID:   m.ParentID.String(),
		AuthorID:   m.AuthorID.String(),
		AuthorName: m.AuthorName,
		AvatarURL:  m.AuthorAvatarURL,
		Kind:       string(m.Kind),
		Body:       m.Body,
		Rating:     m.Rating,
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ListEngagement — GET /content/{parent_id}/engagement.
// Выдача доступна анонимному зрителю; can_delete у всех элементов false.
func (h *Handlers) ListEngagement(w http.ResponseWriter, r *http.Request) {
	parentID, err := uuid.Parse(chi.URLParam(r, "parent_id"))
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("bad parent_id: %w", service.ErrInvalidArgument))
		return
	}

	session := middleware.SessionFromContext(r.Context())

	listing, err := h.engine.ListEngagement(r.Context(), session.Viewer, parentID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := listingResponse{
		ParentID:        listing.Parent.ID.String(),
		Items:           make([]itemResponse, 0, len(listing.Items)),
		ViewerHasReview: listing.ViewerHasReview,
	}
	for _, item := range listing.Items {
		out.Items = append(out.Items, itemFromEnriched(item))
	}

	writeJSON(w, http.StatusOK, out)
}

// SubmitEngagement — POST /content/{parent_id}/engagement.
// Имя и аватар автора берутся из сессии зрителя, а не из тела запроса:
// клиент не может публиковать от чужого имени.
func (h *Handlers) SubmitEngagement(w http.ResponseWriter, r *http.Request) {
	parentID, err := uuid.Parse(chi.URLParam(r, "parent_id"))
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("bad parent_id: %w", service.ErrInvalidArgument))
		return
	}

	var req submitRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("bad request body: %w", service.ErrInvalidArgument))
		return
	}

	session := middleware.SessionFromContext(r.Context())

	item, err := h.engine.SubmitEngagement(r.Context(), session.Viewer, service.SubmitInput{
		ParentID:        parentID,
		Kind:            models.Kind(req.Kind),
		Body:            req.Body,
		Rating:          req.Rating,
		AuthorName:      session.Name,
		AuthorAvatarURL: session.AvatarURL,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemFromModel(item))
}

// DeleteEngagement — DELETE /engagement/{id}.
func (h *Handlers) DeleteEngagement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, fmt.Errorf("empty id: %w", service.ErrInvalidArgument))
		return
	}

	session := middleware.SessionFromContext(r.Context())

	if err := h.engine.DeleteEngagement(r.Context(), session.Viewer, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
