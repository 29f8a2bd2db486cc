package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/service"
	mocks "github.com/pribylovaa/go-coffee-shop/engagement-service/mocks/enginemocks"
)

const (
	testSecret = "test-secret"
	testIssuer = "coffee-shop"
)

func newTestRouter(t *testing.T) (*mocks.MockEngine, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	engine := mocks.NewMockEngine(ctrl)
	router := NewRouter(engine, Options{
		Timeout:   time.Second,
		JWTSecret: testSecret,
		JWTIssuer: testIssuer,
	})

	return engine, router
}

func signToken(t *testing.T, userID uuid.UUID, name string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uid":  userID.String(),
		"name": name,
		"iss":  testIssuer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

func TestRouter_ListEngagement_OK(t *testing.T) {
	t.Parallel()

	engine, router := newTestRouter(t)

	parentID := uuid.New()
	authorID := uuid.New()
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	engine.EXPECT().
		ListEngagement(gomock.Any(), models.ViewerContext{}, parentID).
		Return(&models.Listing{
			Parent: models.ParentContentRef{ID: parentID},
			Items: []models.EnrichedItem{
				{
					EngagementItem: models.EngagementItem{
						ID:        "item-1",
						ParentID:  parentID,
						AuthorID:  authorID,
						Kind:      models.KindReview,
						Body:      "отличный кофе",
						Rating:    5,
						CreatedAt: createdAt,
					},
					DisplayName: "alice",
					AvatarURL:   "https://cdn.example.com/a.png",
				},
			},
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/content/"+parentID.String()+"/engagement", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ParentID string `json:"parent_id"`
		Items    []struct {
			ID         string `json:"id"`
			AuthorName string `json:"author_name"`
			Kind       string `json:"kind"`
			Rating     int32  `json:"rating"`
			CanDelete  bool   `json:"can_delete"`
		} `json:"items"`
		ViewerHasReview bool `json:"viewer_has_review"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, parentID.String(), resp.ParentID)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "item-1", resp.Items[0].ID)
	require.Equal(t, "alice", resp.Items[0].AuthorName)
	require.Equal(t, "review", resp.Items[0].Kind)
	require.EqualValues(t, 5, resp.Items[0].Rating)
	require.False(t, resp.Items[0].CanDelete)
}

func TestRouter_ListEngagement_BadParentID(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/content/not-a-uuid/engagement", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid_argument")
}

func TestRouter_ListEngagement_ParentNotFound(t *testing.T) {
	t.Parallel()

	engine, router := newTestRouter(t)
	parentID := uuid.New()

	engine.EXPECT().
		ListEngagement(gomock.Any(), models.ViewerContext{}, parentID).
		Return(nil, service.ErrNotFound)

	r := httptest.NewRequest(http.MethodGet, "/content/"+parentID.String()+"/engagement", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SubmitEngagement_AuthorFromSession(t *testing.T) {
	t.Parallel()

	engine, router := newTestRouter(t)

	parentID := uuid.New()
	userID := uuid.New()
	viewer := models.ViewerContext{UserID: userID}

	engine.EXPECT().
		SubmitEngagement(gomock.Any(), viewer, service.SubmitInput{
			ParentID:   parentID,
			Kind:       models.KindComment,
			Body:       "вкусно",
			AuthorName: "alice",
		}).
		Return(&models.EngagementItem{
			ID:         "item-1",
			ParentID:   parentID,
			AuthorID:   userID,
			AuthorName: "alice",
			Kind:       models.KindComment,
			Body:       "вкусно",
			CreatedAt:  time.Now().UTC(),
		}, nil)

	body := `{"kind":"comment","body":"вкусно"}`
	r := httptest.NewRequest(http.MethodPost, "/content/"+parentID.String()+"/engagement", strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+signToken(t, userID, "alice"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"id":"item-1"`)
}

func TestRouter_SubmitEngagement_AnonymousIs401(t *testing.T) {
	t.Parallel()

	engine, router := newTestRouter(t)
	parentID := uuid.New()

	engine.EXPECT().
		SubmitEngagement(gomock.Any(), models.ViewerContext{}, gomock.Any()).
		Return(nil, service.ErrUnauthenticated)

	body := `{"kind":"comment","body":"вкусно"}`
	r := httptest.NewRequest(http.MethodPost, "/content/"+parentID.String()+"/engagement", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "unauthenticated")
}

func TestRouter_SubmitEngagement_UnknownFieldIs400(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter(t)
	parentID := uuid.New()

	// author_name в теле запрещён: имя берётся только из сессии.
	body := `{"kind":"comment","body":"вкусно","author_name":"mallory"}`
	r := httptest.NewRequest(http.MethodPost, "/content/"+parentID.String()+"/engagement", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_SubmitEngagement_DuplicateReviewIs409(t *testing.T) {
	t.Parallel()

	engine, router := newTestRouter(t)

	parentID := uuid.New()
	userID := uuid.New()

	engine.EXPECT().
		SubmitEngagement(gomock.Any(), models.ViewerContext{UserID: userID}, gomock.Any()).
		Return(nil, service.ErrDuplicateReview)

	body := `{"kind":"review","body":"ещё один отзыв","rating":4}`
	r := httptest.NewRequest(http.MethodPost, "/content/"+parentID.String()+"/engagement", strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+signToken(t, userID, "alice"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "duplicate_review")
}

func TestRouter_DeleteEngagement(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	viewer := models.ViewerContext{UserID: userID}

	cases := []struct {
		name       string
		engineErr  error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"forbidden", service.ErrUnauthorized, http.StatusForbidden},
		{"not found", service.ErrNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			engine, router := newTestRouter(t)

			engine.EXPECT().
				DeleteEngagement(gomock.Any(), viewer, "item-1").
				Return(tc.engineErr)

			r := httptest.NewRequest(http.MethodDelete, "/engagement/item-1", nil)
			r.Header.Set("Authorization", "Bearer "+signToken(t, userID, "alice"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
