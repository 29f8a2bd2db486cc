package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
)

func TestCanDelete_Matrix(t *testing.T) {
	t.Parallel()

	author := uuid.New()
	owner := uuid.New()
	admin := uuid.New()
	stranger := uuid.New()

	comment := models.EngagementItem{AuthorID: author, Kind: models.KindComment}
	review := models.EngagementItem{AuthorID: author, Kind: models.KindReview}

	ownedParent := models.ParentContentRef{ID: uuid.New(), OwnerID: owner}
	ownerlessParent := models.ParentContentRef{ID: uuid.New()}

	cases := []struct {
		name   string
		viewer models.ViewerContext
		item   models.EngagementItem
		parent models.ParentContentRef
		want   bool
	}{
		{"anonymous never deletes", models.ViewerContext{}, comment, ownedParent, false},
		{"author deletes own comment", models.ViewerContext{UserID: author}, comment, ownedParent, true},
		{"author deletes own review", models.ViewerContext{UserID: author}, review, ownerlessParent, true},
		{"admin deletes any comment", models.ViewerContext{UserID: admin, IsAdmin: true}, comment, ownedParent, true},
		{"admin deletes any review", models.ViewerContext{UserID: admin, IsAdmin: true}, review, ownerlessParent, true},
		{"stranger deletes nothing", models.ViewerContext{UserID: stranger}, comment, ownedParent, false},
		// Модерационное делегирование: владелец поста удаляет чужой
		// комментарий под своим постом.
		{"owner deletes comment under own content", models.ViewerContext{UserID: owner}, comment, ownedParent, true},
		// На отзывы делегирование не распространяется, даже если бы у
		// родителя был владелец.
		{"owner cannot delete review", models.ViewerContext{UserID: owner}, review, ownedParent, false},
		{"owner of other content deletes nothing", models.ViewerContext{UserID: owner}, comment, ownerlessParent, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, CanDelete(tc.viewer, tc.item, tc.parent))
		})
	}
}

func TestCanSubmitReview(t *testing.T) {
	t.Parallel()

	viewerID := uuid.New()
	otherID := uuid.New()

	cases := []struct {
		name     string
		viewer   models.ViewerContext
		existing []models.EngagementItem
		want     bool
	}{
		{"anonymous cannot review", models.ViewerContext{}, nil, false},
		{"empty listing allows review", models.ViewerContext{UserID: viewerID}, nil, true},
		{
			"own comment does not block review",
			models.ViewerContext{UserID: viewerID},
			[]models.EngagementItem{{AuthorID: viewerID, Kind: models.KindComment}},
			true,
		},
		{
			"own review blocks second review",
			models.ViewerContext{UserID: viewerID},
			[]models.EngagementItem{{AuthorID: viewerID, Kind: models.KindReview}},
			false,
		},
		{
			"someone else's review does not block",
			models.ViewerContext{UserID: viewerID},
			[]models.EngagementItem{{AuthorID: otherID, Kind: models.KindReview}},
			true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, CanSubmitReview(tc.viewer, tc.existing))
		})
	}
}
