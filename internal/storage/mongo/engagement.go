package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// itemDoc — представление элемента в коллекции engagement.
// Отдельный тип нужен, чтобы _id генерировался драйвером как ObjectID,
// а наружу уходил его hex (в доменной модели ID — string).
type itemDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ParentID        uuid.UUID          `bson:"parent_id"`
	AuthorID        uuid.UUID          `bson:"author_id"`
	AuthorName      string             `bson:"author_name"`
	AuthorAvatarURL string             `bson:"author_avatar_url,omitempty"`
	Kind            models.Kind        `bson:"kind"`
	Body            string             `bson:"body"`
	Rating          int32              `bson:"rating,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d itemDoc) toModel() models.EngagementItem {
	return models.EngagementItem{
		ID:              d.ID.Hex(),
		ParentID:        d.ParentID,
		AuthorID:        d.AuthorID,
		AuthorName:      d.AuthorName,
		AuthorAvatarURL: d.AuthorAvatarURL,
		Kind:            d.Kind,
		Body:            d.Body,
		Rating:          d.Rating,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

// CreateItem вставляет элемент вовлечения.
//   - CreatedAt проставляется сервером (UTC, миллисекунды — гранулярность DateTime MongoDB).
//   - Конфликт частичного уникального индекса по отзывам транслируется
//     в storage.ErrDuplicateReview.
func (m *Mongo) CreateItem(ctx context.Context, item models.EngagementItem) (*models.EngagementItem, error) {
	const op = "storage/mongo/CreateItem"

	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := itemDoc{
		ParentID:        item.ParentID,
		AuthorID:        item.AuthorID,
		AuthorName:      item.AuthorName,
		AuthorAvatarURL: item.AuthorAvatarURL,
		Kind:            item.Kind,
		Body:            item.Body,
		Rating:          item.Rating,
		CreatedAt:       now,
	}

	res, err := m.engagement.InsertOne(ctx, doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateReview)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()
	return &out, nil
}

// DeleteItem удаляет элемент безвозвратно.
// При отсутствии записи (включая повторное удаление) — storage.ErrNotFound,
// а не тихий повторный успех.
func (m *Mongo) DeleteItem(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteItem"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.engagement.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ItemByID возвращает элемент по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) ItemByID(ctx context.Context, id string) (*models.EngagementItem, error) {
	const op = "storage/mongo/ItemByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc itemDoc
	if err := m.engagement.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// ListByParent возвращает элементы родителя в порядке создания.
// Сортировка created_at ASC, _id ASC — стабильна при равных created_at.
// Родитель без элементов — пустая выдача, не ошибка.
func (m *Mongo) ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.EngagementItem, error) {
	const op = "storage/mongo/ListByParent"

	filter := bson.D{{Key: "parent_id", Value: parentID}}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(m.cfg.Limits.MaxList)

	cur, err := m.engagement.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.EngagementItem
	for cur.Next(ctx) {
		var doc itemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// parentDoc — минимальная проекция записи родительского контента.
// Коллекцией parents владеет витрина; здесь читаются только поля,
// нужные для авторизации удаления.
type parentDoc struct {
	ID      uuid.UUID `bson:"_id"`
	OwnerID uuid.UUID `bson:"owner_id,omitempty"`
}

// ParentRefByID возвращает ссылку на родительский контент.
// Если записи нет — storage.ErrNotFound.
func (m *Mongo) ParentRefByID(ctx context.Context, parentID uuid.UUID) (*models.ParentContentRef, error) {
	const op = "storage/mongo/ParentRefByID"

	var doc parentDoc
	err := m.parents.FindOne(
		ctx,
		bson.D{{Key: "_id", Value: parentID}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "owner_id", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ParentContentRef{ID: doc.ID, OwnerID: doc.OwnerID}, nil
}
