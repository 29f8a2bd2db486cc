package service

import (
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
)

// Чистые решающие функции авторизации. Контекст зрителя передаётся явно —
// функции не читают сессию и не ходят в хранилище, что позволяет тестировать
// матрицу решений без окружения.

// CanDelete решает, может ли зритель удалить элемент.
//
// Правила:
//   - анонимный зритель не удаляет ничего;
//   - автор удаляет свой элемент;
//   - администратор платформы удаляет любой элемент;
//   - владелец родительского контента (автор поста) удаляет чужие комментарии
//     под своим постом — модерация. На отзывы это делегирование НЕ
//     распространяется: отзыв удаляют только автор и администратор.
//
// Асимметрия комментариев и отзывов намеренная: у товара нет владельца,
// и вводить его здесь нельзя.
func CanDelete(viewer models.ViewerContext, item models.EngagementItem, parent models.ParentContentRef) bool {
	if !viewer.Authenticated() {
		return false
	}

	if viewer.UserID == item.AuthorID {
		return true
	}

	if viewer.IsAdmin {
		return true
	}

	if item.Kind == models.KindComment && parent.HasOwner() && viewer.UserID == parent.OwnerID {
		return true
	}

	return false
}

// CanSubmitReview решает, может ли зритель оставить отзыв при текущей выдаче:
// зритель аутентифицирован и среди существующих элементов нет его отзыва.
// Комментарии не ограничиваются.
//
// Решение — подсказка для UI (не показывать форму второй раз); авторитетна
// проверка уникального индекса в хранилище: два конкурентных сабмита
// разрешаются там.
func CanSubmitReview(viewer models.ViewerContext, existing []models.EngagementItem) bool {
	if !viewer.Authenticated() {
		return false
	}

	for _, item := range existing {
		if item.Kind == models.KindReview && item.AuthorID == viewer.UserID {
			return false
		}
	}

	return true
}
