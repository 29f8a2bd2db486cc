package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/pkg/log"
)

// Регидрация: обогащение сырой выдачи актуальными данными профилей без
// lookup на каждый элемент. Для N элементов выполняется не более
// |distinct(author_id)| обращений к справочнику; lookups идут конкурентно,
// каждый со своим таймаутом, и любой поднабор может отказать независимо —
// частичный успех здесь штатный случай, а не ошибочная ветка.

// rehydrate превращает элементы в EnrichedItem: живые данные профиля
// накладываются на сохранённый снапшот (mergeSnapshot). Отказ lookup по
// автору никогда не проваливает выдачу — все его элементы отрисуются
// по снапшоту.
func (s *Service) rehydrate(ctx context.Context, items []models.EngagementItem) []models.EnrichedItem {
	live := s.lookupAuthors(ctx, distinctAuthors(items))

	out := make([]models.EnrichedItem, 0, len(items))
	for _, item := range items {
		snap, ok := live[item.AuthorID]

		name, avatar := mergeSnapshot(item, snap, ok)
		out = append(out, models.EnrichedItem{
			EngagementItem: item,
			DisplayName:    name,
			AvatarURL:      avatar,
		})
	}

	return out
}

// distinctAuthors возвращает множество авторов выдачи с сохранением порядка
// первого появления.
func distinctAuthors(items []models.EngagementItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	var ids []uuid.UUID

	for _, item := range items {
		if _, ok := seen[item.AuthorID]; ok {
			continue
		}

		seen[item.AuthorID] = struct{}{}
		ids = append(ids, item.AuthorID)
	}

	return ids
}

// lookupAuthors конкурентно опрашивает справочник по каждому уникальному
// автору. Таймаут применяется к каждому lookup отдельно: fan-in завершается,
// как только каждый запрос разрешился или отказал, и не ждёт одного
// медленного lookup дольше его собственного дедлайна.
//
// Ошибки отдельных lookup не всплывают: они логируются и проглатываются,
// в карту попадают только успешные ответы.
func (s *Service) lookupAuthors(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]models.IdentitySnapshot {
	const op = "service/rehydrate/lookupAuthors"

	found := make(map[uuid.UUID]models.IdentitySnapshot, len(ids))
	if len(ids) == 0 {
		return found
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, id := range ids {
		wg.Add(1)

		go func(id uuid.UUID) {
			defer wg.Done()

			lctx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.IdentityLookup)
			defer cancel()

			snap, err := s.directory.ProfileByID(lctx, id)
			if err != nil {
				// Отказ по одному автору — не ошибка выдачи: элементы этого
				// автора отрисуются по сохранённому снапшоту.
				log.From(ctx).Warn("identity lookup failed",
					"op", op,
					"author_id", id.String(),
					"err", err,
				)

				return
			}

			mu.Lock()
			found[id] = *snap
			mu.Unlock()
		}(id)
	}

	wg.Wait()

	return found
}

// mergeSnapshot — явное слияние живого среза профиля со снапшотом, сохранённым
// в элементе. Правило приоритета: живое значение побеждает, когда оно есть и
// непустое; иначе остаётся сохранённое. Правило применяется по-полево:
// профиль с именем, но без аватара даёт живое имя и снапшотный аватар.
func mergeSnapshot(stored models.EngagementItem, live models.IdentitySnapshot, ok bool) (name, avatar string) {
	name = stored.AuthorName
	avatar = stored.AuthorAvatarURL

	if !ok {
		return name, avatar
	}

	if live.DisplayName != "" {
		name = live.DisplayName
	}

	if live.AvatarURL != "" {
		avatar = live.AvatarURL
	}

	return name, avatar
}
