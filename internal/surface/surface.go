package surface

import (
	"sync"

	"github.com/google/uuid"
)

// Surface — реестр сессий одного клиента: по одной сессии на родительский
// контент. Повторный вход на ту же карточку возвращает существующую сессию
// (и её состояние), уход с карточки освобождает её через Release.
type Surface struct {
	engine Engine

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// New создаёт пустой реестр поверх движка.
func New(engine Engine) *Surface {
	return &Surface{
		engine:   engine,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Session возвращает сессию по родителю, создавая её при первом обращении.
func (s *Surface) Session(parentID uuid.UUID) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[parentID]; ok {
		return sess
	}

	sess := NewSession(s.engine, parentID)
	s.sessions[parentID] = sess

	return sess
}

// Release удаляет сессию родителя из реестра (уход с карточки).
// Следующий Session по тому же родителю начнёт с Idle.
func (s *Surface) Release(parentID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, parentID)
}
