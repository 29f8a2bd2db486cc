package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/transport/http/handlers"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger    *slog.Logger
	Timeout   time.Duration
	JWTSecret string
	JWTIssuer string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(engine handlers.Engagement, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),                              // безопасно ловим паники
		middleware.RequestID(),                            // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger),                   // кладём request-scoped логгер в контекст и логируем
		middleware.Viewer(opts.JWTSecret, opts.JWTIssuer), // разбираем access-токен в ViewerSession
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(engine)

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// выдача и создание привязаны к родительскому контенту
	r.Get("/content/{parent_id}/engagement", h.ListEngagement)
	r.Post("/content/{parent_id}/engagement", h.SubmitEngagement)

	// удаление адресует элемент напрямую
	r.Delete("/engagement/{id}", h.DeleteEngagement)
}
