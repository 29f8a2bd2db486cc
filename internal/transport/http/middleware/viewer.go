package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	logctx "github.com/pribylovaa/go-coffee-shop/engagement-service/internal/pkg/log"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/models"
)

type ctxKey int

const ctxViewer ctxKey = iota

// ViewerSession — результат разбора access-токена: контекст зрителя для
// авторизации плюс снапшот имени/аватара из claims (сохраняется рядом с
// созданными элементами как резерв на случай недоступности справочника).
type ViewerSession struct {
	Viewer    models.ViewerContext
	Name      string
	AvatarURL string
}

// viewerClaims — полезная нагрузка access-токена сессионного провайдера.
type viewerClaims struct {
	UserID    string `json:"uid"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar,omitempty"`
	Admin     bool   `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// Viewer извлекает Bearer-токен из Authorization, валидирует подпись и claims
// и кладёт ViewerSession в контекст запроса.
//
// Чтение выдачи доступно без токена, поэтому отсутствующий, просроченный или
// битый токен НЕ обрывает запрос: зритель остаётся анонимным (UserID ==
// uuid.Nil), а решение «можно ли мутацию» принимает сервисный слой.
func Viewer(secret, issuer string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := ViewerSession{}

			if token := bearerToken(r); token != "" {
				parsed, ok := parseViewer(token, secret, issuer)
				if ok {
					session = parsed
				} else {
					logctx.From(r.Context()).Warn("invalid access token, treating viewer as anonymous")
				}
			}

			ctx := context.WithValue(r.Context(), ctxViewer, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext возвращает сессию зрителя; без мидлвара — анонимную.
func SessionFromContext(ctx context.Context) ViewerSession {
	if s, ok := ctx.Value(ctxViewer).(ViewerSession); ok {
		return s
	}
	return ViewerSession{}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}

func parseViewer(tokenStr, secret, issuer string) (ViewerSession, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &viewerClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, jwt.ErrTokenSignatureInvalid
			}

			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(issuer),
	)

	if err != nil {
		return ViewerSession{}, false
	}

	claims, ok := token.Claims.(*viewerClaims)
	if !ok || !token.Valid {
		return ViewerSession{}, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return ViewerSession{}, false
	}

	return ViewerSession{
		Viewer: models.ViewerContext{
			UserID:  userID,
			IsAdmin: claims.Admin,
		},
		Name:      strings.TrimSpace(claims.Name),
		AvatarURL: strings.TrimSpace(claims.AvatarURL),
	}, true
}
