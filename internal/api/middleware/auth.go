package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/LTA-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	managerKey contextKey = "isManager"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	roleManager = "manager"
)

// Auth извлекает идентификатор пользователя и роль из заголовков.
// Аутентификацию выполняет внешний шлюз; сервис доверяет его заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(headerUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, managerKey, r.Header.Get(headerRole) == roleManager)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsManager возвращает true, если запрос пришел от менеджера
func IsManager(ctx context.Context) bool {
	isManager, ok := ctx.Value(managerKey).(bool)
	return ok && isManager
}
