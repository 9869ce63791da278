package middlewares

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/helpers"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/sessions"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic while serving request", zap.Any("panic", rec), zap.String("path", r.URL.Path))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CartSessionMiddleware binds a cart id from the session cookie to the
// request context, assigning one on first visit.
func CartSessionMiddleware(store *sessions.CookieSessionStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID, err := store.CartID(w, r)
			if err != nil {
				logger.Error("failed to resolve cart session", zap.Error(err), zap.String("path", r.URL.Path))
				http.Error(w, "could not start a cart session", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithCartID(r.Context(), cartID)))
		})
	}
}
