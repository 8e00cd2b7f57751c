package http

import (
	"net/http"
	"runtime/debug"

	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

var securityHeaders = map[string]string{
	"X-Content-Type-Options":            "nosniff",
	"X-Frame-Options":                   "SAMEORIGIN",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
	"Referrer-Policy":                   "no-referrer",
	"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Content-Security-Policy":           "default-src 'self'; frame-ancestors 'self'; object-src 'none'",
}

// SecureHeaders выставляет стандартный набор защитных заголовков на каждый ответ.
func SecureHeaders(next http.Handler) http.Handler {
	for name, value := range securityHeaders {
		next = middleware.SetHeader(name, value)(next)
	}
	return next
}

// RequestIDHeader возвращает клиенту id запроса, выданный middleware.RequestID.
func RequestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set(middleware.RequestIDHeader, reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// Compress сжимает ответы, если клиент не прислал X-No-Compression: true.
func Compress(level int) func(http.Handler) http.Handler {
	compress := middleware.Compress(level)
	return func(next http.Handler) http.Handler {
		compressed := compress(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-No-Compression") == "true" {
				next.ServeHTTP(w, r)
				return
			}
			compressed.ServeHTTP(w, r)
		})
	}
}

// Recoverer в отличие от middleware.Recoverer отдаёт панику клиенту как конверт 500
// без внутренних деталей.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			logger.FromContext(r.Context()).
				WithField("panic", rvr).
				WithField("stack", string(debug.Stack())).
				Error("Recovered from panic")
			respondWithMessage(w, http.StatusInternalServerError, messageInternalError)
		}()
		next.ServeHTTP(w, r)
	})
}

// NotFound отвечает на любой незарегистрированный путь или метод.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithMessage(w, http.StatusNotFound, r.URL.RequestURI()+" not found")
}

// Healthcheck проверка живости сервиса.
// @Summary      Проверка живости
// @Tags         health
// @Produce      json
// @Success      200  {object} Response
// @Router       /healthcheck [get]
func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	respondWithMessage(w, http.StatusOK, "OK")
}
