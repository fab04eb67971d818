package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	_ "github.com/JMURv/club-auth/api/rest/v1"
	"github.com/JMURv/club-auth/internal/auth/jwt"
	"github.com/JMURv/club-auth/internal/ctrl"
	mid "github.com/JMURv/club-auth/internal/hdl/http/middleware"
	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	router *chi.Mux
	au     jwt.Port
	srv    *http.Server
	ctrl   ctrl.AppCtrl
}

func New(au jwt.Port, ctrl ctrl.AppCtrl) *Handler {
	r := chi.NewRouter()
	return &Handler{
		router: r,
		au:     au,
		ctrl:   ctrl,
	}
}

func (h *Handler) Start(port int) {
	h.router.Use(
		mid.Logger(zap.L()),
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		mid.Prometheus,
		mid.OT,
	)

	h.RegisterAuthRoutes()
	h.RegisterSessionRoutes()
	h.router.Get("/swagger/*", httpSwagger.WrapHandler)

	h.srv = &http.Server{
		Handler:      h.router,
		Addr:         fmt.Sprintf(":%v", port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info(
		"Starting HTTP server",
		zap.String("addr", h.srv.Addr),
	)

	err := h.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		zap.L().Error("Server error", zap.Error(err))
	}
}

func (h *Handler) Close(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}

// decodeLenient tolerates an empty body, endpoints with optional payloads
// validate the fields themselves.
func decodeLenient(r *http.Request, dest any) error {
	err := json.NewDecoder(r.Body).Decode(dest)
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}
