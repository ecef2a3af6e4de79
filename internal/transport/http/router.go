package http

import (
	"net/http"
	"time"

	httpmw "github.com/healthcareplus/consult-service/internal/transport/http/middleware"
	"github.com/healthcareplus/consult-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, jwtSecret string, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint (токен проверяется при upgrade)
	r.Get("/ws", wsServer.HandleWS)

	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware(jwtSecret))
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/sessions", func(rm chi.Router) {
			rm.Post("/", h.CreateSession)
			rm.Get("/{id}", h.GetSession)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
