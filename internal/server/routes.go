package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"scratch_tracker/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/games", func(r chi.Router) {
				r.Get("/", handler(s.getV1Games))
				r.Get("/export", handler(s.getV1GamesExport))
				r.Get("/{gameNumber}", handler(s.getV1Game))
			})
			r.Route("/snapshots", func(r chi.Router) {
				r.Post("/", handler(s.postV1Snapshots))
				r.Get("/current", handler(s.getV1SnapshotsCurrent))
				r.Delete("/cache", handler(s.deleteV1SnapshotsCache))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
