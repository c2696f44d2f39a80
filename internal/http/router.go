package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/season-weeks-service/internal/http/handlers"
)

// NewRouter registers HTTP routes. admin may be nil, which leaves the admin
// routes unregistered.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/games/{id}", h.GameByID).Methods(nethttp.MethodGet)

	seasons := r.PathPrefix("/seasons/{seasonId:[0-9]+}").Subrouter()
	seasons.HandleFunc("/games", h.SeasonGames).Methods(nethttp.MethodGet)
	seasons.HandleFunc("/weeks", h.Weeks).Methods(nethttp.MethodGet)
	seasons.HandleFunc("/weeks.ics", h.WeeksICS).Methods(nethttp.MethodGet)
	seasons.HandleFunc("/weeks/current", h.CurrentWeek).Methods(nethttp.MethodGet)
	seasons.HandleFunc("/weeks/{week:[0-9]+}/games", h.WeekGames).Methods(nethttp.MethodGet)

	r.HandleFunc("/validate/signup", h.ValidateSignup).Methods(nethttp.MethodPost)

	if admin != nil {
		r.HandleFunc("/admin/snapshots/refresh", admin.RefreshSnapshots).Methods(nethttp.MethodPost)
	}
	return r
}
