package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"silent-library-backend/internal/security"
)

// RouterDeps bundles the handlers and middleware inputs for the API router.
type RouterDeps struct {
	Auth     *AuthHandler
	User     *UserHandler
	Book     *BookHandler
	Loan     *LoanHandler
	Staff    *StaffHandler
	TokenMgr security.TokenManager
	DB       *sql.DB
}

func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public endpoints.
	api.HandleFunc("/auth/register", deps.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", deps.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset", deps.Auth.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/confirm", deps.Auth.ConfirmPasswordReset).Methods(http.MethodPost)

	// /books/search must register before the {id} route.
	api.HandleFunc("/books/search", deps.Book.Search).Methods(http.MethodGet)
	api.HandleFunc("/books", deps.Book.List).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", deps.Book.Get).Methods(http.MethodGet)

	// Authenticated patron endpoints.
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(deps.TokenMgr))
	authed.HandleFunc("/me", deps.User.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me", deps.User.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/me/credentials", deps.User.UpdateCredentials).Methods(http.MethodPut)
	authed.HandleFunc("/me/password", deps.User.ChangePassword).Methods(http.MethodPut)
	authed.HandleFunc("/me/notifications", deps.User.ListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/me/loans", deps.Loan.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/me/fines", deps.Loan.ListMyFines).Methods(http.MethodGet)
	authed.HandleFunc("/loans", deps.Loan.Borrow).Methods(http.MethodPost)
	authed.HandleFunc("/loans/{id:[0-9]+}/return", deps.Loan.Return).Methods(http.MethodPost)
	authed.HandleFunc("/books/{id:[0-9]+}/reviews", deps.Book.AddReview).Methods(http.MethodPost)

	// Staff endpoints.
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(AuthMiddleware(deps.TokenMgr), StaffOnly)
	staff.HandleFunc("/books", deps.Staff.AddBook).Methods(http.MethodPost)
	staff.HandleFunc("/books/{id:[0-9]+}", deps.Staff.UpdateBook).Methods(http.MethodPut)
	staff.HandleFunc("/books/{id:[0-9]+}", deps.Staff.DeleteBook).Methods(http.MethodDelete)
	staff.HandleFunc("/authors", deps.Staff.ListAuthors).Methods(http.MethodGet)
	staff.HandleFunc("/authors", deps.Staff.AddAuthor).Methods(http.MethodPost)
	staff.HandleFunc("/genres", deps.Staff.ListGenres).Methods(http.MethodGet)
	staff.HandleFunc("/genres", deps.Staff.AddGenre).Methods(http.MethodPost)
	staff.HandleFunc("/dashboard", deps.Staff.Dashboard).Methods(http.MethodGet)
	staff.HandleFunc("/overdue", deps.Staff.ListOverdue).Methods(http.MethodGet)
	staff.HandleFunc("/overdue/notify", deps.Staff.NotifyOverdue).Methods(http.MethodPost)
	staff.HandleFunc("/loans", deps.Staff.ListLoans).Methods(http.MethodGet)

	return r
}
