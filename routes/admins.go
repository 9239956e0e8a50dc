package routes

import (
	"net/http"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/controllers/admins"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/middleware"

	"github.com/gorilla/mux"
)

// AdminRoutes registers the manage-console endpoints on the given subrouter.
func AdminRoutes(api *mux.Router) {
	loginLimiter := middleware.NewIPRateLimiter(20, 5*time.Minute)

	manage := func(h http.HandlerFunc) http.Handler {
		return middleware.AdminAuthMiddleware(h)
	}

	api.Handle("/manage/login", loginLimiter.Middleware(http.HandlerFunc(admins.LoginHandler))).Methods(http.MethodPost)

	api.Handle("/manage/dashboard", manage(admins.DashboardHandler)).Methods(http.MethodGet)

	api.Handle("/manage/investments", manage(admins.CreateInvestmentHandler)).Methods(http.MethodPost)
	api.Handle("/manage/investments", manage(admins.ListInvestmentsHandler)).Methods(http.MethodGet)
	api.Handle("/manage/investments/{id:[0-9]+}", manage(admins.UpdateInvestmentHandler)).Methods(http.MethodPut)

	api.Handle("/manage/proofs", manage(admins.ListProofsHandler)).Methods(http.MethodGet)
	api.Handle("/manage/proofs/{id:[0-9]+}", manage(admins.UpdateProofHandler)).Methods(http.MethodPut)
	api.Handle("/manage/proofs/{id:[0-9]+}", manage(admins.DeleteProofHandler)).Methods(http.MethodDelete)

	api.Handle("/manage/kyc", manage(admins.ListKYCHandler)).Methods(http.MethodGet)
	api.Handle("/manage/kyc/{id:[0-9]+}", manage(admins.ReviewKYCHandler)).Methods(http.MethodPut)

	api.Handle("/manage/projects", manage(admins.CreateProjectHandler)).Methods(http.MethodPost)
	api.Handle("/manage/projects", manage(admins.ListProjectsHandler)).Methods(http.MethodGet)
	api.Handle("/manage/projects/{id:[0-9]+}", manage(admins.UpdateProjectHandler)).Methods(http.MethodPut)
}
