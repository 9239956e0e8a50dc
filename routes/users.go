package routes

import (
	"net/http"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/controllers/auth"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/controllers/users"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the member-facing endpoints on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Credential endpoints get a tight per-IP budget; authenticated traffic a
	// looser one.
	loginLimiter := middleware.NewIPRateLimiter(30, 5*time.Minute)
	memberLimiter := middleware.NewIPRateLimiter(300, time.Minute)

	protected := func(h http.HandlerFunc) http.Handler {
		return memberLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", memberLimiter.Middleware(http.HandlerFunc(auth.LogoutHandler))).Methods(http.MethodPost)

	// Investment lifecycle
	api.Handle("/users/investments", protected(users.CreateInvestmentHandler)).Methods(http.MethodPost)
	api.Handle("/users/investments", protected(users.ListInvestmentsHandler)).Methods(http.MethodGet)
	api.Handle("/users/investments/{id:[0-9]+}", protected(users.GetInvestmentHandler)).Methods(http.MethodGet)

	// Proof of payment
	api.Handle("/users/investments/proofs", protected(users.UploadProofHandler)).Methods(http.MethodPost)
	api.Handle("/users/investments/{id:[0-9]+}/proofs", protected(users.ListProofsHandler)).Methods(http.MethodGet)

	// Portfolio
	api.Handle("/users/portfolio", protected(users.PortfolioHandler)).Methods(http.MethodGet)

	// KYC
	api.Handle("/users/kyc", protected(users.SubmitKYCHandler)).Methods(http.MethodPost)
	api.Handle("/users/kyc", protected(users.KYCStatusHandler)).Methods(http.MethodGet)
}
