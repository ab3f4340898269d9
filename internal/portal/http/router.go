package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/obs"
	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/httpx"
	"github.com/agriwatch/farmportal/pkg/jwtx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	AuthService        *service.AuthService
	CertificateService *service.CertificateService
	ComplaintService   *service.ComplaintService
	RatingService      *service.RatingService
	AnalyticsService   *service.AnalyticsService
	FaceService        *service.FaceService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		obs.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerComplaints()
	r.registerCertificates()
	r.registerRatings()
	r.registerAnalytics()
	r.registerFace()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with the standard authenticated chain: token
// verification, store-backed user lookup, then any extra middleware.
func (r *Router) secured(h http.Handler, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		requireUser(r.store),
	}
	mws = append(mws, extra...)
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	meHandler := &MeHandler{}
	r.Mux.Handle("GET /auth/me",
		r.secured(meHandler, httpx.RateLimitByUser(httpx.LenientLimit)),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AuthService: r.AuthService}

	// POST /users - admin-only provisioning, moderate rate limit by user
	r.Mux.Handle("POST /users",
		r.secured(http.HandlerFunc(h.HandleCreate),
			requireRole(domain.RoleAdmin, "Admin access required"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerComplaints() {
	h := &ComplaintsHandler{ComplaintService: r.ComplaintService}

	r.Mux.Handle("POST /complaints",
		r.secured(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /complaints",
		r.secured(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// PATCH /complaints/{complaint_id} - admin triage only
	r.Mux.Handle("PATCH /complaints/{complaint_id}",
		r.secured(http.HandlerFunc(h.HandleUpdateStatus),
			requireRole(domain.RoleAdmin, "Admin access required"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCertificates() {
	h := &CertificatesHandler{CertificateService: r.CertificateService}

	r.Mux.Handle("GET /certificates",
		r.secured(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Single-certificate lookup is public: external parties verify
	// certificate numbers without an account.
	r.Mux.Handle("GET /certificates/{cert_number}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /certificates",
		r.secured(http.HandlerFunc(h.HandleIssue),
			requireRole(domain.RoleAdmin, "Admin access required"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /certificates/{cert_number}",
		r.secured(http.HandlerFunc(h.HandleRevoke),
			requireRole(domain.RoleAdmin, "Admin access required"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRatings() {
	h := &RatingsHandler{RatingService: r.RatingService}

	r.Mux.Handle("POST /ratings",
		r.secured(http.HandlerFunc(h.HandleCreate),
			requireRole(domain.RoleWorker, "Only workers can submit ratings"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Aggregate is public read-only data
	r.Mux.Handle("GET /ratings/farmer/{farmer_id}",
		httpx.Chain(http.HandlerFunc(h.HandleFarmerSummary),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAnalytics() {
	h := &AnalyticsHandler{AnalyticsService: r.AnalyticsService}

	r.Mux.Handle("GET /analytics/stats",
		r.secured(h,
			requireRole(domain.RoleAdmin, "Admin access required"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerFace() {
	h := &FaceHandler{FaceService: r.FaceService}

	r.Mux.Handle("POST /face/register",
		r.secured(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /face/verify - unauthenticated login path, strict limit by IP
	r.Mux.Handle("POST /face/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /face/users",
		r.secured(http.HandlerFunc(h.HandleListUsers),
			requireRole(domain.RoleAdmin, "Admin access required"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", obs.Handler())
}
