package http

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"spendwise/internal/log"
	"spendwise/internal/metrics"
	"spendwise/internal/middleware/ratelimit"
	"spendwise/internal/middleware/security"
	"spendwise/internal/middleware/trace"
	"spendwise/internal/services"
)

// Options configures NewServer.
type Options struct {
	Logger             *log.Logger
	RateLimitPerMinute int
	// Ready reports whether the backing store can serve requests.
	Ready func(ctx context.Context) error
	// Now is the clock used for default dashboard months.
	Now func() time.Time
}

// Server serves the ledger JSON API.
type Server struct {
	http.Server
	svc       *services.LedgerService
	logger    *log.Logger
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	ready     func(ctx context.Context) error
	now       func() time.Time
	startedAt time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *services.LedgerService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.FromContext(context.Background())
	}
	if opts.Ready == nil {
		opts.Ready = func(context.Context) error { return nil }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		svc:       svc,
		logger:    opts.Logger.WithComponent(log.ComponentHTTP),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		ready:     opts.Ready,
		now:       opts.Now,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	s.routes(mux)

	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited)(h)
	h = s.detector.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = trace.NewMiddleware(opts.Logger, s.detector.ExtractClientIP).Middleware(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	allowed := make(map[string][]string)
	handle := func(pattern string, fn http.HandlerFunc) {
		method, route, _ := strings.Cut(pattern, " ")
		allowed[route] = append(allowed[route], method)
		mux.Handle(pattern, instrument(method, route, fn))
	}

	handle("GET /healthz", s.handleHealth)
	handle("GET /readyz", s.handleReady)
	handle("GET /metrics", metrics.Handler().ServeHTTP)

	handle("GET /api/dashboard", s.handleDashboard)
	handle("GET /api/activity", s.handleActivity)
	handle("POST /api/splits/preview", s.handleSplitPreview)

	handle("GET /api/expenses", s.handleListExpenses)
	handle("POST /api/expenses", s.handleCreateExpense)
	handle("PUT /api/expenses/{id}", s.handleUpdateExpense)
	handle("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	handle("GET /api/friend-payments", s.handleListFriendPayments)
	handle("POST /api/friend-payments", s.handleCreateFriendPayment)
	handle("GET /api/friend-payments/balances", s.handleBalances)
	handle("PUT /api/friend-payments/{id}", s.handleUpdateFriendPayment)
	handle("DELETE /api/friend-payments/{id}", s.handleDeleteFriendPayment)
	handle("POST /api/friend-payments/{id}/settle", s.handleToggleFriendPayment)

	handle("GET /api/groups", s.handleListGroups)
	handle("POST /api/groups", s.handleCreateGroup)
	handle("PUT /api/groups/{id}", s.handleUpdateGroup)
	handle("DELETE /api/groups/{id}", s.handleDeleteGroup)
	handle("POST /api/groups/{id}/participants/{index}/settle", s.handleToggleParticipant)

	handle("GET /api/settings/{kind}", s.handleListSettings)
	handle("POST /api/settings/{kind}", s.handleCreateSetting)
	handle("PUT /api/settings/{kind}/{id}", s.handleRenameSetting)
	handle("DELETE /api/settings/{kind}/{id}", s.handleDeleteSetting)

	// A method-less balances pattern would conflict with PUT and DELETE on
	// /api/friend-payments/{id}; that path keeps the mux's plain 405.
	delete(allowed, "/api/friend-payments/balances")
	for route, methods := range allowed {
		allow := allowHeader(methods)
		mux.Handle(route, instrument("", route, func(w http.ResponseWriter, r *http.Request) {
			MethodNotAllowedError(r, allow).Write(w)
		}))
	}
}

// instrument records request metrics for fn under its route pattern. An
// empty method labels the request with its own method.
func instrument(method, route string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &trace.ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		fn(rw, r)
		m := method
		if m == "" {
			m = r.Method
		}
		metrics.ObserveHTTP(route, m, rw.StatusCode, time.Since(start))
	})
}

// allowHeader lists methods for an Allow header; GET implies HEAD.
func allowHeader(methods []string) string {
	out := slices.Clone(methods)
	if slices.Contains(out, http.MethodGet) {
		out = append(out, http.MethodHead)
	}
	slices.Sort(out)
	return strings.Join(slices.Compact(out), ", ")
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(r, http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
