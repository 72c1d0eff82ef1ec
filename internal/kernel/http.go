// Package kernel assembles StayBook's HTTP handler: the global middleware
// stack, the operational endpoints and the application routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/staybook/config"
	"github.com/shashiranjanraj/staybook/pkg/metrics"
	"github.com/shashiranjanraj/staybook/pkg/middleware"
	"github.com/shashiranjanraj/staybook/pkg/reqid"
	"github.com/shashiranjanraj/staybook/pkg/response"
	"github.com/shashiranjanraj/staybook/pkg/router"
)

// HTTPKernel owns the router the application registers into.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router with the global middleware stack and
// calls each registration func in order.
func NewHTTPKernel(register ...func(*router.Router)) *HTTPKernel {
	r := router.New()

	// Outermost first: metrics see total latency, recovery catches panics
	// before the request ID and logger run.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.GetInt("RATE_LIMIT_PER_MINUTE", 200), time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	for _, fn := range register {
		fn(r)
	}
	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table, e.g. for route:list.
func (k *HTTPKernel) Router() *router.Router { return k.router }
