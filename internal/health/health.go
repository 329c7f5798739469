package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/confusion-server/pkg/logger"
)

// Status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency
type CheckFunc func(ctx context.Context) error

// DependencyHealth is the result of probing one dependency
type DependencyHealth struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Critical  bool          `json:"critical"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// ServiceHealth is the overall report
type ServiceHealth struct {
	Service      string                      `json:"service"`
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyHealth `json:"dependencies"`
	Uptime       time.Duration               `json:"uptime_seconds"`
}

type check struct {
	fn       CheckFunc
	critical bool
}

// Checker probes the service dependencies. A failing critical dependency
// makes the service unhealthy; any other failure only degrades it.
type Checker struct {
	service   string
	timeout   time.Duration
	startTime time.Time

	mu     sync.RWMutex
	checks map[string]check
	grpc   *grpchealth.Server
}

// NewChecker creates a checker with no dependencies
func NewChecker(service string, timeout time.Duration) *Checker {
	return &Checker{
		service:   service,
		timeout:   timeout,
		startTime: time.Now(),
		checks:    make(map[string]check),
	}
}

// Register adds a dependency probe
func (c *Checker) Register(name string, critical bool, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check{fn: fn, critical: critical}
}

// AttachGRPC makes every Check update the serving status of srv
func (c *Checker) AttachGRPC(srv *grpchealth.Server) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grpc = srv
}

// Check probes every dependency concurrently
func (c *Checker) Check(ctx context.Context) ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.mu.RLock()
	checks := make(map[string]check, len(c.checks))
	for name, chk := range c.checks {
		checks[name] = chk
	}
	grpcServer := c.grpc
	c.mu.RUnlock()

	deps := make(map[string]DependencyHealth, len(checks))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, chk := range checks {
		wg.Add(1)
		go func(name string, chk check) {
			defer wg.Done()
			start := time.Now()
			result := DependencyHealth{
				Name:      name,
				Status:    StatusHealthy,
				Critical:  chk.critical,
				Timestamp: start,
			}
			if err := chk.fn(ctx); err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				logger.Warn(ctx).Err(err).Str("dependency", name).Msg("Dependency health check failed")
			}
			result.Latency = time.Since(start)

			mu.Lock()
			deps[name] = result
			mu.Unlock()
		}(name, chk)
	}
	wg.Wait()

	status := StatusHealthy
	for _, d := range deps {
		if d.Status == StatusHealthy {
			continue
		}
		if d.Critical {
			status = StatusUnhealthy
			break
		}
		status = StatusDegraded
	}

	if grpcServer != nil {
		serving := healthpb.HealthCheckResponse_SERVING
		if status == StatusUnhealthy {
			serving = healthpb.HealthCheckResponse_NOT_SERVING
		}
		grpcServer.SetServingStatus("", serving)
	}

	return ServiceHealth{
		Service:      c.service,
		Status:       status,
		Dependencies: deps,
		Uptime:       time.Since(c.startTime),
	}
}

// Handler serves GET /health
func (c *Checker) Handler(w http.ResponseWriter, r *http.Request) {
	report := c.Check(r.Context())

	code := http.StatusOK
	if report.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(report)
}

// RegisterRoutes registers the health endpoint
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.Handler).Methods("GET")
}
