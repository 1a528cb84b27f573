package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kkapi_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// SpeakCreated counts created speak entries by authentication path.
	SpeakCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kkapi_speak_created_total",
		Help: "Total number of speak entries created, by auth path",
	}, []string{"auth"})

	// LoginFailures counts rejected login attempts.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kkapi_login_failures_total",
		Help: "Total number of failed login attempts",
	})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given
// service name. The middleware registers collectors in the default
// registry, so it is created once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
