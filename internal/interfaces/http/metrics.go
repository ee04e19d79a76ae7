package http

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Visitas-api/internal/application/dto"
)

// statsSource es lo mínimo que necesita el gauge de visitantes activos.
// Lo implementa *usecase.VisitorUseCase.
type statsSource interface {
	Stats(ctx context.Context) (*dto.VisitorStatsResponse, error)
}

// Metrics registro Prometheus propio de la app (no el global, para poder instanciarlo por test).
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	signIns  prometheus.Counter
	signOuts prometheus.Counter
}

// NewMetrics crea y registra los colectores. stats puede ser nil.
func NewMetrics(stats statsSource) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),
		signIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "visitor_sign_ins_total",
			Help: "Total number of visitor sign-ins",
		}),
		signOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "visitor_sign_outs_total",
			Help: "Total number of visitor sign-out requests answered",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.signIns, m.signOuts,
	)
	if stats != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "visitors_active",
			Help: "Visitors currently signed in",
		}, func() float64 {
			s, err := stats.Stats(context.Background())
			if err != nil {
				return math.NaN()
			}
			return float64(s.Active)
		}))
	}
	return m
}

// Middleware mide cada petición por ruta registrada (no por path crudo).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		m.requests.WithLabelValues(c.Method(), path, strconv.Itoa(responseStatus(c, err))).Inc()
		m.duration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// responseStatus es el estado que tendrá la respuesta una vez que el ErrorHandler
// por defecto de fiber resuelva err.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) signIn() {
	if m != nil {
		m.signIns.Inc()
	}
}

func (m *Metrics) signOut() {
	if m != nil {
		m.signOuts.Inc()
	}
}
