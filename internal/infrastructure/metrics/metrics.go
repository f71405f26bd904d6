// Package metrics publica contadores Prometheus de cargas y exportaciones de facturas.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/domain"
)

var _ billing.Observer = (*Recorder)(nil)

// Recorder implementa billing.Observer sobre un registro propio (no el global).
type Recorder struct {
	registry *prometheus.Registry
	loads    *prometheus.CounterVec
	exports  *prometheus.CounterVec
}

// NewRecorder crea el registro con los colectores de proceso y de Go.
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_loads_total",
			Help:      "Cargas de la vista de detalle por resultado.",
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_exports_total",
			Help:      "Exportaciones a PDF por resultado.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		r.loads,
		r.exports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Outcome etiqueta de resultado: "ok" o el nombre del Kind.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err).String()
}

func (r *Recorder) ObserveLoad(err error) {
	r.loads.WithLabelValues(Outcome(err)).Inc()
}

func (r *Recorder) ObserveExport(err error) {
	r.exports.WithLabelValues(Outcome(err)).Inc()
}

// Registry expone el registro (tests y colectores adicionales).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler sirve el formato de exposición de Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
