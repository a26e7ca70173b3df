package tenant

import "github.com/prometheus/client_golang/prometheus"

// Observer receives resolution outcomes.
type Observer interface {
	Resolved(state State)
	PointerUpdated()
}

type nopObserver struct{}

func (nopObserver) Resolved(State)  {}
func (nopObserver) PointerUpdated() {}

// PrometheusObserver counts resolutions by state and current tenant pointer writes.
type PrometheusObserver struct {
	resolutions    *prometheus.CounterVec
	pointerUpdates prometheus.Counter
}

// NewPrometheusObserver registers the tenancy counters on reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenancy",
			Name:      "resolutions_total",
			Help:      "Tenant resolutions by outcome state.",
		}, []string{"state"}),
		pointerUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tenancy",
			Name:      "current_tenant_updates_total",
			Help:      "Writes of a user's current tenant pointer.",
		}),
	}

	for _, c := range []prometheus.Collector{o.resolutions, o.pointerUpdates} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) Resolved(state State) {
	o.resolutions.WithLabelValues(state.String()).Inc()
}

func (o *PrometheusObserver) PointerUpdated() {
	o.pointerUpdates.Inc()
}
