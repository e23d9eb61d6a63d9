// Package metrics provides a Prometheus implementation of the validation outcome recorder.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts validation outcomes and certificate checks.
// Metrics are registered on the Registerer passed to NewRecorder so that tests and embedding
// applications can use their own registry.
type Recorder struct {
	outcomes   *prometheus.CounterVec
	certChecks *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them on reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pid_validation_outcomes_total",
			Help: "Total number of request parameter validations by outcome",
		}, []string{"variant", "outcome", "code"}), // variant: issue, show; outcome: valid, local_error, redirect

		certChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pid_certificate_checks_total",
			Help: "Total number of certificate algorithm/curve checks",
		}, []string{"result"}), // result: accepted, rejected, unparseable
	}

	for _, c := range []prometheus.Collector{r.outcomes, r.certChecks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RecordOutcome records one orchestrator result. code is 0 for valid outcomes.
func (r *Recorder) RecordOutcome(variant, outcome string, code int) {
	r.outcomes.WithLabelValues(variant, outcome, strconv.Itoa(code)).Inc()
}

// RecordCertCheck records the result of a certificate algorithm/curve check
func (r *Recorder) RecordCertCheck(result string) {
	r.certChecks.WithLabelValues(result).Inc()
}
