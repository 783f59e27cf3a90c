package utils

import (
	"strconv"
	"time"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// how long the delivery took. Results are labeled with the message path
// and the ABCI code of the outcome.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ weave.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator with all collectors registered
// using given registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "deliver_duration_seconds",
			Help:      "Duration of the transaction delivery.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"path"}),
	}
	reg.MustRegister(m.processed, m.duration)
	return m
}

// Check counts the checked transactions.
func (m *Metrics) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	res, err := next.Check(ctx, store, tx)
	m.count("check", tx, err)
	return res, err
}

// Deliver counts the delivered transactions and measures the time spent.
func (m *Metrics) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.duration.WithLabelValues(weave.GetPath(tx)).Observe(time.Since(start).Seconds())
	m.count("deliver", tx, err)
	return res, err
}

func (m *Metrics) count(phase string, tx weave.Tx, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.processed.WithLabelValues(phase, weave.GetPath(tx), codeLabel(code)).Inc()
}

func codeLabel(code uint32) string {
	if code == errors.SuccessABCICode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
