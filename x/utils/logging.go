package utils

import (
	"time"

	weave "github.com/iov-one/tokendrop"
)

// Logging writes one log entry per transaction with the message path, the
// processing time and the error if any. Failures are logged as errors.
// Successful deliveries are logged as info and successful checks as debug,
// since every transaction is checked at least once per node.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, "check", start, msg, err)
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, "deliver", start, msg, err)
	return res, err
}

func logTx(ctx weave.Context, tx weave.Tx, phase string, start time.Time, msg string, err error) {
	logger := weave.GetLogger(ctx).With(
		"phase", phase,
		"path", weave.GetPath(tx),
		"duration_us", time.Since(start).Nanoseconds()/int64(time.Microsecond),
	)
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case phase == "check":
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
