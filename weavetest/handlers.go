package weavetest

import weave "github.com/iov-one/tokendrop"

// Handler returns the configured results or errors and counts its calls.
// Failed calls are counted too. Results are copied before returning.
type Handler struct {
	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error

	checks, delivers int
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int   { return h.checks }
func (h *Handler) DeliverCallCount() int { return h.delivers }
func (h *Handler) CallCount() int        { return h.checks + h.delivers }

// WriteHandler stores Value under Key and then fails with Err, if set. It
// shows whether a decorator keeps or drops writes of a failed handler.
type WriteHandler struct {
	Key, Value []byte
	Err        error
}

var _ weave.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) write(db weave.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

func (h *WriteHandler) Check(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

// PanicHandler panics with Value.
type PanicHandler struct {
	Value interface{}
}

var _ weave.Handler = (*PanicHandler)(nil)

func (h *PanicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic(h.Value)
}

func (h *PanicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic(h.Value)
}
