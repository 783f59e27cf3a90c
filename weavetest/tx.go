package weavetest

import weave "github.com/iov-one/tokendrop"

// Tx carries a single message for handler tests. It cannot be serialized.
type Tx struct {
	Msg weave.Msg
	// Err is returned by GetMsg together with Msg.
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) { return tx.Msg, tx.Err }
func (tx *Tx) Marshal() ([]byte, error)   { panic("weavetest.Tx cannot be serialized") }
func (tx *Tx) Unmarshal([]byte) error     { panic("weavetest.Tx cannot be serialized") }

// Msg is a message routed by RoutePath whose payload is kept as is.
// A non nil Err fails validation and both codec methods.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
