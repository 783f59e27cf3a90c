package weave

import (
	"github.com/iov-one/tokendrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful delivery. Failures are
// reported as errors, never as a result.
type DeliverResult struct {
	// Data is returned to the client, for example an identifier.
	Data []byte
	Log  string
	// Tags are indexed by tendermint, so clients can search for the
	// transaction.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is the outcome of a successful check.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the work the transaction is expected to need.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxResponse builds the ABCI response of a delivery. A non nil err
// takes precedence over res. Internal errors are redacted unless debug is
// set.
func DeliverTxResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err == nil {
		return res.ToABCI()
	}
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + log}
}

// CheckTxResponse builds the ABCI response of a check.
func CheckTxResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err == nil {
		return res.ToABCI()
	}
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + log}
}

// Tag builds a single event tag, as used in DeliverResult.Tags.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
