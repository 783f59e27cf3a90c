package utils

import (
	weave "github.com/iov-one/tokendrop"
)

// ActionKey is the tag key ActionTagger adds to a delivered transaction.
const ActionKey = "action"

// ActionTagger tags every successful delivery with action=<message path>,
// for example action=airdrop/claim, so clients can subscribe to one kind
// of message. Check passes through untouched.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver rejects a transaction without a single message before calling
// the rest of the chain.
func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, weave.Tag(ActionKey, msg.Path()))
	return res, nil
}
