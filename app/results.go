package app

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// ResultSet is the protobuf list a query response carries in its Key and
// Value fields. The two sets of one response always have the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetCodec ResultSet

func (m *resultSetCodec) Reset()         { *m = resultSetCodec{} }
func (m *resultSetCodec) String() string { return proto.CompactTextString(m) }
func (*resultSetCodec) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error) { return proto.Marshal((*resultSetCodec)(r)) }
func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetCodec)(r))
}

func resultsOf(models []weave.Model, field func(weave.Model) []byte) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = field(m)
	}
	return res
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []weave.Model) *ResultSet {
	return resultsOf(models, func(m weave.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []weave.Model) *ResultSet {
	return resultsOf(models, func(m weave.Model) []byte { return m.Value })
}

// JoinResults pairs the keys and the values of a query response again.
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys, %d values", len(keys.Results), len(values.Results))
	}
	models := make([]weave.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = weave.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entry of a serialized ResultSet
// into dest. An empty set leaves dest unchanged.
func UnmarshalOneResult(raw []byte, dest weave.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dest.Unmarshal(set.Results[0])
}
