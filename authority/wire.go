package authority

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/velanet/corechain/crypto"
)

// accountWeight and keyWeight are the sorted_vec<(name,u16)>/(key,u16)
// entries spec §6 specifies for an authority's wire encoding; rlp has no
// native map type, so Authority's maps are flattened to these on encode and
// rebuilt on decode.
type accountWeight struct {
	Name   string
	Weight uint16
}

type keyWeight struct {
	Key    crypto.PublicKey
	Weight uint16
}

type authorityWire struct {
	WeightThreshold uint32
	Accounts        []accountWeight
	Keys            []keyWeight
}

// EncodeRLP implements rlp.Encoder, serializing as
// (u32 threshold, sorted_vec<(account_name,u16)>, sorted_vec<(key,u16)>) per
// spec §6.
func (a Authority) EncodeRLP(w io.Writer) error {
	wire := authorityWire{WeightThreshold: a.WeightThreshold}
	for _, name := range a.SortedAccountNames() {
		wire.Accounts = append(wire.Accounts, accountWeight{Name: name, Weight: a.Accounts[name]})
	}
	for _, key := range a.SortedKeys() {
		wire.Keys = append(wire.Keys, keyWeight{Key: key, Weight: a.Keys[key]})
	}
	return rlp.Encode(w, wire)
}

// DecodeRLP implements rlp.Decoder.
func (a *Authority) DecodeRLP(stream *rlp.Stream) error {
	var wire authorityWire
	if err := stream.Decode(&wire); err != nil {
		return err
	}
	a.WeightThreshold = wire.WeightThreshold
	a.Accounts = make(map[string]uint16, len(wire.Accounts))
	for _, aw := range wire.Accounts {
		a.Accounts[aw.Name] = aw.Weight
	}
	a.Keys = make(map[crypto.PublicKey]uint16, len(wire.Keys))
	for _, kw := range wire.Keys {
		a.Keys[kw.Key] = kw.Weight
	}
	return nil
}
