package authority

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/crypto"
)

func TestAuthorityImpossible(t *testing.T) {
	a := New(2)
	require.True(t, a.Impossible())
	a.Accounts["alice"] = 1
	require.True(t, a.Impossible())
	a.Accounts["bob"] = 1
	require.False(t, a.Impossible())

	zero := New(0)
	require.True(t, zero.Impossible())
}

func TestAuthorityValidate(t *testing.T) {
	exists := func(name string) bool { return name == "alice" }

	a := New(1)
	a.Accounts["alice"] = 1
	require.NoError(t, a.Validate(exists))

	a.Accounts["bob"] = 1
	require.Error(t, a.Validate(exists))

	empty := New(1)
	require.Error(t, empty.Validate(exists))

	noThreshold := New(0)
	noThreshold.Accounts["alice"] = 1
	require.Error(t, noThreshold.Validate(exists))
}

func TestAuthorityCloneIsIndependent(t *testing.T) {
	a := New(1)
	a.Accounts["alice"] = 1
	clone := a.Clone()
	clone.Accounts["alice"] = 5
	require.Equal(t, uint16(1), a.Accounts["alice"])
	require.Equal(t, uint16(5), clone.Accounts["alice"])
}

type fakeLookup struct {
	ids   map[string]uint32
	auths map[string]*Authority
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{ids: map[string]uint32{}, auths: map[string]*Authority{}}
}

func (f *fakeLookup) set(name string, level Level, a *Authority) {
	if _, ok := f.ids[name]; !ok {
		f.ids[name] = uint32(len(f.ids))
	}
	f.auths[name+level.String()] = a
}

func (f *fakeLookup) Authority(name string, level Level) (*Authority, bool) {
	a, ok := f.auths[name+level.String()]
	return a, ok
}

func (f *fakeLookup) AccountID(name string) (uint32, bool) {
	id, ok := f.ids[name]
	return id, ok
}

func TestSatisfiedDirectKey(t *testing.T) {
	key, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)

	lookup := newFakeLookup()
	auth := New(1)
	auth.Keys[key.PubKey()] = 1
	lookup.set("alice", Active, auth)

	ok, err := Satisfied(lookup, "alice", Active, map[crypto.PublicKey]struct{}{key.PubKey(): {}})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Satisfied(lookup, "alice", Active, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSatisfiedRecursesThroughSubAccount(t *testing.T) {
	key, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)

	lookup := newFakeLookup()
	subAuth := New(1)
	subAuth.Keys[key.PubKey()] = 1
	lookup.set("treasury", Active, subAuth)

	topAuth := New(1)
	topAuth.Accounts["treasury"] = 1
	lookup.set("alice", Active, topAuth)

	ok, err := Satisfied(lookup, "alice", Active, map[crypto.PublicKey]struct{}{key.PubKey(): {}})
	require.NoError(t, err)
	require.True(t, ok)
}
