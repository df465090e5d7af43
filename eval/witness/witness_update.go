// Package witness implements witness_update and witness_set_properties,
// the two operations a block producer candidate uses to register and
// maintain its schedule-eligibility row (spec §4.8).
package witness

import (
	"encoding/hex"
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyWitnessUpdate implements witness_update: creates the witness row on
// first use, or updates URL/signing key/median-vote props on an existing
// one. SigningKeyHex == "" resigns the witness from producer eligibility
// without removing its vote history, by blanking the signing key so no
// block can ever validate under it.
func ApplyWitnessUpdate(db *state.Database, ctx *op.Context, tx op.WitnessUpdate) error {
	if err := ctx.RequireAuthority(db, tx.Owner, authority.Active); err != nil {
		return err
	}
	if !db.AccountExists(tx.Owner) {
		return fmt.Errorf("witness_update: %w", errs.ErrAccountNotFound)
	}

	var signingKey crypto.PublicKey
	if tx.SigningKeyHex != "" {
		raw, err := hex.DecodeString(tx.SigningKeyHex)
		if err != nil {
			return fmt.Errorf("witness_update: %w", errs.ErrOutOfRange)
		}
		key, err := crypto.ParsePublicKey(raw)
		if err != nil {
			return fmt.Errorf("witness_update: %w", errs.ErrOutOfRange)
		}
		signingKey = key
	}

	props := types.WitnessProps{
		AccountCreationFee:  tx.Props.AccountCreationFee,
		MaximumBlockSize:    tx.Props.MaximumBlockSize,
		DollarInterestRate:  tx.Props.DollarInterestRate,
		AccountSubsidyLimit: tx.Props.AccountSubsidyLimit,
	}

	session := db.Begin()
	if _, ok := db.GetWitness(tx.Owner); ok {
		if _, err := db.ModifyWitness(tx.Owner, func(w types.Witness) types.Witness {
			w.URL = tx.URL
			w.SigningKey = signingKey
			w.Props = props
			return w
		}); err != nil {
			session.Rollback()
			return err
		}
	} else {
		if err := db.CreateWitness(types.Witness{
			Owner:      tx.Owner,
			URL:        tx.URL,
			SigningKey: signingKey,
			Props:      props,
			Created:    ctx.HeadBlockTime,
		}); err != nil {
			session.Rollback()
			return err
		}
	}
	session.Commit()
	return nil
}
