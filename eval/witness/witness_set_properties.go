package witness

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyWitnessSetProperties implements witness_set_properties: a sparse
// key-value update to an already-existing witness row, each value
// individually RLP-decoded against the type its key implies. Unrecognized
// keys are ignored, the same forward-compatible stance the wire codec
// takes for unknown operation tags.
func ApplyWitnessSetProperties(db *state.Database, ctx *op.Context, tx op.WitnessSetProperties) error {
	if err := ctx.RequireAuthority(db, tx.Owner, authority.Active); err != nil {
		return err
	}
	w, ok := db.GetWitness(tx.Owner)
	if !ok {
		return fmt.Errorf("witness_set_properties: %w", errs.ErrWitnessNotFound)
	}
	props := tx.PropsMap()

	if raw, present := props["url"]; present {
		var url string
		if err := rlp.DecodeBytes(raw, &url); err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		w.URL = url
	}
	if raw, present := props["new_signing_key"]; present {
		var keyBytes []byte
		if err := rlp.DecodeBytes(raw, &keyBytes); err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		key, err := crypto.ParsePublicKey(keyBytes)
		if err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		w.SigningKey = key
	}
	if raw, present := props["account_creation_fee"]; present {
		var fee asset.Asset
		if err := rlp.DecodeBytes(raw, &fee); err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		w.Props.AccountCreationFee = fee
	}
	if raw, present := props["maximum_block_size"]; present {
		var size uint32
		if err := rlp.DecodeBytes(raw, &size); err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		w.Props.MaximumBlockSize = size
	}
	if raw, present := props["dollar_interest_rate"]; present {
		var rate uint16
		if err := rlp.DecodeBytes(raw, &rate); err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		w.Props.DollarInterestRate = rate
	}
	if raw, present := props["account_subsidy_limit"]; present {
		var limit uint32
		if err := rlp.DecodeBytes(raw, &limit); err != nil {
			return fmt.Errorf("witness_set_properties: %w", errs.ErrOutOfRange)
		}
		w.Props.AccountSubsidyLimit = limit
	}

	session := db.Begin()
	if _, err := db.ModifyWitness(tx.Owner, func(types.Witness) types.Witness { return w }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
