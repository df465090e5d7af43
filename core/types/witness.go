package types

import (
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/crypto"
)

// WitnessProps are the median-consensus-controlled parameters a witness
// proposes; WitnessSchedule.MedianProps is the elected median across the active
// schedule.
type WitnessProps struct {
	AccountCreationFee  asset.Asset
	MaximumBlockSize    uint32
	DollarInterestRate  uint16
	AccountSubsidyLimit uint32
}

// Witness is a block-producer candidate. Votes is the raw vote count used
// to rank witnesses into the active schedule; VirtualLastUpdate/Position/
// ScheduledTime back the witness-selection virtual-time algorithm.
type Witness struct {
	Owner     string
	URL       string
	SigningKey crypto.PublicKey

	Props WitnessProps

	DollarExchangeRate       asset.Price
	LastDollarExchangeUpdate uint32

	TotalMissed          uint32
	LastConfirmedBlockNum uint32

	Votes int64

	VirtualLastUpdate uint64
	VirtualPosition   uint64
	VirtualScheduledTime uint64

	Created uint32
}
