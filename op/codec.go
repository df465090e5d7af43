package op

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// Encode serializes op as its one-byte tag followed by its rlp-encoded
// fields in declaration order, the wire format §6 specifies.
func Encode(operation Operation) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(operation.Tag())
	if err := rlp.Encode(&buf, operation); err != nil {
		return nil, fmt.Errorf("op: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the tag byte and dispatches to the matching operation type.
func Decode(data []byte) (Operation, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("op: empty payload")
	}
	tag, body := data[0], data[1:]
	factory, ok := decoders[tag]
	if !ok {
		return nil, fmt.Errorf("op: unknown tag %d", tag)
	}
	return factory(body)
}

var decoders = map[byte]func([]byte) (Operation, error){
	TagAccountCreate:               decodeInto(func() Operation { return &AccountCreate{} }),
	TagAccountCreateWithDelegation: decodeInto(func() Operation { return &AccountCreateWithDelegation{} }),
	TagAccountUpdate:               decodeInto(func() Operation { return &AccountUpdate{} }),
	TagComment:                     decodeInto(func() Operation { return &Comment{} }),
	TagCommentOptions:              decodeInto(func() Operation { return &CommentOptions{} }),
	TagDeleteComment:               decodeInto(func() Operation { return &DeleteComment{} }),
	TagVote:                        decodeInto(func() Operation { return &Vote{} }),
	TagTransfer:                    decodeInto(func() Operation { return &Transfer{} }),
	TagTransferToVesting:           decodeInto(func() Operation { return &TransferToVesting{} }),
	TagWithdrawVesting:             decodeInto(func() Operation { return &WithdrawVesting{} }),
	TagSetWithdrawVestingRoute:     decodeInto(func() Operation { return &SetWithdrawVestingRoute{} }),
	TagLimitOrderCreate:            decodeInto(func() Operation { return &LimitOrderCreate{} }),
	TagLimitOrderCreate2:           decodeInto(func() Operation { return &LimitOrderCreate2{} }),
	TagLimitOrderCancel:            decodeInto(func() Operation { return &LimitOrderCancel{} }),
	TagFeedPublish:                 decodeInto(func() Operation { return &FeedPublish{} }),
	TagConvert:                     decodeInto(func() Operation { return &Convert{} }),
	TagWitnessUpdate:               decodeInto(func() Operation { return &WitnessUpdate{} }),
	TagWitnessSetProperties:        decodeInto(func() Operation { return &WitnessSetProperties{} }),
	TagAccountWitnessVote:          decodeInto(func() Operation { return &AccountWitnessVote{} }),
	TagAccountWitnessProxy:         decodeInto(func() Operation { return &AccountWitnessProxy{} }),
	TagCustom:                      decodeInto(func() Operation { return &Custom{} }),
	TagCustomJSON:                  decodeInto(func() Operation { return &CustomJSON{} }),
	TagCustomBinary:                decodeInto(func() Operation { return &CustomBinary{} }),
	TagReportOverProduction:        decodeInto(func() Operation { return &ReportOverProduction{} }),
	TagEscrowTransfer:              decodeInto(func() Operation { return &EscrowTransfer{} }),
	TagEscrowApprove:               decodeInto(func() Operation { return &EscrowApprove{} }),
	TagEscrowDispute:               decodeInto(func() Operation { return &EscrowDispute{} }),
	TagEscrowRelease:               decodeInto(func() Operation { return &EscrowRelease{} }),
	TagClaimAccount:                decodeInto(func() Operation { return &ClaimAccount{} }),
	TagCreateClaimedAccount:        decodeInto(func() Operation { return &CreateClaimedAccount{} }),
	TagRequestAccountRecovery:      decodeInto(func() Operation { return &RequestAccountRecovery{} }),
	TagRecoverAccount:              decodeInto(func() Operation { return &RecoverAccount{} }),
	TagChangeRecoveryAccount:       decodeInto(func() Operation { return &ChangeRecoveryAccount{} }),
	TagTransferToSavings:           decodeInto(func() Operation { return &TransferToSavings{} }),
	TagTransferFromSavings:         decodeInto(func() Operation { return &TransferFromSavings{} }),
	TagCancelTransferFromSavings:   decodeInto(func() Operation { return &CancelTransferFromSavings{} }),
	TagDeclineVotingRights:         decodeInto(func() Operation { return &DeclineVotingRights{} }),
	TagResetAccount:                decodeInto(func() Operation { return &ResetAccount{} }),
	TagSetResetAccount:             decodeInto(func() Operation { return &SetResetAccount{} }),
	TagClaimRewardBalance:          decodeInto(func() Operation { return &ClaimRewardBalance{} }),
	TagDelegateVestingShares:       decodeInto(func() Operation { return &DelegateVestingShares{} }),
}

func decodeInto(zero func() Operation) func([]byte) (Operation, error) {
	return func(body []byte) (Operation, error) {
		v := zero()
		if err := rlp.DecodeBytes(body, v); err != nil {
			return nil, fmt.Errorf("op: decode: %w", err)
		}
		return v, nil
	}
}
