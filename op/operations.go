package op

import (
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
)

// Operation is the closed tagged union of every transaction the core
// accepts (§6). Tag returns the operation's fixed wire tag.
type Operation interface {
	Tag() byte
}

// Wire tags, assigned in the order §6 lists the operation set. Stable once
// assigned: a wire format depends on these values never changing.
const (
	TagAccountCreate byte = iota
	TagAccountCreateWithDelegation
	TagAccountUpdate
	TagComment
	TagCommentOptions
	TagDeleteComment
	TagVote
	TagTransfer
	TagTransferToVesting
	TagWithdrawVesting
	TagSetWithdrawVestingRoute
	TagLimitOrderCreate
	TagLimitOrderCreate2
	TagLimitOrderCancel
	TagFeedPublish
	TagConvert
	TagWitnessUpdate
	TagWitnessSetProperties
	TagAccountWitnessVote
	TagAccountWitnessProxy
	TagCustom
	TagCustomJSON
	TagCustomBinary
	TagReportOverProduction
	TagEscrowTransfer
	TagEscrowApprove
	TagEscrowDispute
	TagEscrowRelease
	TagClaimAccount
	TagCreateClaimedAccount
	TagRequestAccountRecovery
	TagRecoverAccount
	TagChangeRecoveryAccount
	TagTransferToSavings
	TagTransferFromSavings
	TagCancelTransferFromSavings
	TagDeclineVotingRights
	TagResetAccount
	TagSetResetAccount
	TagClaimRewardBalance
	TagDelegateVestingShares
)

// --- account ---

type AccountCreate struct {
	Fee            asset.Asset
	Creator        string
	NewAccountName string
	Owner          authority.Authority
	Active         authority.Authority
	Posting        authority.Authority
	MemoKey        string
	JSONMetadata   string
}

func (AccountCreate) Tag() byte { return TagAccountCreate }

type AccountCreateWithDelegation struct {
	Fee            asset.Asset
	Delegation     asset.Asset
	Creator        string
	NewAccountName string
	Owner          authority.Authority
	Active         authority.Authority
	Posting        authority.Authority
	MemoKey        string
	JSONMetadata   string
}

func (AccountCreateWithDelegation) Tag() byte { return TagAccountCreateWithDelegation }

type AccountUpdate struct {
	Account      string
	Owner        *authority.Authority `rlp:"nil"`
	Active       *authority.Authority `rlp:"nil"`
	Posting      *authority.Authority `rlp:"nil"`
	MemoKey      string
	JSONMetadata string
}

func (AccountUpdate) Tag() byte { return TagAccountUpdate }

type ClaimAccount struct {
	Creator string
	Fee     asset.Asset
}

func (ClaimAccount) Tag() byte { return TagClaimAccount }

type CreateClaimedAccount struct {
	Creator        string
	NewAccountName string
	Owner          authority.Authority
	Active         authority.Authority
	Posting        authority.Authority
	MemoKey        string
	JSONMetadata   string
}

func (CreateClaimedAccount) Tag() byte { return TagCreateClaimedAccount }

type RequestAccountRecovery struct {
	RecoveryAccount  string
	AccountToRecover string
	NewOwnerAuthority authority.Authority
}

func (RequestAccountRecovery) Tag() byte { return TagRequestAccountRecovery }

type RecoverAccount struct {
	AccountToRecover   string
	NewOwnerAuthority  authority.Authority
	RecentOwnerAuthority authority.Authority
}

func (RecoverAccount) Tag() byte { return TagRecoverAccount }

type ChangeRecoveryAccount struct {
	AccountToRecover string
	NewRecoveryAccount string
}

func (ChangeRecoveryAccount) Tag() byte { return TagChangeRecoveryAccount }

type DeclineVotingRights struct {
	Account string
	Decline bool
}

func (DeclineVotingRights) Tag() byte { return TagDeclineVotingRights }

type ResetAccount struct {
	ResetAccount    string
	AccountToReset  string
	NewOwnerAuthority authority.Authority
}

func (ResetAccount) Tag() byte { return TagResetAccount }

type SetResetAccount struct {
	Account         string
	CurrentResetAccount string
	ResetAccount    string
}

func (SetResetAccount) Tag() byte { return TagSetResetAccount }

// --- vesting ---

type TransferToVesting struct {
	From   string
	To     string
	Amount asset.Asset
}

func (TransferToVesting) Tag() byte { return TagTransferToVesting }

type WithdrawVesting struct {
	Account       string
	VestingShares asset.Asset
}

func (WithdrawVesting) Tag() byte { return TagWithdrawVesting }

type SetWithdrawVestingRoute struct {
	FromAccount string
	ToAccount   string
	PercentBps  uint16
	AutoVest    bool
}

func (SetWithdrawVestingRoute) Tag() byte { return TagSetWithdrawVestingRoute }

type DelegateVestingShares struct {
	Delegator     string
	Delegatee     string
	VestingShares asset.Asset
}

func (DelegateVestingShares) Tag() byte { return TagDelegateVestingShares }

type AccountWitnessVote struct {
	Account string
	Witness string
	Approve bool
}

func (AccountWitnessVote) Tag() byte { return TagAccountWitnessVote }

type AccountWitnessProxy struct {
	Account string
	Proxy   string
}

func (AccountWitnessProxy) Tag() byte { return TagAccountWitnessProxy }

// --- content ---

type Comment struct {
	ParentAuthor   string
	ParentPermlink string
	Author         string
	Permlink       string
	Title          string
	Body           string
	JSONMetadata   string
}

func (Comment) Tag() byte { return TagComment }

// CommentOptionsBeneficiary mirrors types.Beneficiary at the wire layer.
type CommentOptionsBeneficiary struct {
	Account string
	Weight  uint16
}

type CommentOptions struct {
	Author               string
	Permlink             string
	MaxAcceptedPayout    asset.Asset
	PercentDollars       uint16
	AllowVotes           bool
	AllowCurationRewards bool
	Beneficiaries        []CommentOptionsBeneficiary
}

func (CommentOptions) Tag() byte { return TagCommentOptions }

type DeleteComment struct {
	Author   string
	Permlink string
}

func (DeleteComment) Tag() byte { return TagDeleteComment }

type Vote struct {
	Voter    string
	Author   string
	Permlink string
	Weight   int16
}

func (Vote) Tag() byte { return TagVote }

// --- transfer ---

type Transfer struct {
	From   string
	To     string
	Amount asset.Asset
	Memo   string
}

func (Transfer) Tag() byte { return TagTransfer }

type ClaimRewardBalance struct {
	Account       string
	RewardLiquid  asset.Asset
	RewardDollar  asset.Asset
	RewardVesting asset.Asset
}

func (ClaimRewardBalance) Tag() byte { return TagClaimRewardBalance }

// --- market ---

type LimitOrderCreate struct {
	Owner        string
	OrderID      uint32
	AmountToSell asset.Asset
	MinToReceive asset.Asset
	FillOrKill   bool
	Expiration   uint32
}

func (LimitOrderCreate) Tag() byte { return TagLimitOrderCreate }

type LimitOrderCreate2 struct {
	Owner        string
	OrderID      uint32
	AmountToSell asset.Asset
	ExchangeRate asset.Price
	FillOrKill   bool
	Expiration   uint32
}

func (LimitOrderCreate2) Tag() byte { return TagLimitOrderCreate2 }

type LimitOrderCancel struct {
	Owner   string
	OrderID uint32
}

func (LimitOrderCancel) Tag() byte { return TagLimitOrderCancel }

type FeedPublish struct {
	Publisher           string
	ExchangeRate        asset.Price
}

func (FeedPublish) Tag() byte { return TagFeedPublish }

type Convert struct {
	Owner     string
	RequestID uint32
	Amount    asset.Asset
}

func (Convert) Tag() byte { return TagConvert }

// --- escrow ---

type EscrowTransfer struct {
	From                 string
	To                   string
	Agent                string
	EscrowID             uint32
	DollarAmount         asset.Asset
	LiquidAmount         asset.Asset
	Fee                  asset.Asset
	RatificationDeadline uint32
	Expiration           uint32
	JSONMeta             string
}

func (EscrowTransfer) Tag() byte { return TagEscrowTransfer }

type EscrowApprove struct {
	From     string
	To       string
	Agent    string
	Who      string
	EscrowID uint32
	Approve  bool
}

func (EscrowApprove) Tag() byte { return TagEscrowApprove }

type EscrowDispute struct {
	From     string
	To       string
	Agent    string
	Who      string
	EscrowID uint32
}

func (EscrowDispute) Tag() byte { return TagEscrowDispute }

type EscrowRelease struct {
	From     string
	To       string
	Agent    string
	Who      string
	Receiver string
	EscrowID uint32
	DollarAmount asset.Asset
	LiquidAmount asset.Asset
}

func (EscrowRelease) Tag() byte { return TagEscrowRelease }

// --- savings ---

type TransferToSavings struct {
	From   string
	To     string
	Amount asset.Asset
	Memo   string
}

func (TransferToSavings) Tag() byte { return TagTransferToSavings }

type TransferFromSavings struct {
	From      string
	RequestID uint32
	To        string
	Amount    asset.Asset
	Memo      string
}

func (TransferFromSavings) Tag() byte { return TagTransferFromSavings }

type CancelTransferFromSavings struct {
	From      string
	RequestID uint32
}

func (CancelTransferFromSavings) Tag() byte { return TagCancelTransferFromSavings }

// --- witness ---

type WitnessUpdate struct {
	Owner      string
	URL        string
	SigningKeyHex string
	Props      WitnessPropsWire
	Fee        asset.Asset
}

func (WitnessUpdate) Tag() byte { return TagWitnessUpdate }

// WitnessPropsWire mirrors types.WitnessProps at the operation layer.
type WitnessPropsWire struct {
	AccountCreationFee  asset.Asset
	MaximumBlockSize    uint32
	DollarInterestRate  uint16
	AccountSubsidyLimit uint32
}

// WitnessProp is one entry of witness_set_properties' key-value map,
// flattened to a slice since rlp has no native map type.
type WitnessProp struct {
	Key   string
	Value []byte
}

type WitnessSetProperties struct {
	Owner string
	Props []WitnessProp
}

func (WitnessSetProperties) Tag() byte { return TagWitnessSetProperties }

// PropsMap rebuilds the key-value map evaluators look up against.
func (w WitnessSetProperties) PropsMap() map[string][]byte {
	m := make(map[string][]byte, len(w.Props))
	for _, p := range w.Props {
		m[p.Key] = p.Value
	}
	return m
}

// --- custom / passthrough ---

type Custom struct {
	RequiredAuths []string
	ID            uint16
	Data          []byte
}

func (Custom) Tag() byte { return TagCustom }

type CustomJSON struct {
	RequiredAuths        []string
	RequiredPostingAuths []string
	ID                   string
	JSON                 string
}

func (CustomJSON) Tag() byte { return TagCustomJSON }

type CustomBinary struct {
	RequiredOwnerAuths   []string
	RequiredActiveAuths  []string
	RequiredPostingAuths []string
	ID                   string
	Data                 []byte
}

func (CustomBinary) Tag() byte { return TagCustomBinary }

type ReportOverProduction struct {
	Reporter    string
	FirstBlock  []byte
	SecondBlock []byte
}

func (ReportOverProduction) Tag() byte { return TagReportOverProduction }
