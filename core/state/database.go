// Package state aggregates every object table the core mutates into one
// Database handle, and implements authority.Lookup so evaluators can
// resolve signer weights directly against it.
package state

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/store"
)

// Database is the single transactional handle every evaluator and
// housekeeping task operates against. Every table it owns shares one
// UndoLog, so a single Session.Rollback unwinds every table at once, the
// "multi-versioned object store" of spec §5.
type Database struct {
	undo *store.UndoLog

	accounts       *store.Table[types.Account]
	accountsByName *store.UniqueIndex[string, types.Account]

	authorities       *store.Table[types.AccountAuthority]
	authoritiesByName *store.UniqueIndex[string, types.AccountAuthority]

	ownerAuthorityHistory *store.Table[types.OwnerAuthorityHistory]

	Comments            *store.Table[types.Comment]
	commentsByAuthorPerm *store.UniqueIndex[authorPermlinkKey, types.Comment]
	CommentsByCashout   *store.Index[types.Comment]

	CommentVotes      *store.Table[types.CommentVote]
	commentVotesByKey *store.UniqueIndex[commentVoterKey, types.CommentVote]

	LimitOrders      *store.Table[types.LimitOrder]
	limitOrdersByKey *store.UniqueIndex[sellerOrderKey, types.LimitOrder]
	LimitOrdersByExpiration *store.Index[types.LimitOrder]
	LimitOrdersByPrice      *store.Index[types.LimitOrder]

	ConvertRequests            *store.Table[types.ConvertRequest]
	convertRequestsByKey       *store.UniqueIndex[ownerRequestKey, types.ConvertRequest]
	ConvertRequestsByDate      *store.Index[types.ConvertRequest]

	Escrows      *store.Table[types.Escrow]
	escrowsByID  *store.UniqueIndex[uint32, types.Escrow]
	EscrowsByRatificationDeadline *store.Index[types.Escrow]

	SavingsWithdraws      *store.Table[types.SavingsWithdraw]
	savingsWithdrawsByKey *store.UniqueIndex[fromRequestKey, types.SavingsWithdraw]
	SavingsWithdrawsByCompletion *store.Index[types.SavingsWithdraw]

	VestingDelegations      *store.Table[types.VestingDelegation]
	vestingDelegationsByKey *store.UniqueIndex[delegatorDelegateeKey, types.VestingDelegation]

	VestingDelegationExpirations      *store.Table[types.VestingDelegationExpiration]
	VestingDelegationExpirationsByTime *store.Index[types.VestingDelegationExpiration]

	WithdrawVestingRoutes      *store.Table[types.WithdrawVestingRoute]
	withdrawVestingRoutesByKey *store.UniqueIndex[fromToKey, types.WithdrawVestingRoute]

	Witnesses      *store.Table[types.Witness]
	witnessesByOwner *store.UniqueIndex[string, types.Witness]
	WitnessesByVotes *store.Index[types.Witness]

	RewardFunds      *store.Table[types.RewardFund]
	rewardFundsByName *store.UniqueIndex[string, types.RewardFund]

	AccountRecoveryRequests       *store.Table[types.AccountRecoveryRequest]
	accountRecoveryRequestsByAcct *store.UniqueIndex[string, types.AccountRecoveryRequest]
	AccountRecoveryRequestsByExpiration *store.Index[types.AccountRecoveryRequest]

	ChangeRecoveryAccountRequests       *store.Table[types.ChangeRecoveryAccountRequest]
	changeRecoveryRequestsByAcct        *store.UniqueIndex[string, types.ChangeRecoveryAccountRequest]
	ChangeRecoveryAccountRequestsByEffective *store.Index[types.ChangeRecoveryAccountRequest]

	DeclineVotingRightsRequests       *store.Table[types.DeclineVotingRightsRequest]
	declineVotingRightsRequestsByAcct *store.UniqueIndex[string, types.DeclineVotingRightsRequest]
	DeclineVotingRightsRequestsByEffective *store.Index[types.DeclineVotingRightsRequest]

	Globals  types.DynamicGlobalProperties
	Schedule types.WitnessSchedule
	Feed     types.FeedHistory

	Events types.EventLog
}

type authorPermlinkKey struct {
	Author   string
	Permlink string
}

type commentVoterKey struct {
	Comment store.ObjectID
	Voter   string
}

type sellerOrderKey struct {
	Seller  string
	OrderID uint32
}

type ownerRequestKey struct {
	Owner     string
	RequestID uint32
}

type fromRequestKey struct {
	From      string
	RequestID uint32
}

type delegatorDelegateeKey struct {
	Delegator string
	Delegatee string
}

type fromToKey struct {
	From string
	To   string
}

// NewDatabase builds an empty Database with every table and index wired
// together, ready for a genesis load.
func NewDatabase() *Database {
	undo := store.NewUndoLog()
	db := &Database{undo: undo}

	db.accounts = store.NewTable[types.Account]("accounts", undo)
	db.accountsByName = store.NewUniqueIndex[string, types.Account]()
	db.accounts.OnMutate(store.Bind(db.accountsByName, func(a types.Account) string { return a.Name }))

	db.authorities = store.NewTable[types.AccountAuthority]("authorities", undo)
	db.authoritiesByName = store.NewUniqueIndex[string, types.AccountAuthority]()
	db.authorities.OnMutate(store.Bind(db.authoritiesByName, func(a types.AccountAuthority) string { return a.Account }))

	db.ownerAuthorityHistory = store.NewTable[types.OwnerAuthorityHistory]("owner_authority_history", undo)

	db.Comments = store.NewTable[types.Comment]("comments", undo)
	db.commentsByAuthorPerm = store.NewUniqueIndex[authorPermlinkKey, types.Comment]()
	db.Comments.OnMutate(store.Bind(db.commentsByAuthorPerm, func(c types.Comment) authorPermlinkKey {
		return authorPermlinkKey{Author: c.Author, Permlink: c.Permlink}
	}))
	db.CommentsByCashout = store.NewIndex[types.Comment](func(a, b types.Comment, aID, bID store.ObjectID) bool {
		if a.CashoutTime != b.CashoutTime {
			return a.CashoutTime < b.CashoutTime
		}
		return aID < bID
	})
	db.Comments.RegisterIndex(db.CommentsByCashout)

	db.CommentVotes = store.NewTable[types.CommentVote]("comment_votes", undo)
	db.commentVotesByKey = store.NewUniqueIndex[commentVoterKey, types.CommentVote]()
	db.CommentVotes.OnMutate(store.Bind(db.commentVotesByKey, func(v types.CommentVote) commentVoterKey {
		return commentVoterKey{Comment: store.ObjectID(v.Comment), Voter: v.Voter}
	}))

	db.LimitOrders = store.NewTable[types.LimitOrder]("limit_orders", undo)
	db.limitOrdersByKey = store.NewUniqueIndex[sellerOrderKey, types.LimitOrder]()
	db.LimitOrders.OnMutate(store.Bind(db.limitOrdersByKey, func(o types.LimitOrder) sellerOrderKey {
		return sellerOrderKey{Seller: o.Seller, OrderID: o.OrderID}
	}))
	db.LimitOrdersByExpiration = store.NewIndex[types.LimitOrder](func(a, b types.LimitOrder, aID, bID store.ObjectID) bool {
		if a.Expiration != b.Expiration {
			return a.Expiration < b.Expiration
		}
		return aID < bID
	})
	db.LimitOrders.RegisterIndex(db.LimitOrdersByExpiration)
	db.LimitOrdersByPrice = store.NewIndex[types.LimitOrder](func(a, b types.LimitOrder, aID, bID store.ObjectID) bool {
		aSell, _ := a.Symbols()
		bSell, _ := b.Symbols()
		if aSell != bSell {
			return aSell.String() < bSell.String()
		}
		if a.SellPrice.Equal(b.SellPrice) {
			return aID < bID
		}
		return a.SellPrice.LessThan(b.SellPrice)
	})
	db.LimitOrders.RegisterIndex(db.LimitOrdersByPrice)

	db.ConvertRequests = store.NewTable[types.ConvertRequest]("convert_requests", undo)
	db.convertRequestsByKey = store.NewUniqueIndex[ownerRequestKey, types.ConvertRequest]()
	db.ConvertRequests.OnMutate(store.Bind(db.convertRequestsByKey, func(c types.ConvertRequest) ownerRequestKey {
		return ownerRequestKey{Owner: c.Owner, RequestID: c.RequestID}
	}))
	db.ConvertRequestsByDate = store.NewIndex[types.ConvertRequest](func(a, b types.ConvertRequest, aID, bID store.ObjectID) bool {
		if a.ConversionDate != b.ConversionDate {
			return a.ConversionDate < b.ConversionDate
		}
		return aID < bID
	})
	db.ConvertRequests.RegisterIndex(db.ConvertRequestsByDate)

	db.Escrows = store.NewTable[types.Escrow]("escrows", undo)
	db.escrowsByID = store.NewUniqueIndex[uint32, types.Escrow]()
	db.Escrows.OnMutate(store.Bind(db.escrowsByID, func(e types.Escrow) uint32 { return e.EscrowID }))
	db.EscrowsByRatificationDeadline = store.NewIndex[types.Escrow](func(a, b types.Escrow, aID, bID store.ObjectID) bool {
		if a.RatificationDeadline != b.RatificationDeadline {
			return a.RatificationDeadline < b.RatificationDeadline
		}
		return aID < bID
	})
	db.Escrows.RegisterIndex(db.EscrowsByRatificationDeadline)

	db.SavingsWithdraws = store.NewTable[types.SavingsWithdraw]("savings_withdraws", undo)
	db.savingsWithdrawsByKey = store.NewUniqueIndex[fromRequestKey, types.SavingsWithdraw]()
	db.SavingsWithdraws.OnMutate(store.Bind(db.savingsWithdrawsByKey, func(s types.SavingsWithdraw) fromRequestKey {
		return fromRequestKey{From: s.From, RequestID: s.RequestID}
	}))
	db.SavingsWithdrawsByCompletion = store.NewIndex[types.SavingsWithdraw](func(a, b types.SavingsWithdraw, aID, bID store.ObjectID) bool {
		if a.Complete != b.Complete {
			return a.Complete < b.Complete
		}
		return aID < bID
	})
	db.SavingsWithdraws.RegisterIndex(db.SavingsWithdrawsByCompletion)

	db.VestingDelegations = store.NewTable[types.VestingDelegation]("vesting_delegations", undo)
	db.vestingDelegationsByKey = store.NewUniqueIndex[delegatorDelegateeKey, types.VestingDelegation]()
	db.VestingDelegations.OnMutate(store.Bind(db.vestingDelegationsByKey, func(d types.VestingDelegation) delegatorDelegateeKey {
		return delegatorDelegateeKey{Delegator: d.Delegator, Delegatee: d.Delegatee}
	}))

	db.VestingDelegationExpirations = store.NewTable[types.VestingDelegationExpiration]("vesting_delegation_expirations", undo)
	db.VestingDelegationExpirationsByTime = store.NewIndex[types.VestingDelegationExpiration](func(a, b types.VestingDelegationExpiration, aID, bID store.ObjectID) bool {
		if a.Expiration != b.Expiration {
			return a.Expiration < b.Expiration
		}
		return aID < bID
	})
	db.VestingDelegationExpirations.RegisterIndex(db.VestingDelegationExpirationsByTime)

	db.WithdrawVestingRoutes = store.NewTable[types.WithdrawVestingRoute]("withdraw_vesting_routes", undo)
	db.withdrawVestingRoutesByKey = store.NewUniqueIndex[fromToKey, types.WithdrawVestingRoute]()
	db.WithdrawVestingRoutes.OnMutate(store.Bind(db.withdrawVestingRoutesByKey, func(r types.WithdrawVestingRoute) fromToKey {
		return fromToKey{From: r.FromAccount, To: r.ToAccount}
	}))

	db.Witnesses = store.NewTable[types.Witness]("witnesses", undo)
	db.witnessesByOwner = store.NewUniqueIndex[string, types.Witness]()
	db.Witnesses.OnMutate(store.Bind(db.witnessesByOwner, func(w types.Witness) string { return w.Owner }))
	db.WitnessesByVotes = store.NewIndex[types.Witness](func(a, b types.Witness, aID, bID store.ObjectID) bool {
		if a.Votes != b.Votes {
			return a.Votes > b.Votes // descending: highest-voted first
		}
		return aID < bID
	})
	db.Witnesses.RegisterIndex(db.WitnessesByVotes)

	db.RewardFunds = store.NewTable[types.RewardFund]("reward_funds", undo)
	db.rewardFundsByName = store.NewUniqueIndex[string, types.RewardFund]()
	db.RewardFunds.OnMutate(store.Bind(db.rewardFundsByName, func(f types.RewardFund) string { return f.Name }))

	db.AccountRecoveryRequests = store.NewTable[types.AccountRecoveryRequest]("account_recovery_requests", undo)
	db.accountRecoveryRequestsByAcct = store.NewUniqueIndex[string, types.AccountRecoveryRequest]()
	db.AccountRecoveryRequests.OnMutate(store.Bind(db.accountRecoveryRequestsByAcct, func(r types.AccountRecoveryRequest) string {
		return r.AccountToRecover
	}))
	db.AccountRecoveryRequestsByExpiration = store.NewIndex[types.AccountRecoveryRequest](func(a, b types.AccountRecoveryRequest, aID, bID store.ObjectID) bool {
		if a.Expiration != b.Expiration {
			return a.Expiration < b.Expiration
		}
		return aID < bID
	})
	db.AccountRecoveryRequests.RegisterIndex(db.AccountRecoveryRequestsByExpiration)

	db.ChangeRecoveryAccountRequests = store.NewTable[types.ChangeRecoveryAccountRequest]("change_recovery_account_requests", undo)
	db.changeRecoveryRequestsByAcct = store.NewUniqueIndex[string, types.ChangeRecoveryAccountRequest]()
	db.ChangeRecoveryAccountRequests.OnMutate(store.Bind(db.changeRecoveryRequestsByAcct, func(r types.ChangeRecoveryAccountRequest) string {
		return r.AccountToRecover
	}))
	db.ChangeRecoveryAccountRequestsByEffective = store.NewIndex[types.ChangeRecoveryAccountRequest](func(a, b types.ChangeRecoveryAccountRequest, aID, bID store.ObjectID) bool {
		if a.Effective != b.Effective {
			return a.Effective < b.Effective
		}
		return aID < bID
	})
	db.ChangeRecoveryAccountRequests.RegisterIndex(db.ChangeRecoveryAccountRequestsByEffective)

	db.DeclineVotingRightsRequests = store.NewTable[types.DeclineVotingRightsRequest]("decline_voting_rights_requests", undo)
	db.declineVotingRightsRequestsByAcct = store.NewUniqueIndex[string, types.DeclineVotingRightsRequest]()
	db.DeclineVotingRightsRequests.OnMutate(store.Bind(db.declineVotingRightsRequestsByAcct, func(r types.DeclineVotingRightsRequest) string {
		return r.Account
	}))
	db.DeclineVotingRightsRequestsByEffective = store.NewIndex[types.DeclineVotingRightsRequest](func(a, b types.DeclineVotingRightsRequest, aID, bID store.ObjectID) bool {
		if a.Effective != b.Effective {
			return a.Effective < b.Effective
		}
		return aID < bID
	})
	db.DeclineVotingRightsRequests.RegisterIndex(db.DeclineVotingRightsRequestsByEffective)

	return db
}

// Begin opens a new undo save-point shared by every table in the database.
func (db *Database) Begin() *store.Session {
	return db.undo.Begin()
}

// --- Account accessors ---

// GetAccount looks up an account by name.
func (db *Database) GetAccount(name string) (types.Account, bool) {
	id, ok := db.accountsByName.Lookup(name)
	if !ok {
		return types.Account{}, false
	}
	return db.accounts.Get(id)
}

// MustGetAccount looks up an account, returning a precondition error if
// absent.
func (db *Database) MustGetAccount(name string) (types.Account, error) {
	a, ok := db.GetAccount(name)
	if !ok {
		return types.Account{}, fmt.Errorf("state: account %q not found", name)
	}
	return a, nil
}

// AccountExists reports whether name is a known account, the predicate
// authority.Authority.Validate and every evaluator's account-reference
// check need.
func (db *Database) AccountExists(name string) bool {
	_, ok := db.accountsByName.Lookup(name)
	return ok
}

// CreateAccount inserts a new account row, failing if the name is taken.
func (db *Database) CreateAccount(a types.Account) error {
	if err := store.CheckUnique(db.accountsByName, a.Name, fmt.Sprintf("account %q", a.Name)); err != nil {
		return err
	}
	db.accounts.Create(func(store.ObjectID) types.Account { return a })
	return nil
}

// ModifyAccount applies mutate to the named account's row.
func (db *Database) ModifyAccount(name string, mutate func(types.Account) types.Account) (types.Account, error) {
	id, ok := db.accountsByName.Lookup(name)
	if !ok {
		return types.Account{}, fmt.Errorf("state: account %q not found", name)
	}
	return db.accounts.Modify(id, mutate)
}

// --- Authority accessors ---

// GetAccountAuthority looks up an account's authority triple.
func (db *Database) GetAccountAuthority(name string) (types.AccountAuthority, bool) {
	id, ok := db.authoritiesByName.Lookup(name)
	if !ok {
		return types.AccountAuthority{}, false
	}
	return db.authorities.Get(id)
}

// CreateAccountAuthority inserts a new authority row.
func (db *Database) CreateAccountAuthority(a types.AccountAuthority) error {
	if err := store.CheckUnique(db.authoritiesByName, a.Account, fmt.Sprintf("authority %q", a.Account)); err != nil {
		return err
	}
	db.authorities.Create(func(store.ObjectID) types.AccountAuthority { return a })
	return nil
}

// ModifyAccountAuthority applies mutate to the named account's authority row.
func (db *Database) ModifyAccountAuthority(name string, mutate func(types.AccountAuthority) types.AccountAuthority) (types.AccountAuthority, error) {
	id, ok := db.authoritiesByName.Lookup(name)
	if !ok {
		return types.AccountAuthority{}, fmt.Errorf("state: authority for %q not found", name)
	}
	return db.authorities.Modify(id, mutate)
}

// ArchiveOwnerAuthority records a superseded owner authority so a later
// recover_account can validate a recent_owner_authority claim against it.
func (db *Database) ArchiveOwnerAuthority(entry types.OwnerAuthorityHistory) {
	db.ownerAuthorityHistory.Create(func(store.ObjectID) types.OwnerAuthorityHistory { return entry })
}

// OwnerAuthorityHistoryFor returns every archived owner authority for
// account with LastValidTime >= sinceTime, the OWNER_AUTH_RECOVERY_PERIOD
// lookback window recover_account checks against.
func (db *Database) OwnerAuthorityHistoryFor(account string, sinceTime uint32) []types.OwnerAuthorityHistory {
	var out []types.OwnerAuthorityHistory
	db.ownerAuthorityHistory.Each(func(_ store.ObjectID, h types.OwnerAuthorityHistory) bool {
		if h.Account == account && h.LastValidTime >= sinceTime {
			out = append(out, h)
		}
		return true
	})
	return out
}

// --- authority.Lookup implementation ---

// Authority resolves an account's authority at the given level, satisfying
// authority.Lookup.
func (db *Database) Authority(name string, level authority.Level) (*authority.Authority, bool) {
	aa, ok := db.GetAccountAuthority(name)
	if !ok {
		return nil, false
	}
	switch level {
	case authority.Owner:
		return &aa.Owner, true
	case authority.Active:
		return &aa.Active, true
	case authority.Posting:
		return &aa.Posting, true
	default:
		return nil, false
	}
}

// AccountID resolves name to its dense store.ObjectID, satisfying
// authority.Lookup; it is only used as a roaring-bitmap visited-set key and
// need not be stable across restarts.
func (db *Database) AccountID(name string) (uint32, bool) {
	id, ok := db.accountsByName.Lookup(name)
	if !ok {
		return 0, false
	}
	return uint32(id), true
}

// --- Recovery & decline-voting-rights accessors ---

// GetAccountRecoveryRequest looks up the pending recovery request against
// account, if any.
func (db *Database) GetAccountRecoveryRequest(account string) (types.AccountRecoveryRequest, bool) {
	id, ok := db.accountRecoveryRequestsByAcct.Lookup(account)
	if !ok {
		return types.AccountRecoveryRequest{}, false
	}
	return db.AccountRecoveryRequests.Get(id)
}

// PutAccountRecoveryRequest replaces any existing recovery request against
// req.AccountToRecover with req, matching request_account_recovery's
// "latest request wins" semantics.
func (db *Database) PutAccountRecoveryRequest(req types.AccountRecoveryRequest) {
	if id, ok := db.accountRecoveryRequestsByAcct.Lookup(req.AccountToRecover); ok {
		db.AccountRecoveryRequests.Remove(id)
	}
	db.AccountRecoveryRequests.Create(func(store.ObjectID) types.AccountRecoveryRequest { return req })
}

// RemoveAccountRecoveryRequest deletes the pending recovery request against
// account, if any.
func (db *Database) RemoveAccountRecoveryRequest(account string) {
	if id, ok := db.accountRecoveryRequestsByAcct.Lookup(account); ok {
		db.AccountRecoveryRequests.Remove(id)
	}
}

// GetChangeRecoveryAccountRequest looks up the pending recovery-partner
// change against account, if any.
func (db *Database) GetChangeRecoveryAccountRequest(account string) (types.ChangeRecoveryAccountRequest, bool) {
	id, ok := db.changeRecoveryRequestsByAcct.Lookup(account)
	if !ok {
		return types.ChangeRecoveryAccountRequest{}, false
	}
	return db.ChangeRecoveryAccountRequests.Get(id)
}

// PutChangeRecoveryAccountRequest replaces any existing pending request
// against req.AccountToRecover with req.
func (db *Database) PutChangeRecoveryAccountRequest(req types.ChangeRecoveryAccountRequest) {
	if id, ok := db.changeRecoveryRequestsByAcct.Lookup(req.AccountToRecover); ok {
		db.ChangeRecoveryAccountRequests.Remove(id)
	}
	db.ChangeRecoveryAccountRequests.Create(func(store.ObjectID) types.ChangeRecoveryAccountRequest { return req })
}

// RemoveChangeRecoveryAccountRequest deletes the pending recovery-partner
// change against account, if any.
func (db *Database) RemoveChangeRecoveryAccountRequest(account string) {
	if id, ok := db.changeRecoveryRequestsByAcct.Lookup(account); ok {
		db.ChangeRecoveryAccountRequests.Remove(id)
	}
}

// GetDeclineVotingRightsRequest looks up the pending decline-voting-rights
// request against account, if any.
func (db *Database) GetDeclineVotingRightsRequest(account string) (types.DeclineVotingRightsRequest, bool) {
	id, ok := db.declineVotingRightsRequestsByAcct.Lookup(account)
	if !ok {
		return types.DeclineVotingRightsRequest{}, false
	}
	return db.DeclineVotingRightsRequests.Get(id)
}

// PutDeclineVotingRightsRequest inserts a new decline-voting-rights request,
// failing if account already has one pending.
func (db *Database) PutDeclineVotingRightsRequest(req types.DeclineVotingRightsRequest) error {
	if err := store.CheckUnique(db.declineVotingRightsRequestsByAcct, req.Account, fmt.Sprintf("decline voting rights request for %q", req.Account)); err != nil {
		return err
	}
	db.DeclineVotingRightsRequests.Create(func(store.ObjectID) types.DeclineVotingRightsRequest { return req })
	return nil
}

// RemoveDeclineVotingRightsRequest deletes the pending request against
// account, if any.
func (db *Database) RemoveDeclineVotingRightsRequest(account string) {
	if id, ok := db.declineVotingRightsRequestsByAcct.Lookup(account); ok {
		db.DeclineVotingRightsRequests.Remove(id)
	}
}

// --- Vesting delegation & withdraw-route accessors ---

// GetVestingDelegation looks up the standing delegation from delegator to
// delegatee, if any.
func (db *Database) GetVestingDelegation(delegator, delegatee string) (types.VestingDelegation, bool) {
	id, ok := db.vestingDelegationsByKey.Lookup(delegatorDelegateeKey{Delegator: delegator, Delegatee: delegatee})
	if !ok {
		return types.VestingDelegation{}, false
	}
	return db.VestingDelegations.Get(id)
}

// CreateVestingDelegation inserts a new delegation row, failing if the
// (delegator, delegatee) pair already has one.
func (db *Database) CreateVestingDelegation(d types.VestingDelegation) error {
	key := delegatorDelegateeKey{Delegator: d.Delegator, Delegatee: d.Delegatee}
	if err := store.CheckUnique(db.vestingDelegationsByKey, key, fmt.Sprintf("vesting delegation %s->%s", d.Delegator, d.Delegatee)); err != nil {
		return err
	}
	db.VestingDelegations.Create(func(store.ObjectID) types.VestingDelegation { return d })
	return nil
}

// ModifyVestingDelegation applies mutate to the (delegator, delegatee)
// delegation row.
func (db *Database) ModifyVestingDelegation(delegator, delegatee string, mutate func(types.VestingDelegation) types.VestingDelegation) (types.VestingDelegation, error) {
	id, ok := db.vestingDelegationsByKey.Lookup(delegatorDelegateeKey{Delegator: delegator, Delegatee: delegatee})
	if !ok {
		return types.VestingDelegation{}, fmt.Errorf("state: vesting delegation %s->%s not found", delegator, delegatee)
	}
	return db.VestingDelegations.Modify(id, mutate)
}

// RemoveVestingDelegation deletes the (delegator, delegatee) delegation
// row, if present.
func (db *Database) RemoveVestingDelegation(delegator, delegatee string) {
	if id, ok := db.vestingDelegationsByKey.Lookup(delegatorDelegateeKey{Delegator: delegator, Delegatee: delegatee}); ok {
		db.VestingDelegations.Remove(id)
	}
}

// GetWithdrawVestingRoute looks up the route from `from` to `to`, if any.
func (db *Database) GetWithdrawVestingRoute(from, to string) (types.WithdrawVestingRoute, bool) {
	id, ok := db.withdrawVestingRoutesByKey.Lookup(fromToKey{From: from, To: to})
	if !ok {
		return types.WithdrawVestingRoute{}, false
	}
	return db.WithdrawVestingRoutes.Get(id)
}

// WithdrawVestingRoutesFrom returns every route configured against
// `from`, used to enforce the MAX_WITHDRAW_ROUTES count and the
// sum-of-percentages <= 100% invariant.
func (db *Database) WithdrawVestingRoutesFrom(from string) []types.WithdrawVestingRoute {
	var out []types.WithdrawVestingRoute
	db.WithdrawVestingRoutes.Each(func(_ store.ObjectID, r types.WithdrawVestingRoute) bool {
		if r.FromAccount == from {
			out = append(out, r)
		}
		return true
	})
	return out
}

// PutWithdrawVestingRoute creates or replaces the (from, to) route.
// PercentBps == 0 removes it instead.
func (db *Database) PutWithdrawVestingRoute(r types.WithdrawVestingRoute) {
	key := fromToKey{From: r.FromAccount, To: r.ToAccount}
	id, exists := db.withdrawVestingRoutesByKey.Lookup(key)
	if r.PercentBps == 0 {
		if exists {
			db.WithdrawVestingRoutes.Remove(id)
		}
		return
	}
	if exists {
		db.WithdrawVestingRoutes.Modify(id, func(types.WithdrawVestingRoute) types.WithdrawVestingRoute { return r })
		return
	}
	db.WithdrawVestingRoutes.Create(func(store.ObjectID) types.WithdrawVestingRoute { return r })
}

// --- Witness accessors ---

// GetWitness looks up a witness by owner account name.
func (db *Database) GetWitness(owner string) (types.Witness, bool) {
	id, ok := db.witnessesByOwner.Lookup(owner)
	if !ok {
		return types.Witness{}, false
	}
	return db.Witnesses.Get(id)
}

// WitnessExists reports whether owner has a registered witness.
func (db *Database) WitnessExists(owner string) bool {
	_, ok := db.witnessesByOwner.Lookup(owner)
	return ok
}

// CreateWitness inserts a new witness row, failing if owner already has
// one.
func (db *Database) CreateWitness(w types.Witness) error {
	if err := store.CheckUnique(db.witnessesByOwner, w.Owner, fmt.Sprintf("witness %q", w.Owner)); err != nil {
		return err
	}
	db.Witnesses.Create(func(store.ObjectID) types.Witness { return w })
	return nil
}

// ModifyWitness applies mutate to owner's witness row.
func (db *Database) ModifyWitness(owner string, mutate func(types.Witness) types.Witness) (types.Witness, error) {
	id, ok := db.witnessesByOwner.Lookup(owner)
	if !ok {
		return types.Witness{}, fmt.Errorf("state: witness %q not found", owner)
	}
	return db.Witnesses.Modify(id, mutate)
}

// --- Comment & vote accessors ---

// GetComment looks up a comment by (author, permlink), also returning its
// store.ObjectID since CommentVote and the root-comment-id tracking both
// reference comments by id rather than by name pair.
func (db *Database) GetComment(author, permlink string) (types.Comment, store.ObjectID, bool) {
	id, ok := db.commentsByAuthorPerm.Lookup(authorPermlinkKey{Author: author, Permlink: permlink})
	if !ok {
		return types.Comment{}, 0, false
	}
	c, ok := db.Comments.Get(id)
	return c, id, ok
}

// GetCommentByID looks up a comment by its store.ObjectID.
func (db *Database) GetCommentByID(id store.ObjectID) (types.Comment, bool) {
	return db.Comments.Get(id)
}

// CreateComment inserts a new comment row, failing if (author, permlink)
// is already taken.
func (db *Database) CreateComment(c types.Comment) (store.ObjectID, error) {
	key := authorPermlinkKey{Author: c.Author, Permlink: c.Permlink}
	if err := store.CheckUnique(db.commentsByAuthorPerm, key, fmt.Sprintf("comment %s/%s", c.Author, c.Permlink)); err != nil {
		return 0, err
	}
	id, _ := db.Comments.Create(func(store.ObjectID) types.Comment { return c })
	return id, nil
}

// ModifyComment applies mutate to the comment at id.
func (db *Database) ModifyComment(id store.ObjectID, mutate func(types.Comment) types.Comment) (types.Comment, error) {
	return db.Comments.Modify(id, mutate)
}

// RemoveComment deletes the comment at id.
func (db *Database) RemoveComment(id store.ObjectID) error {
	return db.Comments.Remove(id)
}

// GetCommentVote looks up voter's vote on the comment at commentID.
func (db *Database) GetCommentVote(commentID store.ObjectID, voter string) (types.CommentVote, store.ObjectID, bool) {
	id, ok := db.commentVotesByKey.Lookup(commentVoterKey{Comment: commentID, Voter: voter})
	if !ok {
		return types.CommentVote{}, 0, false
	}
	v, ok := db.CommentVotes.Get(id)
	return v, id, ok
}

// CreateCommentVote inserts a new vote row.
func (db *Database) CreateCommentVote(v types.CommentVote) error {
	key := commentVoterKey{Comment: store.ObjectID(v.Comment), Voter: v.Voter}
	if err := store.CheckUnique(db.commentVotesByKey, key, fmt.Sprintf("vote by %s", v.Voter)); err != nil {
		return err
	}
	db.CommentVotes.Create(func(store.ObjectID) types.CommentVote { return v })
	return nil
}

// ModifyCommentVote applies mutate to the vote row at id.
func (db *Database) ModifyCommentVote(id store.ObjectID, mutate func(types.CommentVote) types.CommentVote) (types.CommentVote, error) {
	return db.CommentVotes.Modify(id, mutate)
}

// VotesForComment returns every vote cast on the comment at commentID, in
// unspecified order; callers that need vote-weight-proportional curation
// payout sort as needed.
func (db *Database) VotesForComment(commentID store.ObjectID) []types.CommentVote {
	var out []types.CommentVote
	db.CommentVotes.Each(func(_ store.ObjectID, v types.CommentVote) bool {
		if v.Comment == uint64(commentID) {
			out = append(out, v)
		}
		return true
	})
	return out
}

// --- Market accessors ---

// GetLimitOrder looks up a standing order by its (seller, order_id) key.
func (db *Database) GetLimitOrder(seller string, orderID uint32) (types.LimitOrder, store.ObjectID, bool) {
	id, ok := db.limitOrdersByKey.Lookup(sellerOrderKey{Seller: seller, OrderID: orderID})
	if !ok {
		return types.LimitOrder{}, 0, false
	}
	o, _ := db.LimitOrders.Get(id)
	return o, id, true
}

// CreateLimitOrder inserts a new standing order, failing if the seller
// already has one open under the same order_id.
func (db *Database) CreateLimitOrder(o types.LimitOrder) (store.ObjectID, error) {
	if _, _, ok := db.GetLimitOrder(o.Seller, o.OrderID); ok {
		return 0, fmt.Errorf("state: limit order %s/%d already exists", o.Seller, o.OrderID)
	}
	id, _ := db.LimitOrders.Create(func(store.ObjectID) types.LimitOrder { return o })
	return id, nil
}

// ModifyLimitOrder applies mutate to the order at id, e.g. shrinking
// ForSale after a partial fill.
func (db *Database) ModifyLimitOrder(id store.ObjectID, mutate func(types.LimitOrder) types.LimitOrder) (types.LimitOrder, error) {
	return db.LimitOrders.Modify(id, mutate)
}

// RemoveLimitOrder deletes the order at id, e.g. on full fill, cancel or
// expiration.
func (db *Database) RemoveLimitOrder(id store.ObjectID) error {
	return db.LimitOrders.Remove(id)
}

// OrdersSellingBefore returns, oldest-expiration first, every standing
// order whose Expiration is at or before cutoff — the set housekeeping's
// expire-limit-orders step cancels.
func (db *Database) OrdersSellingBefore(cutoff uint32) []store.ObjectID {
	var out []store.ObjectID
	db.LimitOrdersByExpiration.Ascend(func(id store.ObjectID, o types.LimitOrder) bool {
		if o.Expiration > cutoff {
			return false
		}
		out = append(out, id)
		return true
	})
	return out
}

// BestOpposingOrder returns the best-priced standing order selling
// sellSymbol (i.e. the resting side of the book a new order selling
// wantSymbol can match against), the cheapest-per-unit first.
func (db *Database) BestOpposingOrder(sellSymbol asset.Symbol) (store.ObjectID, types.LimitOrder, bool) {
	var (
		foundID store.ObjectID
		foundO  types.LimitOrder
		found   bool
	)
	db.LimitOrdersByPrice.Ascend(func(id store.ObjectID, o types.LimitOrder) bool {
		base, _ := o.Symbols()
		if base != sellSymbol {
			return true
		}
		foundID, foundO, found = id, o, true
		return false
	})
	return foundID, foundO, found
}

// GetConvertRequest looks up a pending conversion by its (owner, request_id) key.
func (db *Database) GetConvertRequest(owner string, requestID uint32) (types.ConvertRequest, store.ObjectID, bool) {
	id, ok := db.convertRequestsByKey.Lookup(ownerRequestKey{Owner: owner, RequestID: requestID})
	if !ok {
		return types.ConvertRequest{}, 0, false
	}
	c, _ := db.ConvertRequests.Get(id)
	return c, id, true
}

// CreateConvertRequest inserts a new pending conversion, failing if the
// owner already has one open under the same request_id.
func (db *Database) CreateConvertRequest(c types.ConvertRequest) error {
	if _, _, ok := db.GetConvertRequest(c.Owner, c.RequestID); ok {
		return fmt.Errorf("state: convert request %s/%d already exists", c.Owner, c.RequestID)
	}
	db.ConvertRequests.Create(func(store.ObjectID) types.ConvertRequest { return c })
	return nil
}

// RemoveConvertRequest deletes the conversion at id once housekeeping has
// settled it.
func (db *Database) RemoveConvertRequest(id store.ObjectID) error {
	return db.ConvertRequests.Remove(id)
}

// ConvertRequestsDueBy returns, earliest-maturing first, every pending
// conversion whose ConversionDate is at or before cutoff.
func (db *Database) ConvertRequestsDueBy(cutoff uint32) []store.ObjectID {
	var out []store.ObjectID
	db.ConvertRequestsByDate.Ascend(func(id store.ObjectID, c types.ConvertRequest) bool {
		if c.ConversionDate > cutoff {
			return false
		}
		out = append(out, id)
		return true
	})
	return out
}

// --- Escrow accessors ---

// GetEscrow looks up an escrow by escrow_id alone, the table's unique key;
// the parties are not part of the lookup.
func (db *Database) GetEscrow(escrowID uint32) (types.Escrow, store.ObjectID, bool) {
	id, ok := db.escrowsByID.Lookup(escrowID)
	if !ok {
		return types.Escrow{}, 0, false
	}
	e, _ := db.Escrows.Get(id)
	return e, id, true
}

// CreateEscrow inserts a new escrow, failing if escrow_id is already in use.
func (db *Database) CreateEscrow(e types.Escrow) error {
	if _, _, ok := db.GetEscrow(e.EscrowID); ok {
		return fmt.Errorf("state: escrow %d already exists", e.EscrowID)
	}
	db.Escrows.Create(func(store.ObjectID) types.Escrow { return e })
	return nil
}

// ModifyEscrow applies mutate to the escrow at id.
func (db *Database) ModifyEscrow(id store.ObjectID, mutate func(types.Escrow) types.Escrow) (types.Escrow, error) {
	return db.Escrows.Modify(id, mutate)
}

// RemoveEscrow deletes the escrow at id, e.g. once released in full.
func (db *Database) RemoveEscrow(id store.ObjectID) error {
	return db.Escrows.Remove(id)
}

// EscrowsRatificationDueBy returns, earliest-deadline first, every escrow
// whose RatificationDeadline is at or before cutoff, ratified or not;
// callers skip the ratified ones.
func (db *Database) EscrowsRatificationDueBy(cutoff uint32) []store.ObjectID {
	var out []store.ObjectID
	db.EscrowsByRatificationDeadline.Ascend(func(id store.ObjectID, e types.Escrow) bool {
		if e.RatificationDeadline > cutoff {
			return false
		}
		out = append(out, id)
		return true
	})
	return out
}

// --- Savings accessors ---

// GetSavingsWithdraw looks up a pending savings withdrawal by its
// (from, request_id) key.
func (db *Database) GetSavingsWithdraw(from string, requestID uint32) (types.SavingsWithdraw, store.ObjectID, bool) {
	id, ok := db.savingsWithdrawsByKey.Lookup(fromRequestKey{From: from, RequestID: requestID})
	if !ok {
		return types.SavingsWithdraw{}, 0, false
	}
	s, _ := db.SavingsWithdraws.Get(id)
	return s, id, true
}

// CreateSavingsWithdraw inserts a new pending withdrawal, failing if the
// sender already has one open under the same request_id.
func (db *Database) CreateSavingsWithdraw(s types.SavingsWithdraw) error {
	if _, _, ok := db.GetSavingsWithdraw(s.From, s.RequestID); ok {
		return fmt.Errorf("state: savings withdraw %s/%d already exists", s.From, s.RequestID)
	}
	db.SavingsWithdraws.Create(func(store.ObjectID) types.SavingsWithdraw { return s })
	return nil
}

// RemoveSavingsWithdraw deletes the withdrawal at id, e.g. on cancel or
// completion.
func (db *Database) RemoveSavingsWithdraw(id store.ObjectID) error {
	return db.SavingsWithdraws.Remove(id)
}

// SavingsWithdrawsCompleteBy returns, earliest-maturing first, every
// pending withdrawal whose Complete time is at or before cutoff.
func (db *Database) SavingsWithdrawsCompleteBy(cutoff uint32) []store.ObjectID {
	var out []store.ObjectID
	db.SavingsWithdrawsByCompletion.Ascend(func(id store.ObjectID, s types.SavingsWithdraw) bool {
		if s.Complete > cutoff {
			return false
		}
		out = append(out, id)
		return true
	})
	return out
}

// GetRewardFund looks up one of the named payout pools ("post" or
// "comment").
func (db *Database) GetRewardFund(name string) (types.RewardFund, bool) {
	id, ok := db.rewardFundsByName.Lookup(name)
	if !ok {
		return types.RewardFund{}, false
	}
	f, ok := db.RewardFunds.Get(id)
	return f, ok
}

// CreateRewardFund inserts a new named payout pool, used only at genesis.
func (db *Database) CreateRewardFund(f types.RewardFund) error {
	if _, ok := db.GetRewardFund(f.Name); ok {
		return fmt.Errorf("state: reward fund %q already exists", f.Name)
	}
	db.RewardFunds.Create(func(store.ObjectID) types.RewardFund { return f })
	return nil
}

// ModifyRewardFund applies mutate to the named payout pool and installs the
// already-computed result.
func (db *Database) ModifyRewardFund(name string, mutate func(types.RewardFund) types.RewardFund) (types.RewardFund, error) {
	id, ok := db.rewardFundsByName.Lookup(name)
	if !ok {
		return types.RewardFund{}, fmt.Errorf("reward fund %q not found", name)
	}
	return db.RewardFunds.Modify(id, mutate)
}

// CommentsDueForCashoutBy returns every comment whose CashoutTime has
// reached cutoff, in cashout-time order, skipping the MaximumTime
// sentinel that marks already-paid comments.
func (db *Database) CommentsDueForCashoutBy(cutoff uint32) []store.ObjectID {
	var out []store.ObjectID
	db.CommentsByCashout.Ascend(func(id store.ObjectID, c types.Comment) bool {
		if c.CashoutTime > cutoff {
			return false
		}
		out = append(out, id)
		return true
	})
	return out
}

// AccountRecoveryRequestsDueBy returns every pending recovery request whose
// Expiration has reached cutoff.
func (db *Database) AccountRecoveryRequestsDueBy(cutoff uint32) []string {
	var out []string
	db.AccountRecoveryRequestsByExpiration.Ascend(func(_ store.ObjectID, r types.AccountRecoveryRequest) bool {
		if r.Expiration > cutoff {
			return false
		}
		out = append(out, r.AccountToRecover)
		return true
	})
	return out
}

// ChangeRecoveryAccountRequestsDueBy returns every pending recovery-account
// change whose Effective time has reached cutoff.
func (db *Database) ChangeRecoveryAccountRequestsDueBy(cutoff uint32) []string {
	var out []string
	db.ChangeRecoveryAccountRequestsByEffective.Ascend(func(_ store.ObjectID, r types.ChangeRecoveryAccountRequest) bool {
		if r.Effective > cutoff {
			return false
		}
		out = append(out, r.AccountToRecover)
		return true
	})
	return out
}

// DeclineVotingRightsRequestsDueBy returns every pending decline-voting
// request whose Effective time has reached cutoff.
func (db *Database) DeclineVotingRightsRequestsDueBy(cutoff uint32) []string {
	var out []string
	db.DeclineVotingRightsRequestsByEffective.Ascend(func(_ store.ObjectID, r types.DeclineVotingRightsRequest) bool {
		if r.Effective > cutoff {
			return false
		}
		out = append(out, r.Account)
		return true
	})
	return out
}

// AccountsWithVestingWithdrawalDueBy scans every account for a standing
// withdraw plan whose NextVestingWithdrawal has reached cutoff. Unlike the
// timer tables, accounts have no dedicated by-time index: a withdraw plan
// is one field among many on a row that changes for many other reasons, so
// a full scan here avoids paying index-maintenance cost on every unrelated
// account mutation.
func (db *Database) AccountsWithVestingWithdrawalDueBy(cutoff uint32) []string {
	var out []string
	db.accounts.Each(func(_ store.ObjectID, a types.Account) bool {
		if a.NextVestingWithdrawal <= cutoff && a.NextVestingWithdrawal != 0xFFFFFFFF {
			out = append(out, a.Name)
		}
		return true
	})
	return out
}

// AllAccountNames returns every account in the table, in no particular
// order. Housekeeping's interest and feed steps sweep the full set since
// DOLLAR balances and witness status aren't indexed by anything
// time-related.
func (db *Database) AllAccountNames() []string {
	var out []string
	db.accounts.Each(func(_ store.ObjectID, a types.Account) bool {
		out = append(out, a.Name)
		return true
	})
	return out
}

// VestingDelegationExpirationsDueBy returns, earliest-maturing first, every
// pending delegation-return whose Expiration has reached cutoff — the set
// housekeeping's settle-delegations-return step pays back to the delegator.
func (db *Database) VestingDelegationExpirationsDueBy(cutoff uint32) []store.ObjectID {
	var out []store.ObjectID
	db.VestingDelegationExpirationsByTime.Ascend(func(id store.ObjectID, e types.VestingDelegationExpiration) bool {
		if e.Expiration > cutoff {
			return false
		}
		out = append(out, id)
		return true
	})
	return out
}

var _ authority.Lookup = (*Database)(nil)
