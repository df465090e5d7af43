package reward

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/store"
)

// fundFor names the RewardFund a comment draws its cashout from: top-level
// posts and replies are tracked against separate pools the same way the
// two named funds in RewardFund's doc comment describe.
func fundFor(c types.Comment) string {
	if c.IsRoot() {
		return "post"
	}
	return "comment"
}

// decayClaims applies fund.RecentClaims' linear decay since LastUpdate,
// the same window every claim added to it decays back out over.
func decayClaims(fund types.RewardFund, now uint32) uint256.Int {
	if now <= fund.LastUpdate {
		return fund.RecentClaims
	}
	elapsed := uint256.NewInt(uint64(now - fund.LastUpdate))
	decay := new(uint256.Int).Mul(&fund.RecentClaims, elapsed)
	decay.Div(decay, uint256.NewInt(uint64(chain.RecentClaimsDecaySeconds)))
	if decay.Gt(&fund.RecentClaims) {
		return *uint256.NewInt(0)
	}
	return *new(uint256.Int).Sub(&fund.RecentClaims, decay)
}

// shareOf computes pool*claim/claims, clamped to pool, as an int64 LIQUID
// amount — the fraction of a fund's balance one comment's claim earns
// against the fund's decayed recent-claims total.
func shareOf(pool int64, claim, claims *uint256.Int) int64 {
	if claims.IsZero() {
		return 0
	}
	num := new(uint256.Int).Mul(uint256.NewInt(uint64(pool)), claim)
	result := new(uint256.Int).Div(num, claims)
	if result.Gt(uint256.NewInt(uint64(pool))) {
		return pool
	}
	if !result.IsUint64() {
		return pool
	}
	return int64(result.Uint64())
}

// payee is one recipient of a comment's author-side payout: the author
// itself, or one locked-in beneficiary.
type payee struct {
	account string
	amount  int64 // LIQUID, pre percent_dollars split
}

// effectiveDollarPercent clamps a comment's author-chosen percent_dollars
// down to the witness-voted DollarPrintRate: the ramp housekeeping/feed.go computes
// between ZBDStartPercent and ZBDStopPercent throttles new DOLLAR
// issuance as the peg comes under strain, so a payout can never mint more
// DOLLAR than the current print rate allows regardless of what the
// author requested at post time.
func effectiveDollarPercent(commentPercent, printRate uint16) uint16 {
	if commentPercent < printRate {
		return commentPercent
	}
	return printRate
}

// CashoutComment settles one comment whose cashout_time has arrived,
// implementing the distribution order: skip zero-or-negative net_rshares
// without paying, otherwise compute the claim against the comment's fund,
// split reward_balance proportionally, pay curators in proportion to
// vote weight, then split the remainder between beneficiaries and the
// author. Every write is precomputed before any db.Modify call per the
// evaluator discipline the rest of the core follows.
func CashoutComment(db *state.Database, now uint32, id store.ObjectID) error {
	comment, ok := db.GetCommentByID(id)
	if !ok {
		return nil
	}
	if comment.CashedOut(chain.MaximumTime) {
		return nil
	}

	if comment.NetRshares <= 0 {
		session := db.Begin()
		if _, err := db.ModifyComment(id, func(c types.Comment) types.Comment {
			c.CashoutTime = chain.MaximumTime
			c.LastPayout = now
			c.NetRshares = 0
			c.AbsRshares = 0
			c.VoteRshares = 0
			return c
		}); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
		return nil
	}

	fundName := fundFor(comment)
	fund, ok := db.GetRewardFund(fundName)
	if !ok {
		return fmt.Errorf("reward: fund %q not found", fundName)
	}

	claim := Evaluate(comment.NetRshares, fund.AuthorRewardCurve, fund.ContentConstant)
	decayed := decayClaims(fund, now)
	newClaims := new(uint256.Int).Add(&decayed, claim)
	if newClaims.Gt(maxU128) {
		newClaims = new(uint256.Int).Set(maxU128)
	}

	rawPayout := shareOf(fund.RewardBalance.Amount, claim, newClaims)
	if !db.Feed.CurrentMedianHistory.IsNull() {
		maxLiquid, err := db.Feed.CurrentMedianHistory.Mul(comment.MaxAcceptedPayout)
		if err == nil && rawPayout > maxLiquid.Amount {
			rawPayout = maxLiquid.Amount
		}
	}

	contentPayout := rawPayout * int64(fund.PercentContentRewards) / chain.Percent100
	curationPool := contentPayout * int64(fund.PercentCurationRewards) / chain.Percent100
	authorPool := contentPayout - curationPool

	votes := db.VotesForComment(id)
	var distributedCuration int64
	type curationCredit struct {
		voter   string
		voteID  store.ObjectID
		amount  int64
		vesting asset.Asset
	}
	var curationCredits []curationCredit
	if comment.AllowCurationRewards && comment.TotalVoteWeight > 0 && curationPool > 0 {
		for _, v := range votes {
			if v.Weight == 0 {
				continue
			}
			share := new(uint256.Int).Mul(uint256.NewInt(uint64(curationPool)), uint256.NewInt(v.Weight))
			share.Div(share, uint256.NewInt(comment.TotalVoteWeight))
			if !share.IsUint64() {
				continue
			}
			amount := int64(share.Uint64())
			if amount <= 0 {
				continue
			}
			_, voteID, found := db.GetCommentVote(id, v.Voter)
			if !found {
				continue
			}
			vests, err := db.Globals.VestingSharePrice().Mul(asset.Asset{Amount: amount, Symbol: asset.LIQUID})
			if err != nil {
				continue
			}
			curationCredits = append(curationCredits, curationCredit{voter: v.Voter, voteID: voteID, amount: amount, vesting: vests})
			distributedCuration += amount
		}
	}
	authorPool += curationPool - distributedCuration

	var payees []payee
	var beneficiaryTotal int64
	for _, b := range comment.Beneficiaries {
		amt := authorPool * int64(b.Weight) / chain.Percent100
		payees = append(payees, payee{account: b.Account, amount: amt})
		beneficiaryTotal += amt
	}
	authorShare := authorPool - beneficiaryTotal
	payees = append(payees, payee{account: comment.Author, amount: authorShare})

	type payeeCredit struct {
		account string
		dollar  asset.Asset
		vests   asset.Asset
	}
	dollarPercent := effectiveDollarPercent(comment.PercentDollars, db.Globals.DollarPrintRate)

	var payeeCredits []payeeCredit
	var authorDollarCut asset.Asset
	var authorVestingLiquid int64
	for _, p := range payees {
		if p.amount <= 0 {
			continue
		}
		dollarLiquid := p.amount * int64(dollarPercent) / chain.Percent100
		vestingLiquid := p.amount - dollarLiquid
		var dollarAmt asset.Asset
		if dollarLiquid > 0 {
			var err error
			dollarAmt, err = db.Feed.CurrentMedianHistory.Reciprocal(asset.Asset{Amount: dollarLiquid, Symbol: asset.LIQUID})
			if err != nil {
				dollarAmt = asset.Zero(asset.DOLLAR)
			}
		} else {
			dollarAmt = asset.Zero(asset.DOLLAR)
		}
		var vestsAmt asset.Asset
		if vestingLiquid > 0 {
			var err error
			vestsAmt, err = db.Globals.VestingSharePrice().Mul(asset.Asset{Amount: vestingLiquid, Symbol: asset.LIQUID})
			if err != nil {
				vestsAmt = asset.Zero(asset.VESTS)
			}
		} else {
			vestsAmt = asset.Zero(asset.VESTS)
		}
		payeeCredits = append(payeeCredits, payeeCredit{account: p.account, dollar: dollarAmt, vests: vestsAmt})
		if p.account == comment.Author {
			authorDollarCut = dollarAmt
			authorVestingLiquid = vestingLiquid
		}
	}

	var mintedVests, mintedLiquid int64
	for _, c := range curationCredits {
		mintedVests += c.vesting.Amount
	}
	for _, p := range payeeCredits {
		mintedVests += p.vests.Amount
	}
	for _, p := range payees {
		if p.amount > 0 {
			dollarLiquid := p.amount * int64(dollarPercent) / chain.Percent100
			mintedLiquid += p.amount - dollarLiquid
		}
	}

	session := db.Begin()
	if _, err := db.ModifyComment(id, func(c types.Comment) types.Comment {
		c.CashoutTime = chain.MaximumTime
		c.LastPayout = now
		c.NetRshares = 0
		c.AbsRshares = 0
		c.VoteRshares = 0
		return c
	}); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyRewardFund(fundName, func(f types.RewardFund) types.RewardFund {
		f.RewardBalance, _ = f.RewardBalance.Sub(asset.Asset{Amount: rawPayout, Symbol: asset.LIQUID})
		f.RecentClaims = *newClaims
		f.LastUpdate = now
		return f
	}); err != nil {
		session.Rollback()
		return err
	}
	for _, c := range curationCredits {
		if _, err := db.ModifyCommentVote(c.voteID, func(v types.CommentVote) types.CommentVote {
			v.NumChanges = types.CashedOutSentinel
			return v
		}); err != nil {
			session.Rollback()
			return err
		}
		account, err := db.MustGetAccount(c.voter)
		if err != nil {
			session.Rollback()
			return err
		}
		sum, err := account.RewardVestingBalance.Add(c.vesting)
		if err != nil {
			session.Rollback()
			return err
		}
		account.RewardVestingBalance = sum
		if _, err := db.ModifyAccount(c.voter, func(types.Account) types.Account { return account }); err != nil {
			session.Rollback()
			return err
		}
		db.Events.Emit(types.CurationRewardEvent{
			Curator:  c.voter,
			Reward:   c.vesting,
			Author:   comment.Author,
			Permlink: comment.Permlink,
		})
	}
	for _, p := range payeeCredits {
		account, err := db.MustGetAccount(p.account)
		if err != nil {
			session.Rollback()
			return err
		}
		dollarSum, err := account.RewardDollar.Add(p.dollar)
		if err != nil {
			session.Rollback()
			return err
		}
		vestsSum, err := account.RewardVestingBalance.Add(p.vests)
		if err != nil {
			session.Rollback()
			return err
		}
		account.RewardDollar = dollarSum
		account.RewardVestingBalance = vestsSum
		if _, err := db.ModifyAccount(p.account, func(types.Account) types.Account { return account }); err != nil {
			session.Rollback()
			return err
		}
	}
	db.Globals.TotalVestingShares, _ = db.Globals.TotalVestingShares.Add(asset.Asset{Amount: mintedVests, Symbol: asset.VESTS})
	db.Globals.TotalVestingFundLiquid, _ = db.Globals.TotalVestingFundLiquid.Add(asset.Asset{Amount: mintedLiquid, Symbol: asset.LIQUID})
	db.Events.Emit(types.CommentPayoutEvent{
		Author:         comment.Author,
		Permlink:       comment.Permlink,
		LiquidPayout:   asset.Zero(asset.LIQUID),
		DollarPayout:   authorDollarCut,
		VestingPayout:  asset.Asset{Amount: authorVestingLiquid, Symbol: asset.LIQUID},
		CurationPayout: asset.Asset{Amount: distributedCuration, Symbol: asset.LIQUID},
	})
	session.Commit()
	return nil
}
