// Package genesis loads the one-shot bulk seed document (initial
// accounts, witnesses and reward funds) that boots a fresh Database,
// distinct in shape and cadence from the runtime chain.Config: genesis
// is read once at chain start, never rewritten, so it gets its own
// format (YAML) rather than reusing the TOML runtime config.
package genesis

// Document is the root of a genesis YAML file.
type Document struct {
	ChainID     string           `yaml:"chain_id"`
	InitialTime uint32           `yaml:"initial_time"`
	Accounts    []AccountEntry   `yaml:"accounts"`
	Witnesses   []WitnessEntry   `yaml:"witnesses"`
	RewardFunds []RewardFundEntry `yaml:"reward_funds"`
}

// KeyWeight is a single account-or-key member of an authority, keyed by
// hex-encoded compressed public key or by account name (exactly one of
// Key/Account is set).
type KeyWeight struct {
	Key     string `yaml:"key,omitempty"`
	Account string `yaml:"account,omitempty"`
	Weight  uint16 `yaml:"weight"`
}

// AuthorityEntry is the YAML shape of an authority.Authority.
type AuthorityEntry struct {
	Threshold uint32      `yaml:"threshold"`
	Members   []KeyWeight `yaml:"members"`
}

// AccountEntry seeds one Account, its AccountAuthority, and its starting
// balances.
type AccountEntry struct {
	Name    string `yaml:"name"`
	MemoKey string `yaml:"memo_key"`

	Owner   AuthorityEntry `yaml:"owner"`
	Active  AuthorityEntry `yaml:"active"`
	Posting AuthorityEntry `yaml:"posting"`

	LiquidAmount       int64 `yaml:"liquid_amount"`
	DollarAmount       int64 `yaml:"dollar_amount"`
	VestingSharesAmount int64 `yaml:"vesting_shares_amount"`

	CanVote bool `yaml:"can_vote"`
}

// WitnessEntry seeds one witness candidate.
type WitnessEntry struct {
	Owner      string `yaml:"owner"`
	URL        string `yaml:"url"`
	SigningKey string `yaml:"signing_key"`

	AccountCreationFeeAmount int64  `yaml:"account_creation_fee_amount"`
	MaximumBlockSize         uint32 `yaml:"maximum_block_size"`
	DollarInterestRate       uint16 `yaml:"dollar_interest_rate"`
	AccountSubsidyLimit      uint32 `yaml:"account_subsidy_limit"`
}

// RewardFundEntry overrides one of the two built-in reward funds
// ("post", "comment"); any fund named here replaces the corresponding
// default instead of adding a third fund.
type RewardFundEntry struct {
	Name                   string `yaml:"name"`
	ContentConstant        int64  `yaml:"content_constant"`
	PercentCurationRewards uint16 `yaml:"percent_curation_rewards"`
	PercentContentRewards  uint16 `yaml:"percent_content_rewards"`
	AuthorRewardCurve      string `yaml:"author_reward_curve"`
	CurationRewardCurve    string `yaml:"curation_reward_curve"`
}
