// Command coreapply is a small standalone driver that boots a Database
// from a genesis document, runs one housekeeping pass against it, and
// reports what changed. It exists to exercise the core module end to
// end without a network or consensus layer attached, the same role the
// teacher's cmd/consensusd plays for the full chain, scaled down to
// this module's scope.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/genesis"
	"github.com/velanet/corechain/housekeeping"
	"github.com/velanet/corechain/observability/logging"
)

func main() {
	configFile := flag.String("config", "./config.toml", "path to the chain configuration file")
	genesisFile := flag.String("genesis", "./genesis.yaml", "path to the genesis document")
	headTimeFlag := flag.Int64("head-time", 0, "unix time to run housekeeping against (defaults to genesis initial_time)")
	flag.Parse()

	log := logging.Setup("coreapply", "dev")

	cfg, err := chain.Load(*configFile)
	if err != nil {
		log.Error("load chain config", "error", err)
		os.Exit(1)
	}
	log.Info("chain config loaded", "chain_id", cfg.ChainID, "hardfork_level", cfg.HardforkLevel)

	doc, err := genesis.Load(*genesisFile)
	if err != nil {
		log.Error("load genesis document", "error", err)
		os.Exit(1)
	}

	db := state.NewDatabase()
	if err := genesis.Apply(db, doc); err != nil {
		log.Error("apply genesis document", "error", err)
		os.Exit(1)
	}
	log.Info("genesis applied",
		"chain_id", doc.ChainID,
		"accounts", len(doc.Accounts),
		"witnesses", len(doc.Witnesses),
	)

	headTime := uint32(*headTimeFlag)
	if headTime == 0 {
		headTime = db.Globals.HeadBlockTime
	}

	if err := runHousekeepingPass(db, headTime); err != nil {
		log.Error("housekeeping pass", "error", err)
		os.Exit(1)
	}

	report := summarize(db)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Error("marshal report", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")
}

type summaryReport struct {
	HeadBlockTime          uint32 `json:"head_block_time"`
	CurrentSupplyLiquid    int64  `json:"current_supply_liquid"`
	CurrentSupplyDollar    int64  `json:"current_supply_dollar"`
	TotalVestingShares     int64  `json:"total_vesting_shares"`
	TotalVestingFundLiquid int64  `json:"total_vesting_fund_liquid"`
	DollarPrintRate        uint16 `json:"dollar_print_rate"`
}

func summarize(db *state.Database) summaryReport {
	return summaryReport{
		HeadBlockTime:          db.Globals.HeadBlockTime,
		CurrentSupplyLiquid:    db.Globals.CurrentSupply.Amount,
		CurrentSupplyDollar:    db.Globals.CurrentDollarSupply.Amount,
		TotalVestingShares:     db.Globals.TotalVestingShares.Amount,
		TotalVestingFundLiquid: db.Globals.TotalVestingFundLiquid.Amount,
		DollarPrintRate:        db.Globals.DollarPrintRate,
	}
}

func runHousekeepingPass(db *state.Database, headTime uint32) error {
	start := time.Now()
	err := housekeeping.Run(db, headTime)
	slog.Default().Info("housekeeping pass complete", "duration", time.Since(start).String())
	return err
}
