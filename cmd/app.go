// Package cmd implements the CLI application that keeps the spreadsheet in
// sync with the budget.
package cmd

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"
	"github.com/hgabor/finsheet"
	"github.com/hgabor/finsheet/dropbox"
	"github.com/hgabor/finsheet/gsheets"
	"github.com/joho/godotenv"
)

// Commands are the subcommands of the fsh tool.
var Commands = []subcommands.Command{
	&syncCmd{},
	&pricesCmd{},
	&ratesCmd{},
	&inflationCmd{},
	&ratiosCmd{},
	&topicCmd{},
}

const defaultTokenFile = "/run/secrets/token.json"

// extraTxnPrefix marks env variables routing accounts to a per-currency
// transactions tab: BUDGET_EXTRA_TXN__EUR=<id>,<id>.
const extraTxnPrefix = "BUDGET_EXTRA_TXN__"

// Config is the environment-driven application configuration.
type Config struct {
	Budget        string
	DropboxToken  string
	SpreadsheetID string
	TokenFile     string
	// ExtraAccounts maps a currency to the account ids split out to its own
	// transactions tab.
	ExtraAccounts map[string][]string
}

// LoadConfig reads the configuration from the environment, loading a .env
// file first when one exists. Validation happens lazily, each command only
// requires what it uses.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := &Config{
		Budget:        os.Getenv("BUDGET"),
		DropboxToken:  os.Getenv("DROPBOX_ACCESS_TOKEN"),
		SpreadsheetID: os.Getenv("GSHEETS_SPREADSHEET_ID"),
		TokenFile:     os.Getenv("GSHEETS_TOKEN_FILE"),
		ExtraAccounts: make(map[string][]string),
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile
	}
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		cur, ok := strings.CutPrefix(name, extraTxnPrefix)
		if !ok || cur == "" || value == "" {
			continue
		}
		cfg.ExtraAccounts[cur] = strings.Split(value, ",")
	}
	return cfg
}

// ExtraCurrencies returns the configured extra-tab currencies, sorted.
func (c *Config) ExtraCurrencies() []string {
	currencies := make([]string, 0, len(c.ExtraAccounts))
	for cur := range c.ExtraAccounts {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)
	return currencies
}

// openWorkbook opens the configured spreadsheet.
func openWorkbook(cfg *Config) (finsheet.Workbook, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("GSHEETS_SPREADSHEET_ID is not set")
	}
	return gsheets.Open(cfg.SpreadsheetID, cfg.TokenFile)
}

// fetchBudget downloads the freshest budget snapshot from Dropbox.
func fetchBudget(cfg *Config) (*finsheet.Budget, error) {
	if cfg.Budget == "" {
		return nil, fmt.Errorf("BUDGET is not set")
	}
	if cfg.DropboxToken == "" {
		return nil, fmt.Errorf("DROPBOX_ACCESS_TOKEN is not set")
	}
	return dropbox.NewClient(cfg.DropboxToken).LatestBudget(cfg.Budget)
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
