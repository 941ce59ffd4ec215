package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level teller.yaml configuration.
type Config struct {
	Terminal TerminalConfig  `yaml:"terminal"`
	Logger   LoggerConfig    `yaml:"logger"`
	Accounts []AccountConfig `yaml:"accounts,omitempty"`
	Cards    []CardConfig    `yaml:"cards,omitempty"`
}

// TerminalConfig identifies the machine and its starting cash reserve.
type TerminalConfig struct {
	ID   string          `yaml:"id"`
	Cash decimal.Decimal `yaml:"cash"`
}

// AccountConfig seeds one account.
type AccountConfig struct {
	ID      uuid.UUID       `yaml:"id"`
	Holder  string          `yaml:"holder"`
	Balance decimal.Decimal `yaml:"balance"`
}

// CardConfig seeds one card linked to an account.
type CardConfig struct {
	Number    string    `yaml:"number"`
	PIN       int       `yaml:"pin"`
	Blocked   bool      `yaml:"blocked,omitempty"`
	AccountID uuid.UUID `yaml:"account_id"`
}

// Load reads a teller.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks cross-references and value ranges.
func (c *Config) Validate() error {
	if c.Terminal.ID == "" {
		return fmt.Errorf("terminal id cannot be empty")
	}
	if c.Terminal.Cash.IsNegative() {
		return fmt.Errorf("terminal cash cannot be negative, got %s", c.Terminal.Cash)
	}
	if _, ok := lookupLogLevel(c.Logger.Level); !ok {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	accounts := make(map[uuid.UUID]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if accounts[a.ID] {
			return fmt.Errorf("duplicate account %s", a.ID)
		}
		accounts[a.ID] = true
	}

	cards := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		if card.Number == "" {
			return fmt.Errorf("card number cannot be empty")
		}
		if cards[card.Number] {
			return fmt.Errorf("duplicate card %s", card.Number)
		}
		cards[card.Number] = true
		if !accounts[card.AccountID] {
			return fmt.Errorf("card %s references unknown account %s", card.Number, card.AccountID)
		}
	}
	return nil
}

// Default returns a Config for a new terminal with a small set of demo
// accounts and cards.
func Default(terminalID string, cash decimal.Decimal) *Config {
	checking := uuid.New()
	savings := uuid.New()
	return &Config{
		Terminal: TerminalConfig{
			ID:   terminalID,
			Cash: cash,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Accounts: []AccountConfig{
			{ID: checking, Holder: "Demo Checking", Balance: decimal.NewFromInt(555)},
			{ID: savings, Holder: "Demo Savings", Balance: decimal.NewFromInt(5555)},
		},
		Cards: []CardConfig{
			{Number: "4000000000000001", PIN: 1234, AccountID: checking},
			{Number: "4000000000000002", PIN: 4321, AccountID: savings},
			{Number: "4000000000000003", PIN: 1111, Blocked: true, AccountID: checking},
		},
	}
}
