package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/teller/internal/atm"
	"github.com/cleared-dev/teller/internal/bank"
	"github.com/cleared-dev/teller/internal/config"
	"github.com/cleared-dev/teller/internal/txlog"
)

var errCardRejected = errors.New("card rejected: wrong PIN or blocked card")

// session wires a Terminal to the cards, accounts, and log of one config file.
type session struct {
	dir      string
	cfg      *config.Config
	registry *bank.Registry
	recorder *txlog.Recorder
	terminal *atm.Terminal
}

func openSession(configPath string, logOut io.Writer) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	reg, err := bank.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}

	// The reserve is the configured cash less everything dispensed so far.
	dir := filepath.Dir(configPath)
	history, err := txlog.Read(dir)
	if err != nil {
		return nil, fmt.Errorf("reading terminal log: %w", err)
	}
	cash := cfg.Terminal.Cash.Sub(txlog.Dispensed(history, cfg.Terminal.ID))

	rec := txlog.NewRecorder(cfg.Terminal.ID)
	logger := cfg.Logger.NewLogger(logOut).With("terminal", cfg.Terminal.ID)
	term := atm.NewTerminal(cash, atm.WithLogger(logger), atm.WithObserver(rec))

	return &session{
		dir:      dir,
		cfg:      cfg,
		registry: reg,
		recorder: rec,
		terminal: term,
	}, nil
}

// insert validates the card with the given number. An unknown number is
// treated as no card at all.
func (s *session) insert(number string, pin int) error {
	card, _ := s.registry.Card(number)
	ok, err := s.terminal.ValidateCard(card, pin)
	if err != nil {
		return describe(err)
	}
	if !ok {
		return errCardRejected
	}
	return nil
}

// close appends the recorded events to the terminal log.
func (s *session) close() error {
	if err := txlog.Append(s.dir, s.recorder.Entries()); err != nil {
		return fmt.Errorf("writing terminal log: %w", err)
	}
	return nil
}

// describe adds a user-facing hint to a terminal error, keeping its kind.
func describe(err error) error {
	switch {
	case errors.Is(err, atm.ErrNoCardPresent):
		return fmt.Errorf("insert a known card and enter its PIN: %w", err)
	case errors.Is(err, atm.ErrInsufficientTerminalCash):
		return fmt.Errorf("machine is short of cash: %w", err)
	case errors.Is(err, atm.ErrInsufficientAccountFunds):
		return fmt.Errorf("try a smaller amount: %w", err)
	default:
		return err
	}
}

type cardFlags struct {
	configPath string
	number     string
	pin        int
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", configFile, "terminal config file")
	cmd.Flags().StringVar(&f.number, "card", "", "card number (required)")
	cmd.Flags().IntVar(&f.pin, "pin", 0, "card PIN (required)")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("pin")
}

func newCashCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Show the terminal's cash reserve",
		Long: `Show the terminal's cash reserve: the configured cash less every
withdrawal recorded in the terminal log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.terminal.Cash().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", configFile, "terminal config file")
	return cmd
}

func newBalanceCommand() *cobra.Command {
	var flags cardFlags

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Insert a card and show the account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runBalance(out, logOut io.Writer, flags cardFlags) (err error) {
	s, err := openSession(flags.configPath, logOut)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); err == nil {
			err = cerr
		}
	}()

	if err := s.insert(flags.number, flags.pin); err != nil {
		return err
	}

	balance, err := s.terminal.Balance()
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "balance: %s\n", balance.StringFixed(2))
	return nil
}

func newWithdrawCommand() *cobra.Command {
	var flags cardFlags
	var amount string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Insert a card and withdraw cash",
		Long: `Insert a card and withdraw cash.

The terminal's reserve carries over between runs through the terminal log.
Account balances do not: each run starts from the balances in teller.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amount, err)
			}
			if !amt.IsPositive() {
				return fmt.Errorf("--amount must be positive, got %s", amount)
			}
			return runWithdraw(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags, amt)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "amount to withdraw (required)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func runWithdraw(out, logOut io.Writer, flags cardFlags, amount decimal.Decimal) (err error) {
	s, err := openSession(flags.configPath, logOut)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); err == nil {
			err = cerr
		}
	}()

	if err := s.insert(flags.number, flags.pin); err != nil {
		return err
	}

	return dispense(out, s.terminal, amount)
}

// dispense withdraws amount and reports what actually left the terminal,
// which is what the account debited rather than what was asked for.
func dispense(out io.Writer, term *atm.Terminal, amount decimal.Decimal) error {
	before := term.Cash()
	remaining, err := term.Withdraw(amount)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "dispensed: %s\nbalance: %s\ncash: %s\n",
		before.Sub(term.Cash()).StringFixed(2), remaining.StringFixed(2), term.Cash().StringFixed(2))
	return nil
}
