package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kasuganosora/coffeemon-seed/account"
	"github.com/kasuganosora/coffeemon-seed/cache"
	"github.com/kasuganosora/coffeemon-seed/config"
	dbadapter "github.com/kasuganosora/coffeemon-seed/db"
	"github.com/kasuganosora/coffeemon-seed/seed"
	"github.com/kasuganosora/coffeemon-seed/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yaml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coffeemon-seed",
		Short:         "Seed the Coffeemon database with demo data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newResetCmd(), newSyncCmd(), newLastCmd())
	return withErrorReport(root)
}

// withErrorReport wraps every subcommand so a failure prints its cause on
// stderr before main exits with status 1.
func withErrorReport(root *cobra.Command) *cobra.Command {
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nERROR: %v\n", err)
			}
			return err
		}
	}
	return root
}

func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfigPath
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset [config]",
		Short: "Wipe the application tables and seed everything, sample orders included",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printHeader(out, "Coffeemon Database Seed")
			fmt.Fprintln(out, "WARNING: This will DELETE all existing data!")
			if !yes && !seed.Confirm(cmd.InOrStdin(), out, "\nContinue?") {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}
			return run(cmd, configPath(args), func(cfg *config.Config) seed.Options {
				return seed.Options{Clear: true, SampleOrders: true}
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [config]",
		Short: "Create whatever demo data is missing without deleting anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printHeader(cmd.OutOrStdout(), "Coffeemon Database Sync")
			return run(cmd, configPath(args), func(cfg *config.Config) seed.Options {
				return seed.Options{SampleOrders: cfg.Seed.SampleOrders}
			})
		},
	}
}

func newLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last [config]",
		Short: "Show the summary of the last recorded seed run (requires cache.redis_addr)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(args))
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			c, err := newCache(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			raw, err := c.Get(cmd.Context(), seed.LastRunKey)
			if cache.IsNotFound(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No seed run recorded.")
				if cfg.Cache.RedisAddr == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Without cache.redis_addr the record only lives as long as the seeding process.")
				}
				return nil
			}
			if err != nil {
				return fmt.Errorf("cache: %w", err)
			}
			var sum seed.Summary
			if err := json.Unmarshal([]byte(raw), &sum); err != nil {
				return fmt.Errorf("decode last run: %w", err)
			}
			sum.Print(cmd.OutOrStdout())
			return nil
		},
	}
}

// run wires the collaborators from cfg and executes one seed run.
func run(cmd *cobra.Command, cfgPath string, options func(*config.Config) seed.Options) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	db, err := dbadapter.Open(cfg.Database)
	if errors.Is(err, dbadapter.ErrDatabaseMissing) {
		return fmt.Errorf("%w; start the application once so it creates its schema", err)
	}
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	st := store.New(db)
	defer st.Close()

	c, err := newCache(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	data := seed.DefaultDataset()
	data.ApplyConfig(cfg.Seed)

	opts := options(cfg)
	opts.Locker = c
	opts.LockTTL = cfg.Cache.LockTTL
	opts.Out = cmd.OutOrStdout()

	s, err := seed.New(st, account.NewClient(cfg.AccountService, logger), data, opts, logger)
	if err != nil {
		return err
	}

	sum, err := s.Run(cmd.Context())
	if errors.Is(err, seed.ErrAccountServiceUnreachable) {
		return fmt.Errorf("%w; is the server running at %s?", err, cfg.AccountService.BaseURL)
	}
	if sum != nil {
		sum.Print(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nReady for E-commerce and Battle!")
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newCache(cfg *config.Config) (cache.Cache, error) {
	c, err := cache.NewCache(cache.CacheConfig{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return c, nil
}

func printHeader(w io.Writer, text string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", rule, text, rule)
}
