package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tgsheet/app"
	"tgsheet/config"
	"tgsheet/log"
	"tgsheet/telegram"
)

// cacheFileName is the dialog cache under the state directory.
const cacheFileName = "dialogs.db"

var (
	version          = "0.3.0"
	demoFlag         bool
	hideByScrollFlag bool
	verboseFlag      bool
	rootCmd          = &cobra.Command{
		Use:   "tgsheet",
		Short: "tgsheet - Your Telegram chats in a bottom sheet, in the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize(verboseFlag)
			defer log.Close()

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("tgsheet needs an interactive terminal")
			}

			cfg := config.LoadConfig()
			// Flag overrides config
			if hideByScrollFlag {
				cfg.Sheet.HideByScroll = true
			}

			if demoFlag {
				demo := telegram.NewDemoSource(time.Now().Unix(), 80)
				demo.Delay = 700 * time.Millisecond
				return app.Run(ctx, cfg, demo, "demo")
			}

			if !cfg.Telegram.Configured() {
				return errors.Wrap(telegram.ErrNotConfigured, "run `tgsheet login` first, or try --demo")
			}
			client, err := telegram.NewClient(cfg.Telegram, cfg.StateDirectory, log.Named("telegram"))
			if err != nil {
				return err
			}
			cache, err := openCache(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := cache.Close(); err != nil {
					log.ErrorLog.Printf("failed to close cache: %v", err)
				}
			}()

			source := &telegram.CachedSource{
				Upstream: client,
				Cache:    cache,
				Logger:   log.Named("cache"),
			}
			return app.Run(ctx, cfg, source, "telegram")
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in to Telegram and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(verboseFlag)
			defer log.Close()

			cfg := config.LoadConfig()
			if err := telegram.PromptCredentials(&cfg.Telegram); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return errors.Wrap(err, "save credentials")
			}

			client, err := telegram.NewClient(cfg.Telegram, cfg.StateDirectory, log.Named("telegram"))
			if err != nil {
				return err
			}
			self, err := client.Login(context.Background())
			if err != nil {
				return errors.Wrap(err, "login")
			}

			name := self.FirstName
			if self.Username != "" {
				name += " (@" + self.Username + ")"
			}
			pterm.Success.Printfln("Logged in as %s", name)
			pterm.Info.Printfln("Session stored in %s", client.SessionDir())
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Clear the cached chat list",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()
			cache, err := openCache(cfg)
			if err != nil {
				return err
			}
			defer cache.Close()

			if err := cache.Clear(); err != nil {
				return errors.Wrap(err, "clear cache")
			}
			pterm.Success.Println("Chat cache has been cleared")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return errors.Wrap(err, "get config directory")
			}
			// Credentials stay out of bug reports.
			shown := *cfg
			if shown.Telegram.AppHash != "" {
				shown.Telegram.AppHash = "<redacted>"
			}
			configToml, err := toml.Marshal(shown)
			if err != nil {
				return errors.Wrap(err, "encode config")
			}

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configToml)
			fmt.Printf("Cache: %s\n", filepath.Join(cfg.StateDirectory, cacheFileName))
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tgsheet",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tgsheet version %s\n", version)
		},
	}
)

func openCache(cfg *config.Config) (*telegram.Cache, error) {
	if err := os.MkdirAll(cfg.StateDirectory, 0o700); err != nil {
		return nil, errors.Wrap(err, "create state directory")
	}
	return telegram.OpenCache(filepath.Join(cfg.StateDirectory, cacheFileName))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Log at debug level (set TGSHEET_DEBUG=1 for sheet and scroll traces)")
	rootCmd.Flags().BoolVar(&demoFlag, "demo", false,
		"Show generated chats instead of connecting to Telegram")
	rootCmd.Flags().BoolVar(&hideByScrollFlag, "hide-by-scroll", false,
		"Let a scroll past the header dismiss the sheet (overrides config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
