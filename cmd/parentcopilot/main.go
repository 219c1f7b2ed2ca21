package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/internal/version"
	"github.com/hrygo/parentcopilot/server"
	"github.com/hrygo/parentcopilot/store"
	"github.com/hrygo/parentcopilot/store/db"
)

var (
	rootCmd = &cobra.Command{
		Use:   "parentcopilot",
		Short: `A parenting copilot: describe a difficult moment with your child and get immediate, practical advice.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := serve(cmd.Context()); err != nil {
				slog.Error("failed to run server", "error", err)
				os.Exit(1)
			}
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetCurrentVersion(viper.GetString("mode")))
		},
	}
)

func newProfile() *profile.Profile {
	instanceProfile := &profile.Profile{
		Mode:     viper.GetString("mode"),
		Addr:     viper.GetString("addr"),
		Port:     viper.GetInt("port"),
		Data:     viper.GetString("data"),
		Driver:   viper.GetString("driver"),
		DSN:      viper.GetString("dsn"),
		Language: viper.GetString("language"),
		Timezone: viper.GetString("timezone"),
		Version:  version.GetCurrentVersion(viper.GetString("mode")),
	}
	instanceProfile.FromEnv()
	return instanceProfile
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	if _, err := profile.LoadDotEnv(); err != nil {
		return err
	}
	instanceProfile := newProfile()
	if err := instanceProfile.Validate(); err != nil {
		return err
	}
	setupLogger(instanceProfile)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return err
	}
	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.CheckDataVersion(ctx); err != nil {
		_ = storeInstance.Close()
		return err
	}

	s, err := server.NewServer(ctx, instanceProfile, storeInstance)
	if err != nil {
		_ = storeInstance.Close()
		return err
	}

	c := make(chan os.Signal, 1)
	// Trigger graceful shutdown on SIGINT or SIGTERM.
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	if err := s.Start(ctx); err != nil {
		_ = storeInstance.Close()
		return err
	}
	printGreetings(instanceProfile)

	if sig := waitForShutdown(ctx, c); sig != nil {
		slog.Info("received signal", "signal", sig.String())
	}
	s.Shutdown(context.WithoutCancel(ctx))
	return nil
}

// waitForShutdown blocks until a signal arrives or ctx is done. It returns
// nil in the latter case.
func waitForShutdown(ctx context.Context, signals <-chan os.Signal) os.Signal {
	select {
	case sig := <-signals:
		return sig
	case <-ctx.Done():
		return nil
	}
}

// setupLogger installs the default slog handler: text at DEBUG in dev, JSON at INFO otherwise.
func setupLogger(p *profile.Profile) {
	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", profile.DriverSQLite)
	viper.SetDefault("port", 8081)
	viper.SetDefault("language", profile.LanguageHebrew)

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", profile.DriverSQLite, `storage driver, can be "sqlite" or "memory"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (sqlite file path)")
	rootCmd.PersistentFlags().String("language", profile.LanguageHebrew, `default language, can be "he" or "en"`)
	rootCmd.PersistentFlags().String("timezone", "", `IANA timezone that defines a day in the interaction log, defaults to the host zone`)

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "language", "timezone"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("parentcopilot")
	viper.AutomaticEnv()

	rootCmd.AddCommand(versionCmd)
}

func printGreetings(p *profile.Profile) {
	slog.Info("parentcopilot started",
		"version", p.Version,
		"mode", p.Mode,
		"driver", p.Driver,
		"data", p.Data,
		"dsn", p.DSN,
		"language", p.Language,
		"address", fmt.Sprintf("%s:%d", p.Addr, p.Port),
		"started_at", time.Now().Format(time.RFC3339))
	if len(p.Addr) == 0 {
		fmt.Printf("Parent Copilot is running at http://localhost:%d\n", p.Port)
	} else {
		fmt.Printf("Parent Copilot is running at http://%s:%d\n", p.Addr, p.Port)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
