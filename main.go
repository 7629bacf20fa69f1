package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"giftsleuth/auth"
	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/middleware"
	"giftsleuth/models"
	"giftsleuth/router"
	"giftsleuth/store"
	"giftsleuth/upsert"
)

const releaseVersion = "0.1.0"

func main() {
	// Local development keeps secrets in .env; missing file is fine.
	_ = godotenv.Load()

	cfg := &config.Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func newCmd(cfg *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SLEUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "giftsleuth",
		Short:         "A secret-santa guessing game for one room of people, served as a small JSON API.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := config.LoadGame(cfg.GameFile)
			if err != nil {
				return err
			}
			cfg.Game = game

			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(*cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: SLEUTH_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 3319, "port to listen on (env: SLEUTH_PORT)")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "giftsleuth.db", "database file or connection string (env: SLEUTH_DATABASE_URL)")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "sqlite", "database backend: sqlite, postgres, or memory (env: SLEUTH_DATABASE_TYPE)")
	fs.StringVar(&cfg.AdminCode, "admin-code", "", "code that unlocks the admin tools (env: SLEUTH_ADMIN_CODE)")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "externally reachable URL, used for the join QR code (env: SLEUTH_PUBLIC_URL)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", 20*time.Second, "how long whole-tab reads are cached (env: SLEUTH_CACHE_TTL)")
	fs.StringVar(&cfg.GameFile, "game", "", "path to a YAML game definition: roster and bingo squares (env: SLEUTH_GAME)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "display debug-level logs (env: SLEUTH_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("giftsleuth v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func serve(cfg config.Config) error {
	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	slog.Info("Store ready", "type", cfg.DatabaseType)

	// Built once here and injected everywhere; no package-level state.
	c := cache.New(st, cfg.CacheTTL)
	engine := upsert.New(st, c)
	sessions := auth.NewSessions()

	mux := router.New(engine, c, cfg, sessions)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "addr", server.Addr, "players", len(cfg.Game.Roster))
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	slog.Info("Server closed")
	return nil
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case "memory":
		return store.NewMemory(models.Tabs()), nil
	case "sqlite":
		return store.OpenSQL(store.DriverSQLite, cfg.DatabaseURL, models.Tabs())
	case "postgres":
		return store.OpenSQL(store.DriverPostgres, cfg.DatabaseURL, models.Tabs())
	}
	return nil, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
}
