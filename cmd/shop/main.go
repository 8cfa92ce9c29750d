package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/cli"
	"github.com/Makepad-fr/shopfront/internal/config"
	"github.com/Makepad-fr/shopfront/internal/logging"
	"github.com/Makepad-fr/shopfront/internal/money"
	"github.com/Makepad-fr/shopfront/internal/session"
	"github.com/Makepad-fr/shopfront/internal/store"
	"github.com/Makepad-fr/shopfront/internal/store/jsonstore"
	"github.com/Makepad-fr/shopfront/internal/store/memstore"
	"github.com/Makepad-fr/shopfront/internal/store/redisstore"
	"github.com/Makepad-fr/shopfront/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "", "output theme: classic, neon or mono")
	noColor := flag.Bool("no-color", false, "disable colored output")
	envFile := flag.String("env", ".env", "dotenv file to load")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 1
	}
	if *theme == "" {
		*theme = cfg.Theme
	}
	ui.SetTheme(*theme)
	if *noColor || os.Getenv("NO_COLOR") != "" {
		ui.SetColorForcing(false, true)
	}

	log, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log = zap.NewNop()
		ui.Warn(os.Stderr, "logging disabled: "+err.Error())
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kv, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		ui.Fail(os.Stderr, "store: "+err.Error())
		return 1
	}
	defer closeStore()

	client := api.New(cfg.APIURL, cfg.APITimeout, log)
	app := &cli.App{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Carts:       cart.NewStore(kv, log),
		Session:     session.New(kv, client, log),
		API:         client,
		Locale:      money.ParseLocale(cfg.Locale),
		Log:         log,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
	}

	code := app.Run(ctx, flag.Args())
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

// openStore picks the key-value backend named by SHOP_STORE.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Store, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, cfg.RedisURL, cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis store", zap.String("prefix", cfg.RedisPrefix))
		return redisstore.New(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	case config.StoreMemory:
		return memstore.New(), func() {}, nil
	default:
		s := jsonstore.New(cfg.DataDir, jsonstore.WithLogger(log))
		log.Debug("using file store", zap.String("path", s.Path()))
		return s, func() {}, nil
	}
}
