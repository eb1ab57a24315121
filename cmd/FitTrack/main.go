package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BTreeMap/FitTrack/internal/bot"
	"github.com/BTreeMap/FitTrack/internal/food"
	"github.com/BTreeMap/FitTrack/internal/metrics"
	"github.com/BTreeMap/FitTrack/internal/store"
	"github.com/BTreeMap/FitTrack/internal/telegram"
	"github.com/BTreeMap/FitTrack/internal/util"
	"github.com/BTreeMap/FitTrack/internal/weather"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultPollTimeout is the long-polling timeout for Telegram updates, in seconds
	DefaultPollTimeout = 30
)

func main() {
	// Load environment configuration
	config := loadEnvironmentConfig()

	// Initialize structured logger
	initializeLogger(config.Debug)

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	if *flags.telegramToken == "" {
		slog.Error("No Telegram token provided, set TELEGRAM_TOKEN or --telegram-token")
		os.Exit(1)
	}

	// Food reference dataset: in-memory, SQLite, or Postgres depending on DSN
	dataset, err := store.New(buildStoreOptions(flags)...)
	if err != nil {
		slog.Error("Failed to open food dataset", "error", err)
		os.Exit(1)
	}
	defer dataset.Close()

	resolver := food.NewResolver(dataset, buildExternalLookups(flags)...)
	weatherProvider := buildWeatherProvider(flags)

	svc, err := telegram.New(buildTelegramOptions(flags)...)
	if err != nil {
		slog.Error("Failed to initialize Telegram service", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping FitTrack with configured modules")
	slog.Debug("Final configuration",
		"dsn_set", *flags.dbDSN != "",
		"usda_key_set", *flags.usdaKey != "",
		"weather_key_set", *flags.weatherKey != "",
		"poll_timeout", *flags.pollTimeout)
	b := bot.New(svc, metrics.NewRegistry(), resolver, weatherProvider)
	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("FitTrack failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("FitTrack exited successfully")
}

// Config holds environment configuration
type Config struct {
	TelegramToken string
	WeatherKey    string
	USDAKey       string
	FoodDSN       string
	PollTimeout   int
	Debug         bool
}

// Flags holds command line flag values
type Flags struct {
	telegramToken *string
	weatherKey    *string
	usdaKey       *string
	dbDSN         *string
	pollTimeout   *int
	debug         *bool
}

// initializeLogger sets up structured logging
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		WeatherKey:    os.Getenv("OPENWEATHER_API_KEY"),
		USDAKey:       os.Getenv("USDA_API_KEY"),
		FoodDSN:       os.Getenv("FOOD_DB_DSN"),
		PollTimeout:   util.ParseIntEnv("TELEGRAM_POLL_TIMEOUT", DefaultPollTimeout),
		Debug:         util.ParseBoolEnv("FITTRACK_DEBUG", false),
	}

	slog.Debug("environment variables loaded",
		"TELEGRAM_TOKEN_SET", config.TelegramToken != "",
		"OPENWEATHER_API_KEY_SET", config.WeatherKey != "",
		"USDA_API_KEY_SET", config.USDAKey != "",
		"FOOD_DB_DSN_SET", config.FoodDSN != "",
		"TELEGRAM_POLL_TIMEOUT", config.PollTimeout,
		"FITTRACK_DEBUG", config.Debug)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		telegramToken: flag.String("telegram-token", config.TelegramToken, "Telegram bot token (overrides $TELEGRAM_TOKEN)"),
		weatherKey:    flag.String("openweather-api-key", config.WeatherKey, "OpenWeatherMap API key (overrides $OPENWEATHER_API_KEY)"),
		usdaKey:       flag.String("usda-api-key", config.USDAKey, "USDA FoodData Central API key (overrides $USDA_API_KEY)"),
		dbDSN:         flag.String("db-dsn", config.FoodDSN, "food dataset DSN: empty for in-memory, file path for SQLite, URL for Postgres (overrides $FOOD_DB_DSN)"),
		pollTimeout:   flag.Int("poll-timeout", config.PollTimeout, "Telegram long-polling timeout in seconds (overrides $TELEGRAM_POLL_TIMEOUT)"),
		debug:         flag.Bool("debug", config.Debug, "enable Telegram API debug logging (overrides $FITTRACK_DEBUG)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"telegramTokenSet", *flags.telegramToken != "",
		"weatherKeySet", *flags.weatherKey != "",
		"usdaKeySet", *flags.usdaKey != "",
		"dbDSN_set", *flags.dbDSN != "",
		"pollTimeout", *flags.pollTimeout,
		"debug", *flags.debug)

	return flags
}

// buildStoreOptions constructs food dataset configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.dbDSN != "" {
		storeOpts = append(storeOpts, store.WithDSN(*flags.dbDSN))
	} else {
		slog.Debug("No database DSN provided, will use in-memory food dataset")
	}
	return storeOpts
}

// buildExternalLookups constructs the external food lookup chain. USDA runs
// before Open Food Facts; either degrades to a skip when unconfigured or down.
func buildExternalLookups(flags Flags) []food.Lookup {
	translator := food.NewMyMemoryTranslator()
	return []food.Lookup{
		food.NewUSDAClient(*flags.usdaKey, translator),
		food.NewOpenFoodFactsClient(),
	}
}

// buildWeatherProvider constructs the temperature provider, or nil when no
// API key is configured.
func buildWeatherProvider(flags Flags) weather.Provider {
	if *flags.weatherKey == "" {
		slog.Debug("No OpenWeatherMap API key, temperature lookups disabled")
		return nil
	}
	return weather.NewOpenWeatherMap(weather.WithAPIKey(*flags.weatherKey))
}

// buildTelegramOptions constructs Telegram transport configuration options
func buildTelegramOptions(flags Flags) []telegram.Option {
	tgOpts := []telegram.Option{
		telegram.WithToken(*flags.telegramToken),
		telegram.WithPollTimeout(*flags.pollTimeout),
	}
	if *flags.debug {
		tgOpts = append(tgOpts, telegram.WithDebug())
	}
	return tgOpts
}
