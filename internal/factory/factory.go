package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jcallaghan/betpool/internal/config"
	"github.com/jcallaghan/betpool/internal/dependencies/clock"
	"github.com/jcallaghan/betpool/internal/dependencies/random"
	"github.com/jcallaghan/betpool/internal/metrics"
	"github.com/jcallaghan/betpool/internal/services/emoji"
	"github.com/jcallaghan/betpool/internal/services/ledger"
	"github.com/jcallaghan/betpool/internal/services/line"
	"github.com/jcallaghan/betpool/internal/services/operator"
	"github.com/jcallaghan/betpool/internal/services/payout"
	"github.com/jcallaghan/betpool/internal/services/render"
	"github.com/jcallaghan/betpool/internal/services/stake"
	"github.com/jcallaghan/betpool/internal/services/stats"
	"github.com/jcallaghan/betpool/internal/storage"
	"github.com/jcallaghan/betpool/internal/storage/memory"
	redisstorage "github.com/jcallaghan/betpool/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components. It is constructed once
// and passed around explicitly; there are no ambient singletons.
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Observability
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// Services
	Ledger          *ledger.Service
	Codec           *emoji.Codec
	PayoutEngine    *payout.Engine
	LineController  *line.Controller
	Reconciler      *stake.Reconciler
	StatsService    *stats.Service
	RenderService   *render.Service
	OperatorChecker operator.Checker
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Economy holds the betting pool constants (zero value gets defaults)
	Economy config.EconomyConfig
	// Operators is the set of member IDs allowed to run operator commands
	Operators []string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	ledgerCfg := ledger.DefaultConfig()
	if cfg.Economy.StartingBalance > 0 {
		ledgerCfg.StartingBalance = cfg.Economy.StartingBalance
	}
	if cfg.Economy.StakeUnit > 0 {
		ledgerCfg.StakeUnit = cfg.Economy.StakeUnit
	}

	return newWithDependencies(store, clock.New(), random.New(), ledgerCfg, cfg.Operators, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	ledgerCfg ledger.Config,
	operators []string,
	logger *slog.Logger,
) *App {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// Create services
	ledgerService := ledger.New(store, clk, ledgerCfg, logger)
	codec := emoji.New()
	payoutEngine := payout.New(ledgerService, m, logger)
	locker := line.NewLocker()
	lineController := line.NewController(store, codec, payoutEngine, locker, clk, rnd, m, logger)
	reconciler := stake.NewReconciler(store, ledgerService, codec, locker, clk, m, logger)
	statsService := stats.New(store)
	renderService := render.New()
	checker := operator.NewStaticChecker(operators)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Registry:        registry,
		Metrics:         m,
		Ledger:          ledgerService,
		Codec:           codec,
		PayoutEngine:    payoutEngine,
		LineController:  lineController,
		Reconciler:      reconciler,
		StatsService:    statsService,
		RenderService:   renderService,
		OperatorChecker: checker,
	}
}
