package core

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vitaehub/vitaehub/app/store/sqlstore"
	"github.com/vitaehub/vitaehub/pkg/agent"
	"github.com/vitaehub/vitaehub/pkg/cache"
	"github.com/vitaehub/vitaehub/pkg/docstore"
	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/widget"
)

type Core struct {
	cfg CoreConfig

	stores  func() *sqlstore.Provider
	cache   *cache.RedisCache
	agent   *agent.Client
	cv      *docstore.Store
	widgets *widget.Manager
	metrics *Metrics
	limiter *Limiter

	httpEngine *gin.Engine
}

func MustSetupCore(cfg CoreConfig) *Core {
	if cfg.Security.EncryptKey == "" {
		panic("security.encrypt_key is required to sign access tokens")
	}

	core := &Core{
		cfg: cfg,
	}

	setupLog(cfg)

	core.metrics = setupMetrics()
	core.stores = sqlstore.MustSetup(cfg.Postgres)
	core.cache = cache.MustSetup(cfg.Redis)
	core.agent = agent.New(cfg.Agent)
	core.widgets = widget.NewManager()
	core.limiter = NewLimiter()

	core.cv = docstore.New(
		core.stores().CVDocumentStore(),
		core.cache,
		docstore.WithRemoteResultObserver(core.metrics.ObserveRemoteWrite),
	)

	return core
}

func setupLog(cfg CoreConfig) {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     cfg.Log.SlogLevel(),
	}

	if cfg.Log.Path != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}, opts)))
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Cache() *cache.RedisCache {
	return s.cache
}

func (s *Core) Agent() *agent.Client {
	return s.agent
}

func (s *Core) CVStore() *docstore.Store {
	return s.cv
}

func (s *Core) Widgets() *widget.Manager {
	return s.widgets
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) UseLimiter(key string, opts ...LimitOption) *SingleLimiter {
	return s.limiter.Use(key, opts...)
}

func (s *Core) HttpEngine() *gin.Engine {
	if s.httpEngine == nil {
		s.httpEngine = gin.New()
	}
	return s.httpEngine
}

// DefaultAppid scopes user and token rows. A single deployment serves one app.
func (s *Core) DefaultAppid() string {
	return types.DEFAULT_APPID
}

// Install creates schema and seed data on first boot.
func (s *Core) Install() error {
	return s.stores().Install()
}

// WidgetIdleTTL is how long an untouched chat widget keeps its in-memory state.
const WidgetIdleTTL = 2 * time.Hour
