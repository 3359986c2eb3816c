// Package courses implements the course lifecycle and moderation workflow for
// the Bait Al-Hikma tutoring marketplace: teachers author courses in a local
// catalog, and every visibility change flows through a moderated transition
// against the catalog backend.
package courses

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/mattn/go-sqlite3"

	command "github.com/goliatone/go-command"

	"github.com/baitalhikma/go-courses/catalog"
	internalcatalog "github.com/baitalhikma/go-courses/internal/catalog"
	"github.com/baitalhikma/go-courses/internal/commands"
	coursecmd "github.com/baitalhikma/go-courses/internal/commands/courses"
	internallifecycle "github.com/baitalhikma/go-courses/internal/lifecycle"
	"github.com/baitalhikma/go-courses/internal/logging"
	"github.com/baitalhikma/go-courses/internal/logging/gologger"
	"github.com/baitalhikma/go-courses/internal/moderation"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
)

var ErrModuleDisabled = errors.New("courses: module is disabled in configuration")
var ErrPostgresRequiresDB = errors.New("courses: postgres storage requires a database supplied via WithDB")

// ApprovalChecker gates publication requests on teacher account approval.
type ApprovalChecker = internallifecycle.ApprovalChecker

// Module wires the catalog, lifecycle and moderation services behind a single
// entry point.
type Module struct {
	cfg Config

	db         *bun.DB
	ownsDB     bool
	httpClient *http.Client
	provider   interfaces.LoggerProvider
	clock      func() time.Time
	approvals  ApprovalChecker
	fallback   lifecycle.FallbackPolicy

	cacheService  cache.CacheService
	keySerializer cache.KeySerializer

	logger     interfaces.Logger
	catalogSvc catalog.Service
	registry   catalog.Registry
	client     lifecycle.ModerationClient
	workflow   lifecycle.Service
	handlers   *CommandHandlers
}

// Option configures the module at construction time.
type Option func(*Module)

// WithDB supplies an externally managed database handle.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// WithHTTPClient replaces the HTTP client used for moderation calls.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Module) {
		m.httpClient = client
	}
}

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithModerationClient replaces the HTTP moderation client entirely.
func WithModerationClient(client lifecycle.ModerationClient) Option {
	return func(m *Module) {
		m.client = client
	}
}

// WithClock overrides the clock used across services (primarily for testing).
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		m.clock = clock
	}
}

// WithApprovalChecker wires the teacher approval gate. It only takes effect
// when Features.TeacherApprovalGate is enabled.
func WithApprovalChecker(checker ApprovalChecker) Option {
	return func(m *Module) {
		m.approvals = checker
	}
}

// WithFallbackPolicy overrides the reconciliation fallback policy.
func WithFallbackPolicy(policy lifecycle.FallbackPolicy) Option {
	return func(m *Module) {
		m.fallback = policy
	}
}

// WithCacheService enables read caching on catalog repositories.
func WithCacheService(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(m *Module) {
		m.cacheService = service
		m.keySerializer = serializer
	}
}

// New constructs the module from configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if !cfg.Enabled {
		return nil, ErrModuleDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.initLogging(); err != nil {
		return nil, err
	}
	if err := m.initStorage(); err != nil {
		return nil, err
	}
	if err := m.initModeration(); err != nil {
		return nil, err
	}
	if err := m.initWorkflow(); err != nil {
		return nil, err
	}

	m.logger.Info("courses module initialized",
		"storage", cfg.Storage.Driver,
		"optimistic_fallback", cfg.Features.OptimisticFallback,
	)
	return m, nil
}

func (m *Module) initLogging() error {
	if m.provider == nil && m.cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     m.cfg.Logging.Level,
			Format:    loggingFormat(m.cfg.Logging),
			AddSource: m.cfg.Logging.AddSource,
			Focus:     m.cfg.Logging.Focus,
		})
		if err != nil {
			return err
		}
		m.provider = provider
	}
	m.logger = logging.ModuleLogger(m.provider, "")
	return nil
}

func loggingFormat(cfg LoggingConfig) string {
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), "console") {
		return "console"
	}
	return cfg.Format
}

func (m *Module) initStorage() error {
	if m.db == nil {
		driver := strings.ToLower(strings.TrimSpace(m.cfg.Storage.Driver))
		if driver == "postgres" {
			return ErrPostgresRequiresDB
		}
		dsn := m.cfg.Storage.DSN
		if dsn == "" {
			dsn = "file:courses.db?_fk=1"
		}
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return err
		}
		m.db = NewSQLiteDB(sqldb)
		m.ownsDB = true
	}

	cacheService := m.cacheService
	keySerializer := m.keySerializer
	if !m.cfg.Cache.Enabled {
		cacheService = nil
		keySerializer = nil
	}

	courseRepo := internalcatalog.NewBunCourseRepositoryWithCache(m.db, cacheService, keySerializer)
	taxonomy := internalcatalog.NewBunTaxonomyRepositoryWithCache(m.db, cacheService, keySerializer)

	catalogOpts := []internalcatalog.ServiceOption{
		internalcatalog.WithLogger(logging.CatalogLogger(m.provider)),
	}
	registryOpts := []internalcatalog.RegistryOption{}
	if m.clock != nil {
		catalogOpts = append(catalogOpts, internalcatalog.WithClock(m.clock))
		registryOpts = append(registryOpts, internalcatalog.WithRegistryClock(m.clock))
	}

	m.catalogSvc = internalcatalog.NewService(courseRepo, taxonomy, catalogOpts...)
	m.registry = internalcatalog.NewBunRegistry(m.db, courseRepo, registryOpts...)
	return nil
}

func (m *Module) initModeration() error {
	if m.client != nil {
		return nil
	}

	routes := m.cfg.Moderation.Routes
	if routes == nil {
		routes = moderation.DefaultRoutes(strings.TrimRight(m.cfg.Moderation.BaseURL, "/"))
	}
	manager := urlkit.NewRouteManager(routes)

	httpClient := m.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: m.cfg.Moderation.Timeout}
	}

	client, err := moderation.NewClient(manager,
		moderation.WithHTTPClient(httpClient),
		moderation.WithLogger(logging.ModerationLogger(m.provider)),
	)
	if err != nil {
		return err
	}
	m.client = client
	return nil
}

func (m *Module) initWorkflow() error {
	fallback := m.fallback
	if fallback == nil {
		if m.cfg.Features.OptimisticFallback {
			fallback = internallifecycle.AssumePendingFallback()
		} else {
			fallback = internallifecycle.NoFallback()
		}
	}

	opts := []internallifecycle.ServiceOption{
		internallifecycle.WithLogger(logging.LifecycleLogger(m.provider)),
		internallifecycle.WithReconciler(internallifecycle.NewReconciler(
			internallifecycle.WithFallbackPolicy(fallback),
		)),
	}
	if m.cfg.Features.TeacherApprovalGate && m.approvals != nil {
		opts = append(opts, internallifecycle.WithApprovals(m.approvals))
	}
	if m.clock != nil {
		opts = append(opts, internallifecycle.WithServiceClock(m.clock))
	}

	workflow, err := internallifecycle.NewService(m.registry, m.client, opts...)
	if err != nil {
		return err
	}
	m.workflow = workflow
	return nil
}

// Lifecycle returns the moderation workflow service.
func (m *Module) Lifecycle() lifecycle.Service {
	return m.workflow
}

// Catalog returns the course catalog service.
func (m *Module) Catalog() catalog.Service {
	return m.catalogSvc
}

// Registry returns the lifecycle state registry.
func (m *Module) Registry() catalog.Registry {
	return m.registry
}

// Moderation returns the moderation client in use.
func (m *Module) Moderation() lifecycle.ModerationClient {
	return m.client
}

// DB exposes the underlying database handle.
func (m *Module) DB() *bun.DB {
	return m.db
}

// Migrate creates the schema and, when configured, seeds the taxonomy tables.
func (m *Module) Migrate(ctx context.Context) error {
	if err := internalcatalog.CreateTables(ctx, m.db); err != nil {
		return err
	}
	if m.cfg.Seed.Taxonomy {
		return internalcatalog.Seed(ctx, m.db, m.cfg.Seed.Countries...)
	}
	return nil
}

// Close releases the database handle when the module opened it.
func (m *Module) Close() error {
	if m.ownsDB && m.db != nil {
		return m.db.Close()
	}
	return nil
}

// CommandHandlers bundles the go-command handlers for the lifecycle operations.
type CommandHandlers struct {
	RequestPublish *coursecmd.RequestPublishCourseHandler
	Unpublish      *coursecmd.UnpublishCourseHandler
	Delete         *coursecmd.DeleteCourseHandler
	Cancel         *coursecmd.CancelCourseRequestHandler
}

// Commands lazily constructs the command handlers. Returns nil unless
// Features.Commands is enabled.
func (m *Module) Commands() *CommandHandlers {
	if !m.cfg.Features.Commands {
		return nil
	}
	if m.handlers != nil {
		return m.handlers
	}

	logger := logging.ModuleLogger(m.provider, "courses.commands")
	timeout := m.cfg.Commands.Timeout

	m.handlers = &CommandHandlers{
		RequestPublish: coursecmd.NewRequestPublishCourseHandler(m.workflow, logger,
			commandTimeout[coursecmd.RequestPublishCourseCommand](timeout)...),
		Unpublish: coursecmd.NewUnpublishCourseHandler(m.workflow, logger,
			commandTimeout[coursecmd.UnpublishCourseCommand](timeout)...),
		Delete: coursecmd.NewDeleteCourseHandler(m.workflow, logger,
			commandTimeout[coursecmd.DeleteCourseCommand](timeout)...),
		Cancel: coursecmd.NewCancelCourseRequestHandler(m.workflow, logger,
			commandTimeout[coursecmd.CancelCourseRequestCommand](timeout)...),
	}
	return m.handlers
}

func commandTimeout[T command.Message](timeout time.Duration) []commands.HandlerOption[T] {
	if timeout <= 0 {
		return nil
	}
	return []commands.HandlerOption[T]{commands.WithTimeout[T](timeout)}
}

// NewSQLiteDB wraps a raw sqlite connection with the bun sqlite dialect.
func NewSQLiteDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, sqlitedialect.New())
}

// NewPostgresDB wraps a raw postgres connection with the bun postgres dialect.
func NewPostgresDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}
