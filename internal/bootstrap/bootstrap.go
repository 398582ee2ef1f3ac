package bootstrap

import (
	"context"
	"fmt"

	"github.com/offerdesk/offerdesk/internal/config"
	"github.com/offerdesk/offerdesk/internal/core/ports"
	"github.com/offerdesk/offerdesk/internal/core/usecase"
	"github.com/offerdesk/offerdesk/internal/infrastructure/repository/jsonfile"
	"github.com/offerdesk/offerdesk/internal/infrastructure/repository/sqlite"
	"github.com/offerdesk/offerdesk/internal/infrastructure/resilience"
	"github.com/offerdesk/offerdesk/internal/infrastructure/storage/localfs"
	"github.com/offerdesk/offerdesk/internal/infrastructure/tasks"
	"github.com/offerdesk/offerdesk/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	Customers *usecase.CustomerService
	Offers    *usecase.OfferService
	Comments  *usecase.CommentService
	Files     *usecase.FileService
	Search    ports.SearchTaskRegistry
	Sweeper   *usecase.Sweeper

	AssetsDir string

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	var (
		customerRepo ports.CustomerRepository
		offerRepo    ports.OfferRepository
		commentRepo  ports.CommentRepository
		fileRepo     ports.FileRepository
		closeFn      = func() {}
	)

	switch cfg.StoreDriver {
	case "jsonfile":
		store, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open jsonfile store: %w", err)
		}
		customerRepo = store.Customers
		offerRepo = store.Offers
		commentRepo = store.Comments
		fileRepo = store.Files
	case "sqlite", "":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		customerRepo = sqlite.NewCustomerRepository(db)
		offerRepo = sqlite.NewOfferRepository(db)
		commentRepo = sqlite.NewCommentRepository(db)
		fileRepo = sqlite.NewFileRepository(db)
		closeFn = func() { _ = db.Close() }
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	storage, err := localfs.New(cfg.AssetsDir)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("init asset storage: %w", err)
	}

	serverMetrics := metrics.NewHTTPServerMetrics("offerdesk-api")
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	sweeper := usecase.NewSweeper(customerRepo, offerRepo, commentRepo, executor, serverMetrics)

	return &App{
		Config:  cfg,
		Metrics: serverMetrics,

		Customers: usecase.NewCustomerService(customerRepo),
		Offers:    usecase.NewOfferService(offerRepo, sweeper, cfg.SweepOnRead),
		Comments:  usecase.NewCommentService(commentRepo),
		Files:     usecase.NewFileService(fileRepo, storage),
		Search:    tasks.NewRegistry(fileRepo, cfg.SearchDelay, serverMetrics),
		Sweeper:   sweeper,

		AssetsDir: storage.Dir(),

		closeFn: closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
