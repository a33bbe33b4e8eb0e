// Package server assembles the book catalog service: storage, the shared
// BookService, every protocol adapter, and the two listeners (gRPC and HTTP)
// that expose them. It also owns graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/broker"
	"github.com/dmitrijs2005/bookhub/internal/server/config"
	"github.com/dmitrijs2005/bookhub/internal/server/graphqlapi"
	"github.com/dmitrijs2005/bookhub/internal/server/httpserver"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/dmitrijs2005/bookhub/internal/server/soap"
	"github.com/dmitrijs2005/bookhub/internal/server/wsframe"

	gs "github.com/dmitrijs2005/bookhub/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  *logging.SlogLogger
	metrics *metrics.Recorder
	store   repomanager.Store
	books   *services.BookService
	clients *services.ClientDirectory
	pubsub  broker.PubSub
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewSlogLogger(logging.NewJSONSlog(os.Stdout, c.LogLevel))

	store, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  c,
		logger:  logger,
		metrics: metrics.NewRecorder(),
		store:   store,
		books:   services.NewBookService(store),
		clients: services.NewClientDirectory(services.DefaultClients()),
		pubsub:  broker.NewPubSub(logger.Slog()),
	}, nil
}

func openStore(ctx context.Context, c *config.Config) (repomanager.Store, error) {
	switch c.StorageType {
	case config.StoragePostgres:
		s, err := repomanager.OpenPostgresStore(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		return s, nil
	default:
		return repomanager.NewMemoryStore(), nil
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// routes builds every HTTP-mounted adapter over the shared BookService.
func (app *App) routes() httpserver.Routes {
	return httpserver.Routes{
		GraphQL:  graphqlapi.NewHandler(app.logger, app.books, app.metrics),
		SOAP:     soap.NewHandler(app.logger, app.books, app.clients, app.metrics),
		STOMP:    broker.NewHandler(app.logger, app.books, app.pubsub, app.metrics),
		RawFrame: wsframe.NewHandler(app.logger, app.books, app.metrics),
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.books, app.metrics)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpserver.NewRouter(app.routes(), app.metrics)
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, h, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or either listener fails,
// then stops both listeners and releases the broker and the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"grpc", app.config.EndpointAddrGRPC,
		"http", app.config.EndpointAddrHTTP,
		"storage", app.config.StorageType,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.shutdown(context.WithoutCancel(ctx))
}

func (app *App) shutdown(ctx context.Context) {
	if err := app.pubsub.Close(); err != nil {
		app.logger.Warn(ctx, "Broker close failed", "error", err)
	}
	if err := app.store.Close(); err != nil {
		app.logger.Warn(ctx, "Store close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
