package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/docstore"
	handlers "github.com/soilworks/borelog-registry/internal/handlers/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/service"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/pkg/metrics"
	"github.com/soilworks/borelog-registry/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	docs     *docstore.Store
	listener net.Listener
}

// New returns a new instance of the borelog registry server.
func New(
	cfg *config.Config,
	store store.Store,
	docs *docstore.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		docs:     docs,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	materializer := service.NewMaterializer(s.store, s.docs)
	h := handlers.NewHandler(
		service.NewUploadService(s.store),
		service.NewApprovalService(s.store, materializer),
		service.NewVersionService(s.docs),
		service.NewRecordService(s.store),
	)
	h.Routes(router)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
