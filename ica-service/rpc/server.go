package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/log"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"

	shutdownTimeout = 10 * time.Second
)

// Server exposes JSON-RPC APIs over HTTP next to health and metrics endpoints.
type Server struct {
	host    string
	port    int
	version string
	log     log.Logger

	apis           []gethrpc.API
	metricsHandler http.Handler

	rpcServer  *gethrpc.Server
	httpServer *http.Server
	listener   net.Listener
	group      errgroup.Group
}

type ServerOption func(s *Server)

func WithLogger(lgr log.Logger) ServerOption {
	return func(s *Server) {
		s.log = lgr
	}
}

func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

func NewServer(host string, port int, version string, opts ...ServerOption) *Server {
	s := &Server{
		host:      host,
		port:      port,
		version:   version,
		log:       log.Root(),
		rpcServer: gethrpc.NewServer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) AddAPI(api gethrpc.API) {
	s.apis = append(s.apis, api)
}

// Endpoint returns the address the server listens on once started.
func (s *Server) Endpoint() string {
	if s.listener == nil {
		return net.JoinHostPort(s.host, strconv.Itoa(s.port))
	}
	return s.listener.Addr().String()
}

func (s *Server) Start() error {
	for _, api := range s.apis {
		if err := s.rpcServer.RegisterName(api.Namespace, api.Service); err != nil {
			return err
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get(HealthPath, s.handleHealth)
	if s.metricsHandler != nil {
		router.Handle(MetricsPath, s.metricsHandler)
	}
	router.Handle("/", s.rpcServer)

	listener, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return err
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.group.Go(func() error {
		if err := s.httpServer.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("RPC server stopped unexpectedly", "err", err)
			return err
		}
		return nil
	})
	s.log.Info("RPC server listening", "endpoint", s.Endpoint())
	return nil
}

func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)
	s.rpcServer.Stop()
	return errors.Join(err, s.group.Wait())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"version": s.version})
}
