package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"chainroute/internal/classify"
	"chainroute/internal/config"
	"chainroute/internal/endpoint"
	"chainroute/internal/failover"
	"chainroute/internal/logging"
	"chainroute/internal/metrics"
	"chainroute/internal/transport"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()
	logger.Infow("starting_chainrouted",
		"chain_endpoints", len(cfg.Chain.Endpoints),
		"sidechain_endpoints", len(cfg.Sidechain.Endpoints))

	// Create metrics collector
	collector := metrics.NewCollector()

	// One HTTP client for both transports; per-attempt timeouts are applied
	// by the failover clients through the request context.
	httpClient := &http.Client{}

	chainClient, err := failover.New(failover.Options{
		Service:        "chain",
		Endpoints:      cfg.Chain.Endpoints,
		Transport:      transport.NewNodeTransport(httpClient),
		AttemptTimeout: time.Duration(cfg.AttemptTimeout) * time.Second,
		FailureWindow:  time.Duration(cfg.FailureWindow) * time.Second,
		Logger:         logger,
		Collector:      collector,
	})
	if err != nil {
		logger.Errorw("failed_to_create_chain_client", "error", err.Error())
		log.Fatal(err)
	}

	sidechainClient, err := failover.New(failover.Options{
		Service:        "sidechain",
		Endpoints:      cfg.Sidechain.Endpoints,
		Transport:      transport.NewContractTransport(httpClient),
		AttemptTimeout: time.Duration(cfg.AttemptTimeout) * time.Second,
		FailureWindow:  time.Duration(cfg.FailureWindow) * time.Second,
		Logger:         logger,
		Collector:      collector,
	})
	if err != nil {
		logger.Errorw("failed_to_create_sidechain_client", "error", err.Error())
		log.Fatal(err)
	}

	// Create context for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start metrics exporter
	exporter := metrics.NewExporter(collector, chainClient, sidechainClient)
	go exporter.Start(ctx)

	// Start config watcher for endpoint hot reload
	configWatcher, err := config.NewWatcher(*configPath, logger, func(newCfg *config.Config) error {
		if err := chainClient.SetEndpoints(newCfg.Chain.Endpoints); err != nil {
			return err
		}
		if err := sidechainClient.SetEndpoints(newCfg.Sidechain.Endpoints); err != nil {
			return err
		}
		logger.Infow("endpoints_reloaded",
			"chain", len(newCfg.Chain.Endpoints),
			"sidechain", len(newCfg.Sidechain.Endpoints))
		return nil
	})
	if err != nil {
		logger.Errorw("failed_to_create_config_watcher", "error", err.Error())
	} else {
		go configWatcher.Start(ctx)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rpc", rpcHandler(chainClient, logger))
	mux.HandleFunc("POST /sidechain/rpc", rpcHandler(sidechainClient, logger))
	mux.HandleFunc("GET /status", statusHandler(chainClient, sidechainClient))
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infow("server_starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("server_error", "error", err.Error())
			log.Fatal(err)
		}
	}()

	<-sigChan
	logger.Infow("shutdown_signal_received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown_error", "error", err.Error())
	}
	cancel()

	logger.Infow("shutdown_complete")
}

type rpcEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcErrorBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type rpcReply struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcErrorBody   `json:"error,omitempty"`
}

// rpcHandler forwards one JSON-RPC envelope through a routed client. The
// caller never learns which endpoint served the request.
func rpcHandler(client *failover.Client, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcEnvelope
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON-RPC request", http.StatusBadRequest)
			return
		}
		if req.Method == "" {
			http.Error(w, "missing method", http.StatusBadRequest)
			return
		}

		reply := rpcReply{JSONRPC: "2.0", ID: req.ID}

		// Chain nodes reject a null params field; an omitted one means an
		// empty positional list.
		params := req.Params
		if len(params) == 0 {
			params = json.RawMessage(`[]`)
		}

		result, err := client.Call(r.Context(), req.Method, params)
		var allFailed *failover.AllFailedError
		var rpcErr *classify.RPCError
		switch {
		case err == nil:
			reply.Result = result

		// The aggregate failure can wrap a penalizing RPC envelope as its
		// last underlying error, so it must be matched before RPCError.
		case errors.As(err, &allFailed):
			logger.Warnw("rpc_call_failed",
				"service", client.Service(),
				"method", req.Method,
				"error", err.Error())
			http.Error(w, err.Error(), http.StatusBadGateway)
			return

		case errors.As(err, &rpcErr):
			// Deterministic application error: return the envelope verbatim.
			reply.Error = &rpcErrorBody{
				Code:    rpcErr.Code,
				Message: rpcErr.Message,
				Data:    rpcErr.Data,
			}

		default:
			logger.Warnw("rpc_call_failed",
				"service", client.Service(),
				"method", req.Method,
				"error", err.Error())
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}
}

type serviceStatus struct {
	Primary   string                     `json:"primary"`
	Endpoints map[string]endpoint.Health `json:"endpoints"`
}

// statusHandler exposes the read-only inspection surface: per-endpoint health
// records and the primary marker of each service.
func statusHandler(clients ...*failover.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]serviceStatus, len(clients))
		for _, c := range clients {
			status[c.Service()] = serviceStatus{
				Primary:   c.Primary(),
				Endpoints: c.Statuses(),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
