package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/bombrisk"
	httpadapter "github.com/aretw0/bombrisk/pkg/adapters/http"
	"github.com/aretw0/bombrisk/pkg/adapters/memory"
	redisadapter "github.com/aretw0/bombrisk/pkg/adapters/redis"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/observability"
	"github.com/aretw0/bombrisk/pkg/persistence/middleware"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/aretw0/bombrisk/pkg/session"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts widgets over a JSON API. Widget state lives in memory, or in Redis
when --redis-url is set, so several instances can share it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		treatments, err := treatmentLoader()
		if err != nil {
			return err
		}

		metrics := observability.NewMetrics()
		hooks := domain.CombineHooks(metrics.Hooks(), observability.LoggingHooks(logger))
		mgrOpts := []session.Option{
			session.WithLogger(logger),
			session.WithWidgetOptions(widgetOptions(logger, bombrisk.WithLifecycleHooks(hooks))...),
		}

		var store ports.GaugeStore = memory.NewStore()
		if url := config.GetString("serve.redis_url"); url != "" {
			opts, err := redis.ParseURL(url)
			if err != nil {
				return fmt.Errorf("invalid redis url: %w", err)
			}
			client := redis.NewClient(opts)
			rs := redisadapter.NewFromClient(client, redisadapter.WithTTL(config.GetDuration("serve.ttl")))
			defer rs.Close()
			store = rs
			mgrOpts = append(mgrOpts, session.WithLocker(redisadapter.NewLocker(client, redisadapter.DefaultPrefix)))
		}
		if key := config.GetString("serve.seal_key"); key != "" {
			seal, err := sealingMiddleware(key, config.GetStringSlice("serve.seal_fallback_keys"))
			if err != nil {
				return err
			}
			store = middleware.Chain(store, seal)
		}
		mgr := session.NewManager(store, mgrOpts...)

		handlerOpts := []httpadapter.Option{httpadapter.WithLogger(logger)}
		if treatments != nil {
			handlerOpts = append(handlerOpts, httpadapter.WithTreatments(treatments))
		}
		if config.GetBool("serve.metrics") {
			handlerOpts = append(handlerOpts, httpadapter.WithMetricsHandler(metrics.Handler()))
		}
		handler, err := httpadapter.NewHandler(cmd.Context(), mgr, handlerOpts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              config.GetString("serve.addr"),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting bombrisk server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "bombrisk server stopped gracefully")
			return nil
		}
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringP("addr", "a", ":8080", "Address to listen on")
	f.String("redis-url", "", "Redis URL for shared widget state (e.g. redis://localhost:6379/0)")
	f.Duration("ttl", 24*time.Hour, "Expiry of widget state in Redis")
	f.Bool("metrics", true, "Expose Prometheus metrics at /metrics")
	_ = config.BindPFlag("serve.addr", f.Lookup("addr"))
	_ = config.BindPFlag("serve.redis_url", f.Lookup("redis-url"))
	_ = config.BindPFlag("serve.ttl", f.Lookup("ttl"))
	f.String("seal-key", "", "Base64 AES-256 key sealing stored widget state")
	f.StringSlice("seal-fallback-keys", nil, "Previous seal keys, tried when the active key fails")
	_ = config.BindPFlag("serve.metrics", f.Lookup("metrics"))
	_ = config.BindPFlag("serve.seal_key", f.Lookup("seal-key"))
	_ = config.BindPFlag("serve.seal_fallback_keys", f.Lookup("seal-fallback-keys"))
	rootCmd.AddCommand(serveCmd)
}

// sealingMiddleware decodes base64 keys into an encryption middleware.
func sealingMiddleware(active string, fallbacks []string) (middleware.Middleware, error) {
	decode := func(s string) ([]byte, error) {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid seal key: %w", err)
		}
		return k, nil
	}
	cfg := middleware.EncryptionConfig{}
	var err error
	if cfg.ActiveKey, err = decode(active); err != nil {
		return nil, err
	}
	for _, f := range fallbacks {
		k, err := decode(f)
		if err != nil {
			return nil, err
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, k)
	}
	return middleware.NewEncryptionMiddleware(cfg)
}
