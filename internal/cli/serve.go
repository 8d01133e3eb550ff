package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotcheck/internal/server"
	"github.com/matzehuels/lotcheck/pkg/cache"
	apperrors "github.com/matzehuels/lotcheck/pkg/errors"
	"github.com/matzehuels/lotcheck/pkg/rules"
)

// serveCommand creates the serve command for running the validation API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		policyPath string
		redisAddr  string
		redisPass  string
		redisDB    int
		cacheTTL   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout validation HTTP API",
		Long: `Run the layout validation HTTP API.

The server exposes POST /v1/validate, which accepts a layout JSON document
and returns the validation report, and GET /healthz for liveness probes.

With --redis, reports are cached in Redis keyed by a content hash of the
layout and policy, so identical requests across instances are served from
the cache. Without it, every request is validated fresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, policyPath, redisAddr, redisPass, redisDB, cacheTTL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&policyPath, "policy", "p", "", "TOML policy file with threshold overrides")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (host:port) for the shared report cache")
	cmd.Flags().StringVar(&redisPass, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis logical database")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "report cache time-to-live")

	return cmd
}

// runServe builds the cache and server and serves until the context is
// cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr, policyPath, redisAddr, redisPass string, redisDB int, cacheTTL time.Duration) error {
	if err := apperrors.ValidateListenAddr(addr); err != nil {
		return err
	}

	pol := rules.DefaultPolicy()
	if policyPath != "" {
		var err error
		if pol, err = rules.LoadPolicy(policyPath); err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
	}

	store, err := c.newServerCache(ctx, redisAddr, redisPass, redisDB)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(server.Options{
		Policy:   pol,
		Cache:    store,
		Logger:   c.Logger,
		CacheTTL: cacheTTL,
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	c.Logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServerCache returns the Redis-backed report cache when an address is
// given, scoped under an application prefix, and the null cache otherwise.
func (c *CLI) newServerCache(ctx context.Context, redisAddr, redisPass string, redisDB int) (cache.Cache, error) {
	if redisAddr == "" {
		c.Logger.Debug("report cache disabled")
		return cache.NewNullCache(), nil
	}

	if err := apperrors.ValidateRedisAddr(redisAddr); err != nil {
		return nil, err
	}
	store, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
	}
	c.Logger.Info("report cache enabled", "redis", redisAddr, "db", redisDB)
	return cache.NewScopedCache(store, appName+":"), nil
}
