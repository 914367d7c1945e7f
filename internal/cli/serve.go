package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlindgren/wirecut/pkg/api"
	"github.com/mlindgren/wirecut/pkg/store"
)

// Store backend names accepted by --store.
const (
	storeMemory = "memory"
	storeFile   = "file"
	storeRedis  = "redis"
	storeMongo  = "mongo"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		backend   string
		dir       string
		redisAddr string
		redisDB   int
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wirecut HTTP API",
		Long: `Run the wirecut HTTP API.

The serve command starts an HTTP server exposing the build/cut/render
pipeline and a graph snapshot store. Backends:

  memory   in-process map, lost on restart (default)
  file     one JSON file per graph under --dir
  redis    JSON values in Redis at --redis-addr
  mongo    BSON documents in MongoDB at --mongo-uri

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore(cmd.Context(), backend, dir, redisAddr, redisDB, mongoURI)
			if err != nil {
				return err
			}
			defer st.Close()
			return c.runServe(cmd.Context(), addr, st)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&backend, "store", storeMemory, "store backend: memory, file, redis, mongo")
	cmd.Flags().StringVar(&dir, "dir", "./graphs", "directory for the file store")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for the redis store")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "redis database index")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo connection string for the mongo store")

	return cmd
}

// newStore constructs the snapshot store for the chosen backend.
func newStore(ctx context.Context, backend, dir, redisAddr string, redisDB int, mongoURI string) (store.Store, error) {
	switch backend {
	case storeMemory:
		return store.NewMemoryStore(), nil
	case storeFile:
		return store.NewFileStore(dir)
	case storeRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: redisAddr, DB: redisDB})
	case storeMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q (must be memory, file, redis, or mongo)", backend)
	}
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, st store.Store) error {
	server := api.NewServer(st, c.Logger)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
