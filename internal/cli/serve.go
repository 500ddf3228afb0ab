package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/cache"
	"github.com/matzehuels/qchip/pkg/observability"
	"github.com/matzehuels/qchip/pkg/pipeline"
	"github.com/matzehuels/qchip/pkg/server"
	"github.com/matzehuels/qchip/pkg/store"
)

const jobCleanupInterval = 10 * time.Minute

type serveOpts struct {
	addr      string
	redisAddr string
	mongoURI  string
	mongoDB   string
	noCache   bool
	jobTTL    time.Duration
	timeout   time.Duration
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var o serveOpts
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

Layouts and artifacts are cached in Redis when --redis-addr is set and in the
local cache directory otherwise. Jobs are kept in MongoDB when --mongo-uri is
set and in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), o)
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&o.redisAddr, "redis-addr", "", "Redis address or redis:// URL for the shared cache")
	cmd.Flags().StringVar(&o.mongoURI, "mongo-uri", "", "MongoDB URI for the job store")
	cmd.Flags().StringVar(&o.mongoDB, "mongo-db", store.DefaultMongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&o.jobTTL, "job-ttl", store.DefaultTTL, "how long finished jobs are kept")
	cmd.Flags().DurationVar(&o.timeout, "job-timeout", server.DefaultJobTimeout, "limit for a single render job")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, o serveOpts) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	cc, err := c.serverCache(ctx, o)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	jobs, err := c.serverStore(ctx, o)
	if err != nil {
		return err
	}
	defer jobs.Close(context.Background())

	go cleanupJobs(ctx, jobs, c)

	srv := server.New(runner, jobs, c.Logger,
		server.WithJobTTL(o.jobTTL),
		server.WithJobTimeout(o.timeout))
	return srv.ListenAndServe(ctx, o.addr)
}

func (c *CLI) serverCache(ctx context.Context, o serveOpts) (cache.Cache, error) {
	switch {
	case o.noCache:
		return cache.NewNullCache(), nil
	case o.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: o.redisAddr})
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "addr", o.redisAddr)
		return rc, nil
	default:
		return newCache(false)
	}
}

func (c *CLI) serverStore(ctx context.Context, o serveOpts) (store.Store, error) {
	if o.mongoURI == "" {
		c.Logger.Info("using in-memory job store")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: o.mongoURI, Database: o.mongoDB})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongo job store", "db", o.mongoDB)
	return ms, nil
}

// cleanupJobs drops expired jobs until ctx ends.
func cleanupJobs(ctx context.Context, jobs store.Store, c *CLI) {
	ticker := time.NewTicker(jobCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := jobs.Cleanup(ctx); err != nil {
				c.Logger.Warn("job cleanup failed", "error", err)
			}
		}
	}
}
