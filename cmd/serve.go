package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"portfolio/api/database"
	"portfolio/api/handlers"
	"portfolio/api/leetcode"
	"portfolio/api/mailer"
	"portfolio/api/store"
	"portfolio/api/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- MongoDB (blogs) ---
	mongoClient, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer mongoClient.Close()
	blogStore := store.NewBlogStore(mongoClient.DB)

	// --- Redis (profile cache, rate limiting), optional ---
	var rdb *redis.Client
	var profileCache handlers.ProfileCache
	if cfg.RedisAddr != "" {
		rdb, err = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache and rate limiting")
			rdb = nil
		} else {
			defer rdb.Close()
			profileCache = store.NewProfileCache(rdb, cfg.LeetCode.CacheTTL)
		}
	}

	// --- PostgreSQL (contact log), optional ---
	var contactRepo handlers.ContactRepository
	if cfg.DatabaseURL != "" {
		dbClient, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer dbClient.Close()
		contactRepo = store.NewContactStore(dbClient.DB)
	}

	// --- ClickHouse (blog views), optional ---
	var analyticsHandlers *handlers.AnalyticsHandlers
	if cfg.ClickHouse.Enabled() {
		chClient, err := database.NewClickHouseDB(cfg.ClickHouse)
		if err != nil {
			return err
		}
		defer chClient.Close()
		analyticsHandlers = handlers.NewAnalyticsHandlers(store.NewAnalyticsStore(chClient), blogStore)
	}

	loc, err := time.LoadLocation(cfg.LeetCode.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.LeetCode.Timezone).Msg("unknown LEETCODE_TIMEZONE, using local time")
		loc = time.Local
	}

	jwtManager := utils.NewJWTManager(cfg.Blog.JWTSecret, cfg.Blog.TokenTTL)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, cfg.Contact.To, log.Logger)
	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP not configured, contact form submissions will fail")
	}

	r := handlers.NewRouter(handlers.RouterDeps{
		Auth:  handlers.NewAuthHandlers(utils.NewPasscodeChecker(cfg.Blog.AdminPass, cfg.Blog.AdminPassHash), jwtManager),
		Blogs: handlers.NewBlogHandlers(blogStore),
		LeetCode: handlers.NewLeetCodeHandlers(
			leetcode.NewClient(cfg.LeetCode.GraphQLURL, cfg.LeetCode.Timeout),
			profileCache,
			cfg.LeetCode.DefaultUsername,
			leetcode.Options{TrailingDays: cfg.LeetCode.TrailingDays, GridColumns: cfg.LeetCode.GridColumns},
			loc,
		),
		Contact:       handlers.NewContactHandlers(contactRepo, smtpMailer, cfg.Contact.SendTimeout),
		Analytics:     analyticsHandlers,
		Tokens:        jwtManager,
		CORSOrigins:   cfg.CORSOrigins,
		RateLimiter:   rdb,
		ContactLimit:  cfg.Contact.RateLimit,
		ContactWindow: cfg.Contact.RateWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("portfolio API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
