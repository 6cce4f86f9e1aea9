package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"littlelibrary/internal/book"
	"littlelibrary/internal/catalog"
	"littlelibrary/internal/film"
	"littlelibrary/internal/lightnovel"
	"littlelibrary/internal/manga"
	"littlelibrary/internal/middleware"
	"littlelibrary/pkg/database"
	"littlelibrary/pkg/utils"
)

func main() {
	srvCfg := utils.LoadServerConfig()

	logger, err := newLogger(srvCfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	dbCfg := database.DefaultConfig()
	openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db := database.MustOpen(openCtx, dbCfg)
	cancel()
	defer db.Client().Disconnect(context.Background())

	// Indexes must exist before traffic; a failure here means the data
	// already violates a constraint and has to be fixed first.
	idxCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureIndexes(idxCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("ensure indexes failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Database})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db_error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	film.NewHandler(film.NewRepo(db)).RegisterRoutes(router.Group("/films"))
	manga.NewHandler(manga.NewRepo(db)).RegisterRoutes(router.Group("/manga"))
	lightnovel.NewHandler(lightnovel.NewRepo(db)).RegisterRoutes(router.Group("/light-novels"))
	book.NewHandler(book.NewRepo(db)).RegisterRoutes(router.Group("/books"))
	catalog.NewHandler(catalog.NewRepo(db)).RegisterRoutes(router.Group("/catalog"))

	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("api server listening", zap.String("addr", srvCfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
