package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/emrgen/wiki/internal/api"
	"github.com/emrgen/wiki/internal/auth"
	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/config"
	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/storage"
	"github.com/emrgen/wiki/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"gorm.io/gorm"
)

// App is the wired wiki: services, routes and their backing stores.
type App struct {
	Services api.Services
	handler  http.Handler
	closers  []func() error
}

// NewApp wires the wiki on top of an open database.
func NewApp(cfg *config.Config, db *gorm.DB) (*App, error) {
	app := &App{}

	wikiStore := store.NewGormStore(db)
	if err := wikiStore.Migrate(); err != nil {
		return nil, err
	}

	var htmlCache cache.HTMLCache
	if cfg.RedisAddr != "" {
		redis := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redis.Ping(context.Background()); err != nil {
			_ = redis.Close()
			return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		app.closers = append(app.closers, redis.Close)
		htmlCache = redis
	} else {
		htmlCache = cache.NewMemory()
	}

	compressor, err := compress.New(cfg.StorageCompression)
	if err != nil {
		return nil, err
	}
	blobs, err := storage.NewLocal(cfg.StoragePath, compressor)
	if err != nil {
		return nil, err
	}

	articles := service.NewArticleService(wikiStore, htmlCache)
	app.Services = api.Services{
		Articles:    articles,
		Revisions:   service.NewRevisionService(wikiStore, articles),
		Attachments: service.NewAttachmentService(wikiStore, blobs),
		URLs:        service.NewURLPathService(wikiStore),
		Users:       service.NewUserService(wikiStore),
		Groups:      service.NewGroupService(wikiStore),
		Tags:        service.NewTagService(wikiStore),
		Auth:        service.NewAuthService(wikiStore),
	}

	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionName)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = false
	engine.HandleMethodNotAllowed = true
	engine.Use(
		gin.CustomRecovery(func(c *gin.Context, err any) {
			logrus.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
		}),
		RequestTimeInterceptor(),
		auth.RequireUser(auth.DefaultPolicy(), sessions, app.Services.Auth),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf("Method \"%s\" not allowed.", c.Request.Method)})
	})

	api.NewHandler(app.Services, sessions, cfg.PageSize).Register(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	app.handler = c.Handler(newFrontDoor(engine))

	return app, nil
}

// Handler serves the whole wiki.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases the connections the app opened.
func (a *App) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}

// EnsureAdmin creates the configured admin user when both the username and
// the password are set.
func (a *App) EnsureAdmin(ctx context.Context, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	created, err := a.Services.Users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		logrus.Infof("created admin user %s", cfg.AdminUsername)
	}

	return nil
}

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{httpPort: httpPort}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start serves the wiki until the process is interrupted.
func Start(httpPort string) error {
	cnf := config.LoadConfig()
	config.ConfigureLogging(cnf)
	if httpPort == "" {
		httpPort = cnf.HTTPPort
	}
	httpPort = ":" + httpPort

	if logrus.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb, err := config.OpenDb(cnf)
	if err != nil {
		return err
	}

	app, err := NewApp(cnf, rdb)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logrus.Errorf("error closing app: %v", err)
		}
	}()

	if err := app.EnsureAdmin(context.Background(), cnf); err != nil {
		return err
	}

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	restServer := &http.Server{
		Addr:              httpPort,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting wiki api on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error serving wiki api: %v", err)
			}
		}
		logrus.Infof("wiki api stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := restServer.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping wiki api: %v", err)
	}

	wg.Wait()

	return nil
}
