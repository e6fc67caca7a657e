package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/activity"
	activityRepo "stockwatch-srv/internal/activity/repository"
	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/market"
	"stockwatch-srv/internal/notification"
	notificationRepo "stockwatch-srv/internal/notification/repository"
	"stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/log"
	pkgRedis "stockwatch-srv/pkg/redis"
	"stockwatch-srv/pkg/scope"
)

// HTTPServer wires the delivery layer over the use cases. New() only wires
// and validates; Run() (in httpserver.go) owns the lifecycle.
type HTTPServer struct {
	gin         *gin.Engine
	logger      log.Logger
	port        int
	mode        string
	environment string

	jwtManager scope.Manager

	activityUC activity.UseCase
	alertUC    alert.UseCase
	marketUC   market.UseCase
	notifUC    notification.UseCase
	wsUC       websocket.UseCase

	activityRepo activityRepo.Repository
	notifRepo    notificationRepo.Repository

	// redis is optional; health checks degrade when absent.
	redis pkgRedis.IRedis
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Port        int
	Mode        string
	Environment string

	JWTManager scope.Manager

	ActivityUC activity.UseCase
	AlertUC    alert.UseCase
	MarketUC   market.UseCase
	NotifUC    notification.UseCase
	WSUC       websocket.UseCase

	ActivityRepo activityRepo.Repository
	NotifRepo    notificationRepo.Repository

	Redis pkgRedis.IRedis
}

// New creates an HTTPServer. No goroutines start here.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		jwtManager: cfg.JWTManager,

		activityUC: cfg.ActivityUC,
		alertUC:    cfg.AlertUC,
		marketUC:   cfg.MarketUC,
		notifUC:    cfg.NotifUC,
		wsUC:       cfg.WSUC,

		activityRepo: cfg.ActivityRepo,
		notifRepo:    cfg.NotifRepo,

		redis: cfg.Redis,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.jwtManager == nil {
		return errors.New("JWT manager is required")
	}
	if srv.activityUC == nil || srv.alertUC == nil || srv.marketUC == nil || srv.notifUC == nil || srv.wsUC == nil {
		return errors.New("all use cases are required")
	}
	if srv.activityRepo == nil || srv.notifRepo == nil {
		return errors.New("all repositories are required")
	}
	return nil
}
