package main

import (
	"context"
	"fmt"

	"stockwatch-srv/config"
	configMysql "stockwatch-srv/config/mysql"
	configRedis "stockwatch-srv/config/redis"
	"stockwatch-srv/internal/activity"
	activityMysql "stockwatch-srv/internal/activity/repository/mysql"
	activityUsecase "stockwatch-srv/internal/activity/usecase"
	alertMysql "stockwatch-srv/internal/alert/repository/mysql"
	alertUsecase "stockwatch-srv/internal/alert/usecase"
	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/httpserver"
	"stockwatch-srv/internal/market"
	marketUsecase "stockwatch-srv/internal/market/usecase"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification"
	notificationMysql "stockwatch-srv/internal/notification/repository/mysql"
	notificationUsecase "stockwatch-srv/internal/notification/usecase"
	websocketUsecase "stockwatch-srv/internal/websocket/usecase"
	"stockwatch-srv/pkg/discord"
	"stockwatch-srv/pkg/log"
	"stockwatch-srv/pkg/mail"
	"stockwatch-srv/pkg/push/apns"
	pkgRedis "stockwatch-srv/pkg/redis"
	"stockwatch-srv/pkg/scope"

	ws "stockwatch-srv/internal/websocket"
)

// @title       StockWatch Service
// @description Price alerts, market activity control, and realtime stock updates for VN-listed symbols
// @version     1.0
// @BasePath    /api/v1
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting StockWatch service...")

	// MySQL
	db, err := configMysql.Connect(ctx, cfg.MySQL)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MySQL: %v", err)
		return
	}
	defer func() {
		if err := configMysql.Disconnect(ctx, db); err != nil {
			logger.Errorf(ctx, "Failed to disconnect MySQL: %v", err)
		}
	}()
	if err := db.AutoMigrate(&model.Alert{}, &model.NotificationJob{}, &model.Device{}, &model.ActivityLogEntry{}); err != nil {
		logger.Errorf(ctx, "Failed to migrate schema: %v", err)
		return
	}
	logger.Info(ctx, "MySQL client initialized")

	// Redis is optional; the dispatcher falls back to in-memory idempotency.
	var rds pkgRedis.IRedis
	if cfg.Redis.Host != "" {
		rds, err = configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Warnf(ctx, "Redis unavailable, continuing without it: %v", err)
			rds = nil
		} else {
			defer configRedis.Disconnect()
			logger.Info(ctx, "Redis client initialized")
		}
	}

	// Mail transport is optional; without it email alerts are skipped.
	var mailer mail.ISender
	if cfg.Mail.Host != "" {
		mailer, err = mail.New(mail.Config{
			Host:          cfg.Mail.Host,
			Port:          cfg.Mail.Port,
			Username:      cfg.Mail.Username,
			Password:      cfg.Mail.Password,
			From:          cfg.Mail.From,
			SkipTLSVerify: cfg.Mail.SkipTLSVerify,
		})
		if err != nil {
			logger.Warnf(ctx, "Mail transport not configured (optional): %v", err)
			mailer = nil
		}
	}

	// APNs is optional as well.
	var pusher apns.IPusher
	if cfg.APNs.Enabled {
		pusher, err = apns.New(apns.Config{
			AuthKey: cfg.APNs.AuthKey,
			KeyID:   cfg.APNs.KeyID,
			TeamID:  cfg.APNs.TeamID,
			Topic:   cfg.APNs.Topic,
			Sandbox: cfg.APNs.Sandbox,
		})
		if err != nil {
			logger.Warnf(ctx, "APNs not configured (optional): %v", err)
			pusher = nil
		}
	}

	// Ops webhook is optional.
	var ops discord.IDiscord
	if cfg.Discord.WebhookURL != "" {
		ops, err = discord.New(logger, cfg.Discord.WebhookURL)
		if err != nil {
			logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
			ops = nil
		} else {
			defer ops.Close()
		}
	}

	if cfg.JWT.SecretKey == "" {
		logger.Error(ctx, "jwt.secret_key is required")
		return
	}
	jwtManager := scope.New(cfg.JWT.SecretKey)

	b := bus.New(logger)
	defer b.Close()

	// Repositories
	activityRepo := activityMysql.New(logger, db)
	alertRepo := alertMysql.New(logger, db)
	notifRepo := notificationMysql.New(logger, db)

	// Scheduler
	activityUC, err := activityUsecase.New(logger, activity.Config{
		Timezone:       cfg.Market.Timezone,
		OpenTime:       cfg.Market.OpenTime,
		CloseTime:      cfg.Market.CloseTime,
		TickInterval:   cfg.Market.TickInterval,
		OverrideSticky: cfg.Market.OverrideSticky,
	}, b, activityRepo)
	if err != nil {
		logger.Errorf(ctx, "Failed to build scheduler: %v", err)
		return
	}

	// Notification dispatcher
	notifUC := notificationUsecase.New(logger, notification.Config{
		Workers:        cfg.Dispatcher.Workers,
		QueueSize:      cfg.Dispatcher.QueueSize,
		MaxAttempts:    cfg.Dispatcher.MaxAttempts,
		InitialDelay:   cfg.Dispatcher.InitialDelay,
		MaxDelay:       cfg.Dispatcher.MaxDelay,
		IdempotencyTTL: cfg.Dispatcher.IdempotencyTTL,
	}, notifRepo, b, rds, mailer, pusher, ops)

	// Alert engine, fed by the market ingester, dispatching into the worker pool.
	alertUC, err := alertUsecase.New(ctx, logger, alertRepo, notifUC)
	if err != nil {
		logger.Errorf(ctx, "Failed to build alert engine: %v", err)
		return
	}

	if cfg.Market.RearmOnOpen {
		activityUC.OnSessionOpen(func(ctx context.Context) {
			if err := alertUC.RearmAll(ctx); err != nil {
				logger.Errorf(ctx, "Failed to re-arm alerts on session open: %v", err)
			}
		})
	}

	marketUC := marketUsecase.New(logger, market.Config{}.Normalize(), b, alertUC, activityUC)

	wsUC := websocketUsecase.New(logger, ws.Config{
		PongWait:       cfg.WebSocket.PongWait,
		PingPeriod:     cfg.WebSocket.PingPeriod,
		WriteWait:      cfg.WebSocket.WriteWait,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
		MaxConnections: cfg.WebSocket.MaxConnections,
	}, b, activityUC)

	srv, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.Server.Port,
		Mode:        cfg.Server.Mode,
		Environment: cfg.Environment.Name,

		JWTManager: jwtManager,

		ActivityUC: activityUC,
		AlertUC:    alertUC,
		MarketUC:   marketUC,
		NotifUC:    notifUC,
		WSUC:       wsUC,

		ActivityRepo: activityRepo,
		NotifRepo:    notifRepo,

		Redis: rds,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to build HTTP server: %v", err)
		return
	}

	if err := srv.Run(); err != nil {
		logger.Errorf(ctx, "Server stopped with error: %v", err)
	}
}
