package httpserver

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stockwatch-srv/internal/middleware"

	activityHTTP "stockwatch-srv/internal/activity/delivery/http"
	alertHTTP "stockwatch-srv/internal/alert/delivery/http"
	marketHTTP "stockwatch-srv/internal/market/delivery/http"
	notificationHTTP "stockwatch-srv/internal/notification/delivery/http"
	websocketHTTP "stockwatch-srv/internal/websocket/delivery/http"

	// Registers the generated Swagger spec.
	_ "stockwatch-srv/docs"
)

const (
	// Api is the public surface consumed by the dashboard frontend.
	Api = "/api/v1"
	// InternalApi is the feed-facing surface, not exposed through the edge.
	InternalApi = "/internal/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	mw := middleware.New(srv.logger, srv.jwtManager)

	api := srv.gin.Group(Api)
	activityHTTP.New(srv.logger, srv.activityUC, srv.activityRepo).RegisterRoutes(api, mw)
	alertHTTP.New(srv.logger, srv.alertUC).RegisterRoutes(api, mw)
	notificationHTTP.New(srv.logger, srv.notifRepo).RegisterRoutes(api, mw)
	websocketHTTP.New(srv.logger, srv.wsUC, srv.environment).RegisterRoutes(api, mw)

	internal := srv.gin.Group(InternalApi)
	marketHTTP.New(srv.logger, srv.marketUC).RegisterRoutes(internal)

	return nil
}
