package httpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 15 * time.Second

// Run maps handlers, starts the background services, serves HTTP, and blocks
// until a shutdown signal. Shutdown order matters: the scheduler and websocket
// hub stop first so no new evaluation or push work starts, then the
// dispatcher drains its queue.
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run: map handlers: %v", err)
		return err
	}

	go srv.activityUC.Run()
	go srv.notifUC.Run()
	go srv.wsUC.Run()
	srv.logger.Info(ctx, "background services started")

	go func() {
		if err := srv.gin.Run(fmt.Sprintf(":%d", srv.port)); err != nil {
			srv.logger.Errorf(ctx, "internal.httpserver.Run: %v", err)
		}
	}()
	srv.logger.Infof(ctx, "HTTP server started on port %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	srv.logger.Infof(ctx, "received %s, stopping", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.activityUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run: scheduler shutdown: %v", err)
	}
	if err := srv.wsUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run: websocket shutdown: %v", err)
	}
	if err := srv.notifUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run: dispatcher shutdown: %v", err)
	}

	return nil
}
