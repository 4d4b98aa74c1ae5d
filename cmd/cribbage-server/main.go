// Command cribbage-server hosts two-player cribbage games over
// websockets. Players create a room, share its code, and play until
// one of them pegs out.
package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nullromo/cribbage/internal/config"
	"github.com/nullromo/cribbage/internal/server"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetLevel(cfg.LogrusLevel())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv := server.New(log, cfg.AllowedOrigins)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithField("addr", cfg.ListenAddr).Info("cribbage server listening")
	if err := httpServer.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
