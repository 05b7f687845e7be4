package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-hotel-booking/internal/config"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
)

// The worker journals booking events published by the API.  It needs only
// the queue settings, not the database.
func main() {
	_ = godotenv.Load()
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	qc := config.LoadQueueConfig()
	if err := os.MkdirAll(qc.LogDir, 0o755); err != nil {
		log.WithError(err).Fatal("create log dir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: qc.URL, Queue: qc.Queue, LogDir: qc.LogDir, Log: log}
	log.WithFields(logrus.Fields{"queue": qc.Queue, "dir": qc.LogDir}).Info("booking worker started")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("booking worker stopped")
	}
	log.Info("booking worker stopped")
}
