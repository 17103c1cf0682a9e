package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type ctxKey string

const actorIDKey ctxKey = "actor_id"

// Init configures the global logger: JSON for log collectors, text when
// stdout is an interactive terminal.
func Init(level string) {
	Logger.SetOutput(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		Logger.WithField("level", level).Warn("Unknown log level, falling back to info")
	}
	Logger.SetLevel(lvl)
}

// WithActorID stores the authenticated caller on ctx so every log line
// written through WithContext carries it.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(Logger)

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if actorID, ok := ctx.Value(actorIDKey).(string); ok && actorID != "" {
		entry = entry.WithField("actor_id", actorID)
	}

	return entry
}
