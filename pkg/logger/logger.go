package logger

import (
	"io"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Setup configures log as JSON at level and attaches the trace hook.
func Setup(log *logrus.Logger, out io.Writer, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.AddHook(TraceHook{})
	return nil
}

// TraceHook copies trace and span ids from an entry's context into its fields.
type TraceHook struct{}

func (TraceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (TraceHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}

	sc := trace.SpanContextFromContext(entry.Context)
	if !sc.IsValid() {
		return nil
	}

	entry.Data["trace_id"] = sc.TraceID().String()
	entry.Data["span_id"] = sc.SpanID().String()
	return nil
}
