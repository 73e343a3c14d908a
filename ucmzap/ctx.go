package ucmzap

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxKey holds the context key under which the logger will be stored.
type ctxKey string

// WithLogger returns a context with the provided logger embedded.
func WithLogger(ctx context.Context, logs *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey("ucmzap.logger"), logs)
}

// LoggerFromContext returns the logger stored in ctx, or false when no logger is present.
func LoggerFromContext(ctx context.Context) (*zap.Logger, bool) {
	logs, ok := ctx.Value(ctxKey("ucmzap.logger")).(*zap.Logger)

	return logs, ok
}

// Log retrieves a zap logger from the context. Returns the fallback (or a no-op logger) if none is
// embedded. If the context carries tracing or lambda invocation information it is added as fields.
func Log(ctx context.Context, fallback ...*zap.Logger) *zap.Logger {
	logs, ok := LoggerFromContext(ctx)
	if !ok {
		if len(fallback) > 0 {
			logs = fallback[0]
		} else {
			logs = zap.NewNop()
		}
	}

	// if span information is in the context, add it as a field to the logger
	span := trace.SpanFromContext(ctx)
	if span != nil && span.SpanContext().HasSpanID() {
		logs = logs.With(zap.String("span_id", span.SpanContext().SpanID().String()))
	}

	// log the trace id in the xray format, and add it as a field to the logger
	if span != nil && span.SpanContext().HasTraceID() {
		tid := span.SpanContext().TraceID().String()
		logs = logs.With(zap.String("trace_id", fmt.Sprintf("1-%s-%s", tid[:8], tid[8:])))
	}

	// when invoked as a lambda, log the request id so entries can be correlated to invocations
	if lctx, ok := lambdacontext.FromContext(ctx); ok && lctx.AwsRequestID != "" {
		logs = logs.With(zap.String("requestId", lctx.AwsRequestID))
	}

	return logs
}
