package ctxutil

import "context"

type correlationKey struct{}

// Correlation ties log lines, spans and payment idempotency keys to one
// inbound request.
type Correlation struct {
	TraceID   string
	RequestID string
}

func WithCorrelation(ctx context.Context, c Correlation) context.Context {
	return context.WithValue(ctx, correlationKey{}, c)
}

// CorrelationFrom returns the zero value outside an HTTP request.
func CorrelationFrom(ctx context.Context) Correlation {
	c, _ := Default(ctx).Value(correlationKey{}).(Correlation)
	return c
}

// Fields renders the non-empty ids as logger key/value pairs.
func (c Correlation) Fields() []interface{} {
	var kv []interface{}
	if c.TraceID != "" {
		kv = append(kv, "trace_id", c.TraceID)
	}
	if c.RequestID != "" {
		kv = append(kv, "request_id", c.RequestID)
	}
	return kv
}
