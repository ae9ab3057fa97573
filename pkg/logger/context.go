package logger

import "context"

type logKey struct{}

func ContextWithLog(ctx context.Context, l *Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, logKey{}, l)
}

func LogFromContext(ctx context.Context) *Logger {
	val := ctx.Value(logKey{})
	if l, ok := val.(*Logger); ok {
		return l
	}
	return defaultLogger
}
