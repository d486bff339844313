package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance. It discards everything until Initialize runs.
var Log = zap.NewNop()

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// Initialize sets up the logger with the specified environment
func Initialize(env string) *zap.Logger {
	return InitializeWithWriter(env, nil)
}

// InitializeWithWriter sets up the logger with the specified environment and optional CloudWatch writer
func InitializeWithWriter(env string, cloudWatchWriter io.Writer) *zap.Logger {
	config := newConfig(env)

	if cloudWatchWriter != nil {
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(config.EncoderConfig),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(config.Level.Level()),
		)

		// CloudWatch always gets JSON, and never the color codes.
		cwEncoderConfig := config.EncoderConfig
		cwEncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cwCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(cwEncoderConfig),
			zapcore.AddSync(cloudWatchWriter),
			zap.NewAtomicLevelAt(config.Level.Level()),
		)

		Log = zap.New(zapcore.NewTee(consoleCore, cwCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		return Log
	}

	l, err := config.Build()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	Log = l
	return Log
}

func newConfig(env string) zap.Config {
	if env == "production" {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return config
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return config
}

// Error logs an error with request ID and additional context
func Error(ctx context.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("request_id", getRequestID(ctx)))
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Log.Error(msg, fields...)
}

// Info logs an info message with request ID and additional context
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("request_id", getRequestID(ctx)))
	Log.Info(msg, fields...)
}

// Warn logs a warning message with request ID and additional context
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("request_id", getRequestID(ctx)))
	Log.Warn(msg, fields...)
}

type ctxKey struct{}

// WithRequestID returns a context carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// getRequestID extracts request ID from context
func getRequestID(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		if requestID := ginCtx.GetString(RequestIDKey); requestID != "" {
			return requestID
		}
		ctx = ginCtx.Request.Context()
	}
	if requestID, ok := ctx.Value(ctxKey{}).(string); ok {
		return requestID
	}
	return "unknown"
}
