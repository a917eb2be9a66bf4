package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer) *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(w, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithAccount adds the wallet account to logger context
func (l *Logger) WithAccount(account string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("account", account)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Chain logging methods

// LogChainCall logs a contract read
func (l *Logger) LogChainCall(ctx context.Context, method string, duration time.Duration, err error) {
	if err != nil {
		l.Logger.ErrorContext(ctx,
			"Chain Call Error",
			slog.String("method", method),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Logger.DebugContext(ctx,
		"Chain Call",
		slog.String("method", method),
		slog.Duration("duration", duration),
	)
}

// LogTransactionSubmitted logs a signed transaction handed to the RPC node
func (l *Logger) LogTransactionSubmitted(ctx context.Context, method, txHash string) {
	l.Logger.InfoContext(ctx,
		"Transaction Submitted",
		slog.String("method", method),
		slog.String("tx_hash", txHash),
	)
}

// Business logic logging methods

// LogSettlement logs a completed mint
func (l *Logger) LogSettlement(ctx context.Context, eventID, seatNumber uint64, txHash string, tokenID *uint64) {
	attrs := []any{
		slog.Uint64("event_id", eventID),
		slog.Uint64("seat_number", seatNumber),
		slog.String("tx_hash", txHash),
	}
	if tokenID != nil {
		attrs = append(attrs, slog.Uint64("token_id", *tokenID))
	}
	l.Logger.InfoContext(ctx, "Ticket Minted", attrs...)
}

// LogSettlementFailed logs a mint that did not complete
func (l *Logger) LogSettlementFailed(ctx context.Context, eventID, seatNumber uint64, err error) {
	l.Logger.ErrorContext(ctx,
		"Settlement Failed",
		slog.Uint64("event_id", eventID),
		slog.Uint64("seat_number", seatNumber),
		slog.String("error", err.Error()),
	)
}

// LogEventCreated logs an organizer event confirmed on-chain
func (l *Logger) LogEventCreated(ctx context.Context, eventID uint64, organizer string) {
	l.Logger.InfoContext(ctx,
		"Event Created",
		slog.Uint64("event_id", eventID),
		slog.String("organizer", organizer),
	)
}

// Security logging methods

// LogAuthSuccess logs a verified wallet sign-in
func (l *Logger) LogAuthSuccess(ctx context.Context, account string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("account", account),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
