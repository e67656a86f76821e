// Package logger builds the searchbar JSON logger (zap behind logr) and
// carries it through contexts.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/searchbar/pkg/settings"
)

type loggerContextKey struct{}

// Structured field names.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
	QueryKey       = "query"
	SeqKey         = "seq"
	EndpointKey    = "endpoint"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr

	zapRoot *zap.Logger
	root    *logr.Logger

	discard = logr.Discard()
)

// SetOutput redirects the log stream. The interactive search bar owns the
// terminal, so cmd points this at a file or io.Discard. It only affects a
// logger that has not been built yet.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	output = w
}

// New builds a JSON logger writing to w at the given zap level
// (-1 debug, 0 info, 1 warn). Every entry carries the build metadata.
func New(w io.Writer, level int8) (*zap.Logger, logr.Logger) {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.TimeKey = TimeStampKey
	enc.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	).With(buildFields())

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
	return zl, zapr.NewLogger(zl)
}

func buildFields() []zapcore.Field {
	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	v := settings.VersionInformation
	return []zapcore.Field{
		zap.String(CommitKey, v.Commit),
		zap.String(VersionKey, v.BuildVersion),
		zap.String(BuildTimeKey, v.BuildTime),
		zap.String(GoVersionKey, goVersion),
	}
}

// Get returns the process-wide logger, building it on first use with the
// current output and logLevel. Later calls ignore logLevel.
func Get(logLevel int8) *logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		zl, l := New(output, logLevel)
		zapRoot, root = zl, &l
	}
	return root
}

// WithLogger attaches log to ctx. A context already carrying the same
// logger is returned unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if cur, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && cur == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the context logger, else the process-wide one, else a
// logger that discards everything.
func FromContext(ctx context.Context) *logr.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && log != nil {
			return log
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return root
	}
	return &discard
}

// WithValues returns a copy of lgr with extra key/value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	if lgr == nil {
		lgr = &discard
	}
	l := lgr.WithValues(keysAndValues...)
	return &l
}

// Sync flushes buffered entries. main calls it before exiting.
func Sync() {
	mu.Lock()
	zl := zapRoot
	mu.Unlock()
	if zl == nil {
		return
	}
	if err := zl.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError matches the errors fsync returns on pipes and TTYs.
// Windows consoles report ERROR_INVALID_HANDLE inside *os.PathError.
func isIgnorableSyncError(err error) bool {
	for _, errno := range []syscall.Errno{syscall.ENOTTY, syscall.EINVAL, syscall.EIO, syscall.EBADF} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
