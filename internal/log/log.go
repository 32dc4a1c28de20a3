package log

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(New(os.Stdout, "info"))
}

// New builds a JSON logger writing to w at the given level.
func New(w io.Writer, level string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "action"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core)
}

// SetLogger swaps the process logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

func L() *zap.Logger { return current.Load() }

func requestFields(c *fiber.Ctx) []zap.Field {
	if c == nil {
		return nil
	}
	fs := []zap.Field{
		zap.String("ip", c.IP()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		fs = append(fs, zap.String("req_id", rid))
	}
	return fs
}

func write(level zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	fs := requestFields(c)
	if kind != "" {
		fs = append(fs, zap.String("kind", kind))
	}
	if err != nil {
		fs = append(fs, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		fs = append(fs, zap.Any("fields", fields))
	}
	if ce := L().Check(level, action); ce != nil {
		ce.Write(fs...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "", c, action, err, fields)
}
