package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "action",
		},
	})
	return l
}

// Setup tees log lines to stdout and an append-only file. An empty path keeps stdout only.
func Setup(logFile string) (io.Closer, error) {
	if logFile == "" {
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", logFile)
	}
	std.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetOutput redirects all log lines; tests use it to capture entries.
func SetOutput(w io.Writer) { std.SetOutput(w) }

func Writer() io.Writer { return std.Out }

func entry(c *fiber.Ctx, kind string, err error, fields map[string]any) *logrus.Entry {
	f := logrus.Fields{"kind": kind}
	if c != nil {
		f["ip"] = c.IP()
		f["method"] = c.Method()
		f["path"] = c.Path()
		f["status"] = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			f["req_id"] = rid
		}
		if sid := c.Cookies("sid"); sid != "" {
			f["sid"] = sid
		}
	}
	if err != nil {
		f["err"] = err.Error()
	}
	if len(fields) > 0 {
		f["fields"] = fields
	}
	return std.WithFields(f)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, "info", nil, fields).Info(action)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, "audit", nil, fields).Info(action)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, "security", nil, fields).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	entry(c, "error", err, fields).Error(action)
}
