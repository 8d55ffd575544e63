package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"tasktrack/config"
	deliverycontext "tasktrack/internal/delivery/context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormLogger(debug bool) (*bytes.Buffer, logger.Interface) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return &buf, newGormSlogLogger(base, cfg)
}

func sqlFn() (string, int64) {
	return `SELECT * FROM "tasks"`, 2
}

func TestGormSlogLogger_Trace(t *testing.T) {
	testCases := map[string]struct {
		debug     bool
		elapsed   time.Duration
		err       error
		wantLevel string
		wantMsg   string
	}{
		"record not found is silent": {err: gorm.ErrRecordNotFound},
		"fast query without debug":   {elapsed: time.Millisecond},
		"fast query with debug": {
			debug: true, elapsed: time.Millisecond, wantLevel: "DEBUG", wantMsg: "GORM query",
		},
		"slow query": {
			elapsed: time.Second, wantLevel: "WARN", wantMsg: "GORM slow query",
		},
		"duplicate key": {
			err: &pgconn.PgError{Code: pgUniqueViolation}, wantLevel: "WARN", wantMsg: "GORM unique constraint violation",
		},
		"other failure": {
			err: errors.New("connection reset"), wantLevel: "ERROR", wantMsg: "GORM query failed",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			buf, l := newTestGormLogger(tc.debug)
			l.Trace(context.Background(), time.Now().Add(-tc.elapsed), sqlFn, tc.err)

			if tc.wantMsg == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), `"level":"`+tc.wantLevel+`"`)
			assert.Contains(t, buf.String(), `"msg":"`+tc.wantMsg+`"`)
			assert.Contains(t, buf.String(), `"rows":2`)
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var reqBuf bytes.Buffer
	reqLogger := slog.New(slog.NewJSONHandler(&reqBuf, nil)).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	buf, l := newTestGormLogger(false)
	l.Warn(ctx, "pool %s", "saturated")

	assert.Empty(t, buf.String())
	assert.Contains(t, reqBuf.String(), `"request_id":"req-42"`)
	assert.Contains(t, reqBuf.String(), "pool saturated")
}

func TestGormSlogLogger_LogModeSilent(t *testing.T) {
	buf, l := newTestGormLogger(true)
	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
	l.LogMode(logger.Silent).Error(context.Background(), "boom")

	assert.Empty(t, buf.String())
}
