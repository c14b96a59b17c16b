package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}

	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink failed: %v", err)
	}
	realGot, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve got dir symlink failed: %v", err)
	}
	if expectedDir := filepath.Join(realTmpDir, defaultLogDirName); realGot != expectedDir {
		t.Fatalf("unexpected log dir: got=%s expected=%s", realGot, expectedDir)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Info("release-log-test")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), "release-log-test") {
		t.Fatalf("expected log content to contain message, got=%s", string(content))
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	sugar := zap.New(core).Sugar()
	return &GormLogger{
		level:         level,
		slowThreshold: 50 * time.Millisecond,
		base:          func() *zap.SugaredLogger { return sugar },
	}, logs
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products WHERE id = 1", 0
	}, gorm.ErrRecordNotFound)

	if logs.Len() != 0 {
		t.Fatalf("record not found should not be logged, got %d entries", logs.Len())
	}
}

func TestGormLoggerReportsErrorsAndSlowQueries(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO categories", 0
	}, errors.New("UNIQUE constraint failed: categories.slug"))
	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM orders", 3
	}, nil)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	if got := logs.FilterMessage("gorm_query_failed").Len(); got != 1 {
		t.Fatalf("expected 1 failed query entry, got %d", got)
	}
	if got := logs.FilterMessage("gorm_query_slow").Len(); got != 1 {
		t.Fatalf("expected 1 slow query entry, got %d", got)
	}
	if got := logs.FilterMessage("gorm_query").Len(); got != 0 {
		t.Fatalf("warn level should not trace normal queries, got %d", got)
	}
}

func TestGormLoggerLogModeReturnsCopy(t *testing.T) {
	l := NewGormLogger("release", 0)
	if l.level != gormlogger.Warn {
		t.Fatalf("release mode should default to warn, got %v", l.level)
	}
	silent := l.LogMode(gormlogger.Silent).(*GormLogger)
	if silent.level != gormlogger.Silent {
		t.Fatalf("expected silent level, got %v", silent.level)
	}
	if l.level != gormlogger.Warn {
		t.Fatalf("LogMode must not mutate the receiver")
	}
	if NewGormLogger("debug", 0).level != gormlogger.Info {
		t.Fatalf("debug mode should trace all queries")
	}
}
