package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := &AppLogger{level: LevelWarn}
	logger.SetOutput(&buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be logged at warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be logged at warn level")
	}
}

func TestAppLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := &AppLogger{level: LevelDebug}
	logger.SetOutput(&buf)

	logger.Info("hello %s, %d apps", "world", 3)

	output := buf.String()
	if !strings.Contains(output, "[INFO]") {
		t.Errorf("output missing level tag: %q", output)
	}
	if !strings.Contains(output, "hello world, 3 apps") {
		t.Errorf("output missing formatted message: %q", output)
	}
}

func TestAppLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := &AppLogger{level: LevelError}
	logger.SetOutput(&buf)

	logger.Info("dropped")
	logger.SetLevel(LevelInfo)
	logger.Info("kept")

	output := buf.String()
	if strings.Contains(output, "dropped") {
		t.Error("message logged below the configured level")
	}
	if !strings.Contains(output, "kept") {
		t.Error("message missing after level lowered")
	}
}

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.log")
	dst := filepath.Join(dir, "source.log.gz")

	content := strings.Repeat("log line\n", 100)
	if err := os.WriteFile(src, []byte(content), 0600); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	if err := compressFile(src, dst); err != nil {
		t.Fatalf("compressFile() error = %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("compressed file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("compressed file is empty")
	}
	if info.Size() >= int64(len(content)) {
		t.Errorf("compressed size %d not smaller than source %d", info.Size(), len(content))
	}
}

func TestAppLogger_CleanupOldBackups(t *testing.T) {
	dir := t.TempDir()

	// Create more backups than maxBackups allows.
	for i := 0; i < 8; i++ {
		name := filepath.Join(dir, LogFileName+".2024010"+string(rune('0'+i))+".gz")
		if err := os.WriteFile(name, []byte("x"), 0600); err != nil {
			t.Fatalf("creating backup: %v", err)
		}
	}

	logger := &AppLogger{maxBackups: 3}
	logger.cleanupOldBackups(dir)

	matches, err := filepath.Glob(filepath.Join(dir, LogFileName+".*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("backups remaining = %d, want 3", len(matches))
	}
}

func TestIsSymlink(t *testing.T) {
	dir := t.TempDir()

	regular := filepath.Join(dir, "regular")
	if err := os.WriteFile(regular, []byte("x"), 0600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if isSymlink(regular) {
		t.Error("regular file reported as symlink")
	}

	link := filepath.Join(dir, "link")
	if err := os.Symlink(regular, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if !isSymlink(link) {
		t.Error("symlink not detected")
	}

	if isSymlink(filepath.Join(dir, "missing")) {
		t.Error("missing path reported as symlink")
	}
}
