package logging

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// setupTestDir points the logger at a temporary directory and resets the
// package globals, restoring them on cleanup.
func setupTestDir(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()

	origLogDir := logDir
	origInitErr := initErr
	origRunID := runID

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	initOnce.Do(func() { logDir = tempDir }) // mark initialized without touching the home dir
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		runID = origRunID
		runIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test-component")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "test-component" {
		t.Errorf("Expected component 'test-component', got %q", logger.component)
	}

	if logger.runID == "" {
		t.Error("Expected non-empty run ID")
	}

	if logger.logPath == "" {
		t.Error("Expected non-empty log path")
	}

	if _, err := os.Stat(logger.logPath); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.logPath)
	}
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Debugf("Debug message")
	logger.Infof("Info message")
	logger.Warnf("Warning message %d", 123)
	logger.Errorf("Error message")

	// Give file system time to flush
	time.Sleep(50 * time.Millisecond)

	content, err := os.ReadFile(logger.logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	expectedPatterns := []string{
		"[test] [DEBUG] Debug message",
		"[test] [INFO] Info message",
		"[test] [WARN] Warning message 123",
		"[test] [ERROR] Error message",
	}

	for _, pattern := range expectedPatterns {
		if !strings.Contains(logContent, pattern) {
			t.Errorf("Log content missing expected pattern: %q\nContent:\n%s", pattern, logContent)
		}
	}
}

func TestLoggerSharedFile(t *testing.T) {
	setupTestDir(t)

	first, err := NewLogger("component-a")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer first.Close()

	second, err := NewLogger("component-b")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer second.Close()

	// All components of one run share a log file
	if first.LogPath() != second.LogPath() {
		t.Errorf("Expected shared log file, got %q and %q", first.LogPath(), second.LogPath())
	}

	if first.RunID() != second.RunID() {
		t.Error("Expected both loggers to share the run ID")
	}
}

func TestLoggerCloseIsIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}
