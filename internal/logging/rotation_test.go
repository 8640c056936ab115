package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// countLines totals the newline-terminated lines in path and its backups.
func countLines(t *testing.T, path string, backups int) int {
	t.Helper()
	total := 0
	for i := 0; i <= backups; i++ {
		p := path
		if i > 0 {
			p = fmt.Sprintf("%s.%d", path, i)
		}
		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		total += strings.Count(string(content), "\n")
	}
	return total
}

func TestNewRotatingWriter(t *testing.T) {
	t.Run("creates file and parent directories", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "nested", "dir", "egypt.log")

		rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		defer func() { _ = rw.Close() }()

		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", logPath)
		}
	})

	t.Run("appends to existing file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "egypt.log")
		if err := os.WriteFile(logPath, []byte("earlier run\n"), 0644); err != nil {
			t.Fatalf("failed to seed log file: %v", err)
		}

		rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		if rw.Size() != int64(len("earlier run\n")) {
			t.Errorf("Size() = %d, want the existing file size", rw.Size())
		}
		_, _ = rw.Write([]byte("this run\n"))
		_ = rw.Close()

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if string(content) != "earlier run\nthis run\n" {
			t.Errorf("content = %q", content)
		}
	})
}

func TestRotatingWriter_Rotation(t *testing.T) {
	line := []byte("line decomposed into unit fractions\n")

	t.Run("rotates past the size limit", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "egypt.log")
		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 3})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		rw.maxBytes = 100

		for range 5 {
			if _, err := rw.Write(line); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}
		if rw.Size() > 100 {
			t.Errorf("live file is %d bytes, limit 100", rw.Size())
		}
		_ = rw.Close()

		if _, err := os.Stat(logPath + ".1"); err != nil {
			t.Errorf("backup .1 missing: %v", err)
		}
		if got := countLines(t, logPath, 3); got != 5 {
			t.Errorf("kept %d lines, want 5", got)
		}
	})

	t.Run("keeps at most MaxBackups files", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "egypt.log")
		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 2})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		rw.maxBytes = int64(len(line))

		for range 10 {
			_, _ = rw.Write(line)
		}
		_ = rw.Close()

		for _, suffix := range []string{"", ".1", ".2"} {
			if _, err := os.Stat(logPath + suffix); err != nil {
				t.Errorf("%s missing: %v", filepath.Base(logPath+suffix), err)
			}
		}
		if _, err := os.Stat(logPath + ".3"); err == nil {
			t.Error("backup .3 exists, want at most 2 backups")
		}
	})

	t.Run("no backups truncates in place", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "egypt.log")
		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 0})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		rw.maxBytes = int64(len(line))

		for range 4 {
			_, _ = rw.Write(line)
		}
		_ = rw.Close()

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if string(content) != string(line) {
			t.Errorf("content = %q, want only the last line", content)
		}
		if _, err := os.Stat(logPath + ".1"); err == nil {
			t.Error("backup .1 exists with MaxBackups 0")
		}
	})

	t.Run("zero size disables rotation", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "egypt.log")
		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 3})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		for range 100 {
			_, _ = rw.Write(line)
		}
		_ = rw.Close()

		if _, err := os.Stat(logPath + ".1"); err == nil {
			t.Error("backup exists with rotation disabled")
		}
	})

	t.Run("oversized entry lands in an empty file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "egypt.log")
		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 1})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		rw.maxBytes = 4

		if _, err := rw.Write(line); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		_ = rw.Close()

		if _, err := os.Stat(logPath + ".1"); err == nil {
			t.Error("an empty file was rotated")
		}
	})
}

func TestRotatingWriter_Compress(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "egypt.log")
	rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 2, Compress: true})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.maxBytes = 40

	_, _ = rw.Write([]byte("first entry before rotation\n"))
	_, _ = rw.Write([]byte("second entry after rotation\n"))
	_ = rw.Close()

	if _, err := os.Stat(logPath + ".1"); err == nil {
		t.Error("uncompressed backup left behind")
	}

	f, err := os.Open(logPath + ".1.gz")
	if err != nil {
		t.Fatalf("compressed backup missing: %v", err)
	}
	defer func() { _ = f.Close() }()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader failed: %v", err)
	}
	content, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read compressed backup: %v", err)
	}
	if string(content) != "first entry before rotation\n" {
		t.Errorf("compressed backup = %q", content)
	}
}

func TestRotatingWriter_Concurrency(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "egypt.log")
	rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 100})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.maxBytes = 2000

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 50 {
				if _, err := rw.Write([]byte("concurrent write\n")); err != nil {
					t.Errorf("goroutine %d write %d failed: %v", id, j, err)
				}
			}
		}(i)
	}
	wg.Wait()
	_ = rw.Close()

	if got := countLines(t, logPath, 100); got != 500 {
		t.Errorf("kept %d lines, want 500", got)
	}
}

func TestRotatingWriter_Close(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "egypt.log")
	rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}

	_, _ = rw.Write([]byte("entry\n"))
	if err := rw.Sync(); err != nil {
		t.Errorf("Sync failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := rw.Write([]byte("late\n")); err == nil {
		t.Error("Write after Close succeeded")
	}
}

func TestNewLogger_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "egypt.log")
	logger, err := NewLogger(logPath, LevelDebug, RotationConfig{MaxBackups: 3})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.rotation.maxBytes = 300

	child := logger.WithLine(7).WithStage("dedupe")
	if child.rotation != logger.rotation {
		t.Error("child logger does not share the parent's log file")
	}
	for i := range 20 {
		child.Debug("pass complete", "terms", i)
	}
	_ = logger.Close()

	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("backup .1 missing after many entries: %v", err)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	for _, entry := range readEntries(t, content) {
		if entry["stage"] != "dedupe" {
			t.Errorf("entry = %v, want stage dedupe", entry)
		}
	}
}

func TestDefaultRotationConfig(t *testing.T) {
	cfg := DefaultRotationConfig()
	if cfg.MaxSizeMB != 10 || cfg.MaxBackups != 3 || cfg.Compress {
		t.Errorf("DefaultRotationConfig() = %+v", cfg)
	}
}
