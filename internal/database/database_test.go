package database

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm/logger"

	"github.com/autoparts-eu/brakecat/internal/config"
)

func TestGormLogLevel(t *testing.T) {
	if got := gormLogLevel(true); got != logger.Info {
		t.Errorf("gormLogLevel(true) = %v, want Info", got)
	}
	if got := gormLogLevel(false); got != logger.Warn {
		t.Errorf("gormLogLevel(false) = %v, want Warn", got)
	}
}

func TestBuildDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		Username: "catalogue",
		Database: "brakecat",
	}
	got := buildDSN(cfg, "secret")
	want := "host=db.internal port=5432 user=catalogue password=secret dbname=brakecat sslmode=disable"
	if got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestReadPostmasterPID(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "postmaster.pid")
	if err := os.WriteFile(path, []byte("4242\n/some/data/dir\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pid, ok := readPostmasterPID(path)
	if !ok || pid != 4242 {
		t.Errorf("pid = %d, ok = %v, want 4242", pid, ok)
	}

	if _, ok := readPostmasterPID(filepath.Join(dir, "missing.pid")); ok {
		t.Error("a missing pid file must read as clean state")
	}

	garbled := filepath.Join(dir, "garbled.pid")
	if err := os.WriteFile(garbled, []byte("not-a-pid\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := readPostmasterPID(garbled); ok {
		t.Error("an unparsable pid file must read as clean state")
	}
}

func TestIsPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	if !isPortInUse(port) {
		t.Errorf("port %d has a listener but reads as free", port)
	}
	ln.Close()
	if isPortInUse(port) {
		t.Errorf("port %d was released but reads as in use", port)
	}
}
