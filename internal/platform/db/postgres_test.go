package db

import (
	"database/sql"
	"testing"
	"time"
)

func TestPoolConfigDefaults(t *testing.T) {
	got := PoolConfig{}.withDefaults()
	want := PoolConfig{
		MaxOpenConns:    defaultMaxOpenConns,
		MaxIdleConns:    defaultMaxIdleConns,
		ConnMaxLifetime: defaultConnMaxLifetime,
		ConnectTimeout:  defaultConnectTimeout,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPoolConfigCapsIdleAtOpen(t *testing.T) {
	got := PoolConfig{MaxOpenConns: 3, MaxIdleConns: 8, ConnMaxLifetime: time.Minute}.withDefaults()
	if got.MaxOpenConns != 3 || got.MaxIdleConns != 3 || got.ConnMaxLifetime != time.Minute {
		t.Fatalf("unexpected pool: %+v", got)
	}
}

func TestPoolConfigApply(t *testing.T) {
	// sql.Open does not dial.
	sqlDB, err := sql.Open("pgx", "postgres://localhost/elect")
	if err != nil {
		t.Skipf("pgx driver not registered: %v", err)
	}
	defer sqlDB.Close()
	PoolConfig{MaxOpenConns: 4}.withDefaults().apply(sqlDB)
	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 4 {
		t.Fatalf("expected 4 max open connections, got %d", stats.MaxOpenConnections)
	}
}

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect("", PoolConfig{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestCloseNilHandle(t *testing.T) {
	var p *Postgres
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil close, got %v", err)
	}
}
