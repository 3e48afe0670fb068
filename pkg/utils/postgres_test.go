package utils

import (
	"testing"
	"time"
)

func TestPostgresPoolDefaults(t *testing.T) {
	c := PostgresPoolConfig{}.withDefaults()
	if c.MaxOpenConns <= 0 || c.MaxIdleConns <= 0 {
		t.Fatalf("expected positive pool sizes, got %+v", c)
	}
	if c.PingTimeout != 5*time.Second {
		t.Fatalf("expected 5s ping timeout default, got %v", c.PingTimeout)
	}
}
