package database_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/soilscan/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	c := database.Config{Name: "soilscan", User: "soil"}
	if err := c.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if c.Host != "localhost" || c.Port != 5432 || c.SSLMode != "disable" {
		t.Errorf("connection defaults = %s:%d %s", c.Host, c.Port, c.SSLMode)
	}
	if c.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("conn timeout = %v", c.ConnTimeoutDuration())
	}
	if c.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("conn max lifetime = %v", c.ConnMaxLifetimeDuration())
	}
}

func TestFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_NAME", "scans")
	t.Setenv("TEST_DB_USER", "svc")

	var c database.Config
	err := c.Finalize(&database.Env{
		Host: "TEST_DB_HOST",
		Port: "TEST_DB_PORT",
		Name: "TEST_DB_NAME",
		User: "TEST_DB_USER",
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if c.Host != "db.internal" || c.Port != 6543 || c.Name != "scans" || c.User != "svc" {
		t.Errorf("env not applied: %+v", c)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "u"}, "name required"},
		{"missing user", database.Config{Name: "n"}, "user required"},
		{"dsn skips discrete fields", database.Config{DSN: "postgres://u@h/n"}, ""},
		{"bad timeout", database.Config{Name: "n", User: "u", ConnTimeout: "soon"}, "conn_timeout"},
		{"idle exceeds open", database.Config{Name: "n", User: "u", MaxOpenConns: 2, MaxIdleConns: 4}, "max_idle_conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Finalize: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := database.Config{Host: "localhost", Port: 5432, Name: "soilscan", User: "soil"}
	base.Merge(&database.Config{Host: "prod-db", Password: "secret"})

	if base.Host != "prod-db" || base.Password != "secret" {
		t.Errorf("overlay not applied: %+v", base)
	}
	if base.Port != 5432 || base.Name != "soilscan" {
		t.Errorf("zero overlay fields overwrote base: %+v", base)
	}
}

func TestConnString(t *testing.T) {
	t.Run("discrete fields", func(t *testing.T) {
		c := database.Config{Host: "db", Port: 5432, Name: "soilscan", User: "soil", Password: "p@ss", SSLMode: "require"}
		got := c.ConnString()
		want := "postgres://soil:p%40ss@db:5432/soilscan?sslmode=require"
		if got != want {
			t.Errorf("ConnString() = %q, want %q", got, want)
		}
	})

	t.Run("dsn wins", func(t *testing.T) {
		c := database.Config{DSN: "postgres://x@y/z", Host: "ignored"}
		if got := c.ConnString(); got != "postgres://x@y/z" {
			t.Errorf("ConnString() = %q", got)
		}
	})
}
