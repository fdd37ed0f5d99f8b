package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Port != "5000" {
		t.Errorf("default port must be 5000, got %s", cfg.HTTP.Port)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017/todolist" {
		t.Errorf("unexpected default mongo uri %s", cfg.Mongo.URI)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Errorf("default driver must be mongo, got %s", cfg.Store.Driver)
	}
	if cfg.Address() != "0.0.0.0:5000" {
		t.Errorf("unexpected address %s", cfg.Address())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("SERVER_READ_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Port != "8081" {
		t.Errorf("PORT override ignored, got %s", cfg.HTTP.Port)
	}
	if cfg.Store.Driver != DriverBolt {
		t.Errorf("driver override ignored, got %s", cfg.Store.Driver)
	}
	if cfg.Context.RequestTimeout != 30*time.Second {
		t.Errorf("bare-second duration not parsed, got %v", cfg.Context.RequestTimeout)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Errorf("duration string not parsed, got %v", cfg.HTTP.ReadTimeout)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")
	if _, err := Load(); err == nil {
		t.Fatal("unknown STORE_DRIVER must fail")
	}
}
