package monitor

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func TestRefreshReportsHealthyStore(t *testing.T) {
	m := New(stubPinger{}, "bolt", time.Minute, nil)
	m.refresh()

	status := m.GetStatus()
	if !status.Store {
		t.Error("healthy pinger must report online")
	}
	if status.Driver != "bolt" {
		t.Errorf("unexpected driver %q", status.Driver)
	}
	if status.LastCheck.IsZero() {
		t.Error("refresh must stamp the check time")
	}
	if !m.IsOnline() {
		t.Error("IsOnline must mirror the store flag")
	}
}

func TestRefreshReportsFailure(t *testing.T) {
	m := New(stubPinger{err: errors.New("down")}, "mongo", time.Minute, nil)
	m.refresh()

	if m.IsOnline() {
		t.Error("failing pinger must report offline")
	}
}

func TestNilStoreIsOffline(t *testing.T) {
	m := New(nil, "mongo", time.Minute, nil)
	m.refresh()
	if m.IsOnline() {
		t.Error("nil store must report offline")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m := New(stubPinger{}, "bolt", time.Minute, nil)
	m.Start()
	m.Stop()
	m.Stop()
}
