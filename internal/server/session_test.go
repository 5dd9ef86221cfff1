package server

import (
	"testing"
	"time"

	"github.com/crolens/cro-report/internal/report"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore(time.Hour)
	rep := &report.AnalysisReport{}

	sess := store.Put(rep, "<html></html>")
	if sess.ID == "" {
		t.Fatal("session has no id")
	}

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatal("session not found")
	}
	if got.Report != rep || got.HTML != "<html></html>" {
		t.Errorf("stored session = %+v", got)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("Get returned a session for an unknown id")
	}
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(30 * time.Minute)
	now := time.Unix(1000000, 0)
	store.now = func() time.Time { return now }

	sess := store.Put(&report.AnalysisReport{}, "")

	now = now.Add(29 * time.Minute)
	if _, ok := store.Get(sess.ID); !ok {
		t.Error("session expired early")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(sess.ID); ok {
		t.Error("session outlived its ttl")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d after expiry, want 0", store.Len())
	}
}

func TestStore_PutSweepsExpired(t *testing.T) {
	store := NewStore(10 * time.Minute)
	now := time.Unix(1000000, 0)
	store.now = func() time.Time { return now }

	old := store.Put(&report.AnalysisReport{}, "")
	now = now.Add(11 * time.Minute)
	fresh := store.Put(&report.AnalysisReport{}, "")

	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1 after sweep", store.Len())
	}
	if _, ok := store.Get(old.ID); ok {
		t.Error("expired session survived the sweep")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("fresh session was swept")
	}
}

func TestSession_BusyFlag(t *testing.T) {
	sess := &Session{}

	if !sess.tryAcquire() {
		t.Fatal("first acquire failed")
	}
	if sess.tryAcquire() {
		t.Fatal("second acquire succeeded while busy")
	}
	sess.release()
	if !sess.tryAcquire() {
		t.Fatal("acquire after release failed")
	}
}
