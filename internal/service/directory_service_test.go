package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	gets    int
	sets    int
	fail    bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) GetString(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.fail {
		return "", errors.New("cache unavailable")
	}
	return f.entries[key], nil
}

func (f *fakeCache) SetString(_ context.Context, key, val string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.fail {
		return errors.New("cache unavailable")
	}
	f.entries[key] = val
	return nil
}

func TestListDoctors_ReadThroughCache(t *testing.T) {
	doctors := newFakeDoctorRepo()
	seedDoctor(t, doctors, "Dr. Adams", "Cardiology")
	seedDoctor(t, doctors, "Dr. Baker", "Dermatology")
	cache := newFakeCache()

	svc := NewDirectoryService(doctors, cache, time.Minute, zap.NewNop())

	first, err := svc.ListDoctors(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(first))
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.sets)
	}

	// second call served from cache, no further writes
	second, err := svc.ListDoctors(context.Background(), "")
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 doctors from cache, got %d", len(second))
	}
	if cache.sets != 1 {
		t.Fatalf("expected no extra cache write, got %d", cache.sets)
	}
}

func TestListDoctors_FilterBySpecialty(t *testing.T) {
	doctors := newFakeDoctorRepo()
	seedDoctor(t, doctors, "Dr. Adams", "Cardiology")
	seedDoctor(t, doctors, "Dr. Baker", "Dermatology")

	svc := NewDirectoryService(doctors, nil, 0, zap.NewNop())

	result, err := svc.ListDoctors(context.Background(), "Cardiology")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(result))
	}
	if result[0].FullName != "Dr. Adams" {
		t.Fatalf("expected Dr. Adams, got %q", result[0].FullName)
	}
}

func TestListDoctors_CacheFailureDegradesToStore(t *testing.T) {
	doctors := newFakeDoctorRepo()
	seedDoctor(t, doctors, "Dr. Adams", "Cardiology")
	cache := newFakeCache()
	cache.fail = true

	svc := NewDirectoryService(doctors, cache, time.Minute, zap.NewNop())

	result, err := svc.ListDoctors(context.Background(), "")
	if err != nil {
		t.Fatalf("expected store read despite cache failure: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(result))
	}
}

func TestGetDoctor(t *testing.T) {
	doctors := newFakeDoctorRepo()
	doctor := seedDoctor(t, doctors, "Dr. Adams", "Cardiology")

	svc := NewDirectoryService(doctors, nil, 0, zap.NewNop())

	got, err := svc.GetDoctor(context.Background(), doctor.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Dr. Adams" {
		t.Fatalf("expected Dr. Adams, got %q", got.FullName)
	}

	_, err = svc.GetDoctor(context.Background(), "missing")
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}
