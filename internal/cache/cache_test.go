package cache

import (
	"testing"
	"time"
)

func TestKey_Distinguishing(t *testing.T) {
	base := Key("https://example.com/a", "", false)

	if Key("https://example.com/a", "", false) != base {
		t.Error("same input must produce the same key")
	}
	if Key("https://example.com/b", "", false) == base {
		t.Error("different URL must change the key")
	}
	if Key("https://example.com/a", "", true) == base {
		t.Error("pro flag must change the key")
	}
	if Key("ab", "c", false) == Key("a", "bc", false) {
		t.Error("url/text boundary must be unambiguous")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("https://example.com", "", false)

	if _, found := c.Get(key); found {
		t.Error("expected miss on empty cache")
	}
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "payload" {
		t.Errorf("expected hit with payload, got (%q, %v)", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("https://example.com", "", false)

	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "payload" {
		t.Errorf("expected hit with payload, got (%q, %v)", val, found)
	}

	// An already-expired entry must be treated as a miss.
	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set expired: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss for expired entry")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	key := Key("https://example.com", "", false)

	// Seed only the disk layer, simulating a previous run.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set(key, []byte("persisted"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := layered.Get(key)
	if !found || string(val) != "persisted" {
		t.Fatalf("expected disk hit, got (%q, %v)", val, found)
	}

	// Wipe the disk: the promoted copy must still serve from memory.
	if err := disk.Clear(); err != nil {
		t.Fatalf("clear disk: %v", err)
	}
	val, found = layered.Get(key)
	if !found || string(val) != "persisted" {
		t.Errorf("expected promoted memory hit, got (%q, %v)", val, found)
	}
}
