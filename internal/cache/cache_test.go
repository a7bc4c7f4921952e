package cache

import (
	"testing"
	"time"
)

func TestKey_DeterministicAndPrefixed(t *testing.T) {
	a := Key("https://example.com/article")
	b := Key("https://example.com/article")
	c := Key("https://example.com/other")

	if a != b {
		t.Error("same input should produce the same key")
	}
	if a == c {
		t.Error("different inputs should produce different keys")
	}
	if len(a) < len("newscred:v1:")+64 {
		t.Errorf("key %q looks truncated", a)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("key should be gone after Delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("fresh", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get("fresh"); !found || string(val) != "data" {
		t.Errorf("Get fresh = (%q, %v)", val, found)
	}

	if err := c.Set("stale", []byte("old"), -time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("expired entry should not be returned")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Drop the memory layer; the disk layer should still serve and re-warm it
	_ = c.memory.Clear()
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Fatalf("disk fallback = (%q, %v)", val, found)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("disk hit should be promoted to memory")
	}
}
