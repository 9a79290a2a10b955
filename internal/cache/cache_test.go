package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key([]byte(`{"classes": []}`))
	b := Key([]byte(`{"classes": []}`))
	if a != b {
		t.Errorf("same input produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "hierlint:v1:") {
		t.Errorf("key %q missing version prefix", a)
	}
}

func TestKey_SensitiveToInput(t *testing.T) {
	a := Key([]byte(`{"classes": []}`))
	b := Key([]byte(`{"classes": [ ]}`))
	if a == b {
		t.Error("different input bytes produced the same key")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	key := Key([]byte("unit"))
	value := []byte(`{"unit": "shapes"}`)

	if _, found := store.Get(key); found {
		t.Error("Get on empty store reported a hit")
	}

	if err := store.Set(key, value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := store.Get(key)
	if !found || !bytes.Equal(got, value) {
		t.Errorf("Get = %q, %v; want stored value", got, found)
	}

	if err := store.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := store.Get(key); found {
		t.Error("Get after Delete reported a hit")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(10*time.Millisecond, time.Minute)
	key := Key([]byte("unit"))

	if err := store.Set(key, []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, found := store.Get(key); found {
		t.Error("expired entry still served")
	}
}

func TestDiskStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store := NewDiskStore(dir, time.Minute)
	key := Key([]byte("unit"))
	value := []byte(`{"unit": "shapes"}`)

	if err := store.Set(key, value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Keys must flatten to filesystem-safe names.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ":") {
			t.Errorf("cache file name %q contains ':'", e.Name())
		}
	}

	got, found := store.Get(key)
	if !found || !bytes.Equal(got, value) {
		t.Errorf("Get = %q, %v; want stored value", got, found)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := store.Get(key); found {
		t.Error("Get after Clear reported a hit")
	}
}

func TestDiskStore_Expiry(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, 10*time.Millisecond)
	key := Key([]byte("unit"))

	if err := store.Set(key, []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, found := store.Get(key); found {
		t.Error("expired entry still served")
	}
	if _, err := os.Stat(filepath.Join(dir, strings.ReplaceAll(key, ":", "_")+".report")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestLayeredStore_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	key := Key([]byte("unit"))
	value := []byte(`{"unit": "shapes"}`)

	// Seed only the disk layer, as a previous process would have.
	if err := NewDiskStore(dir, time.Minute).Set(key, value, 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	store := NewLayeredStore(time.Minute, dir, time.Minute)
	got, found := store.Get(key)
	if !found || !bytes.Equal(got, value) {
		t.Fatalf("Get = %q, %v; want disk value", got, found)
	}

	// The hit must now be served from memory even after the disk copy
	// disappears.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	got, found = store.Get(key)
	if !found || !bytes.Equal(got, value) {
		t.Errorf("Get after disk loss = %q, %v; want promoted value", got, found)
	}
}

func TestLayeredStore_WritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	store := NewLayeredStore(time.Minute, dir, time.Minute)
	key := Key([]byte("unit"))
	value := []byte("v")

	if err := store.Set(key, value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh layered store over the same directory sees the disk copy.
	fresh := NewLayeredStore(time.Minute, dir, time.Minute)
	got, found := fresh.Get(key)
	if !found || !bytes.Equal(got, value) {
		t.Errorf("Get from fresh store = %q, %v; want disk-backed value", got, found)
	}

	if err := store.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := store.Get(key); found {
		t.Error("Get after Delete reported a hit")
	}
}
