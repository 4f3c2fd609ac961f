package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_Load(t *testing.T) {
	t.Run("Starts Empty if File Missing", func(t *testing.T) {
		c := newCache(t.TempDir(), DefaultSystemDir)

		if err := c.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", c.Len())
		}
	})

	t.Run("Loads Valid JSON", func(t *testing.T) {
		root := t.TempDir()
		cacheDir := filepath.Join(root, DefaultSystemDir)
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			t.Fatal(err)
		}

		jsonContent := `{
			"version": 1,
			"entries": {
				"audio/Air.mp3.yml": {
					"ref": "Air",
					"uuid": "0d5e0a3a-4ce2-4d7e-9a59-3f3b44f0e2a1",
					"meta": {"title": "Air"}
				}
			}
		}`
		if err := os.WriteFile(filepath.Join(cacheDir, "index.json"), []byte(jsonContent), 0644); err != nil {
			t.Fatal(err)
		}

		c := newCache(root, DefaultSystemDir)
		if err := c.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		entry, ok := c.index.Entries["audio/Air.mp3.yml"]
		if !ok {
			t.Fatal("expected entry audio/Air.mp3.yml not found")
		}
		if entry.Ref != "Air" || entry.Meta["title"] != "Air" {
			t.Errorf("unexpected entry: %+v", entry)
		}
	})

	t.Run("Resets on Corrupted JSON", func(t *testing.T) {
		root := t.TempDir()
		cacheDir := filepath.Join(root, DefaultSystemDir)
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(cacheDir, "index.json"), []byte("{ invalid json"), 0644); err != nil {
			t.Fatal(err)
		}

		c := newCache(root, DefaultSystemDir)
		if err := c.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty cache after corruption, got %d entries", c.Len())
		}
	})
}

func TestCache_Save(t *testing.T) {
	t.Run("Does Not Save if Not Dirty", func(t *testing.T) {
		c := newCache(t.TempDir(), DefaultSystemDir)

		if err := c.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(c.Path); !os.IsNotExist(err) {
			t.Error("expected index.json not to exist")
		}
	})

	t.Run("Saves and Reloads", func(t *testing.T) {
		root := t.TempDir()
		mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		c := newCache(root, DefaultSystemDir)
		c.Set("Air.mp3.yml", &indexEntry{Ref: "Air", LastModified: mtime})
		if err := c.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if c.index.dirty {
			t.Error("expected dirty to be false after save")
		}

		reloaded := newCache(root, DefaultSystemDir)
		if err := reloaded.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		got, hit := reloaded.Get("Air.mp3.yml", mtime)
		if !hit {
			t.Fatal("expected cache hit after reload")
		}
		if got.Ref != "Air" {
			t.Errorf("expected ref 'Air', got %q", got.Ref)
		}
	})
}

func TestCache_Get(t *testing.T) {
	c := newCache(t.TempDir(), DefaultSystemDir)

	now := time.Now().Truncate(time.Second)
	c.Set("Air.mp3.yml", &indexEntry{Ref: "Air", LastModified: now})

	t.Run("Hit with Same Mtime", func(t *testing.T) {
		got, hit := c.Get("Air.mp3.yml", now)
		if !hit {
			t.Fatal("expected cache hit")
		}
		if got.Ref != "Air" {
			t.Errorf("expected ref 'Air', got %q", got.Ref)
		}
	})

	t.Run("Miss with Different Mtime", func(t *testing.T) {
		if _, hit := c.Get("Air.mp3.yml", now.Add(time.Hour)); hit {
			t.Error("expected cache miss due to mtime mismatch")
		}
	})

	t.Run("Miss with Missing Key", func(t *testing.T) {
		if _, hit := c.Get("ghost.mp3.yml", now); hit {
			t.Error("expected cache miss for missing key")
		}
	})
}

func TestCache_Prune(t *testing.T) {
	c := newCache(t.TempDir(), DefaultSystemDir)

	c.Set("keep.jpg.yml", &indexEntry{Ref: "keep"})
	c.Set("drop.jpg.yml", &indexEntry{Ref: "drop"})
	c.index.dirty = false

	c.Prune(map[string]bool{"keep.jpg.yml": true})

	if _, ok := c.index.Entries["keep.jpg.yml"]; !ok {
		t.Error("expected keep.jpg.yml to remain")
	}
	if _, ok := c.index.Entries["drop.jpg.yml"]; ok {
		t.Error("expected drop.jpg.yml to be removed")
	}
	if !c.index.dirty {
		t.Error("expected dirty to be true after pruning")
	}
}
