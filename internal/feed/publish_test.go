package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPublish_WritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	pub := NewPublisher(dir, "")

	if err := pub.Publish(testResult(), testMeta()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for _, name := range []string{"feed.atom", "feed.rss", "index.html"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestPublish_ReplacesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	pub := NewPublisher(dir, "")

	stale := filepath.Join(dir, "feed.atom")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := pub.Publish(testResult(), testMeta()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale" {
		t.Error("feed.atom was not replaced")
	}

	// No temp files may be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestPublish_CopiesIcon(t *testing.T) {
	dir := t.TempDir()
	iconSrc := filepath.Join(t.TempDir(), "OCGN.png")
	if err := os.WriteFile(iconSrc, []byte{0x89, 'P', 'N', 'G'}, 0644); err != nil {
		t.Fatal(err)
	}
	pub := NewPublisher(dir, iconSrc)

	if err := pub.Publish(testResult(), testMeta()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "OCGN.png")); err != nil {
		t.Errorf("icon was not copied: %v", err)
	}
}


