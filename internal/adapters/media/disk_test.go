package media_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"travel_agency/internal/adapters/media"
	"travel_agency/internal/domain"
)

func TestDisk_Save(t *testing.T) {
	root := t.TempDir()
	d := media.NewDisk(root)

	rel, err := d.Save(context.Background(), "hotel_images", "../../etc/Lobby.JPG", strings.NewReader("jpegdata"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(rel, "hotel_images/") || !strings.HasSuffix(rel, ".jpg") {
		t.Fatalf("unexpected path %q", rel)
	}
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil || string(b) != "jpegdata" {
		t.Fatalf("stored content: %q %v", b, err)
	}

	other, _ := d.Save(context.Background(), "hotel_images", "lobby.jpg", strings.NewReader("x"))
	if other == rel {
		t.Fatalf("names must be unique")
	}
}

func TestDisk_Rejects(t *testing.T) {
	d := media.NewDisk(t.TempDir())

	if _, err := d.Save(context.Background(), "gallery", "run.sh", strings.NewReader("#!")); !domain.IsValidation(err) {
		t.Fatalf("extension: %v", err)
	}
	if _, err := d.Save(context.Background(), "../up", "a.png", strings.NewReader("")); err == nil {
		t.Fatalf("folder escape accepted")
	}

	big := bytes.NewReader(make([]byte, media.MaxUploadBytes+1))
	if _, err := d.Save(context.Background(), "gallery", "big.png", big); !domain.IsValidation(err) {
		t.Fatalf("size: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(d.Root, "gallery"))
	if len(entries) != 0 {
		t.Fatalf("oversized upload left %d files behind", len(entries))
	}
}
