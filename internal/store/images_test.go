package store

import (
	"context"
	"testing"

	"github.com/qtts/assetdesk/internal/db"
)

func TestAssetImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	data, _, err := GetAssetImage(ctx, database, "a1")
	if err != nil {
		t.Fatalf("GetAssetImage: %v", err)
	}
	if data != nil {
		t.Error("expected no image")
	}

	SetAssetImage(ctx, database, "a1", []byte("first"), "image/jpeg")
	if err := SetAssetImage(ctx, database, "a1", []byte("fake image data"), "image/png"); err != nil {
		t.Fatalf("SetAssetImage: %v", err)
	}

	data, mime, err := GetAssetImage(ctx, database, "a1")
	if err != nil {
		t.Fatalf("GetAssetImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/png" {
		t.Errorf("expected mime 'image/png', got %q", mime)
	}

	if err := DeleteAssetImage(ctx, database, "a1"); err != nil {
		t.Fatalf("DeleteAssetImage: %v", err)
	}
	if data, _, _ := GetAssetImage(ctx, database, "a1"); data != nil {
		t.Error("expected image to be deleted")
	}
}
