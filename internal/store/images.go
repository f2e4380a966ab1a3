package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SetAssetImage stores the photo for an asset, replacing any previous one.
func SetAssetImage(ctx context.Context, db *sql.DB, assetID string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO asset_images (asset_id, image, image_mime) VALUES (?, ?, ?)
		 ON CONFLICT (asset_id) DO UPDATE SET image = excluded.image, image_mime = excluded.image_mime,
		     updated_at = CURRENT_TIMESTAMP`,
		assetID, image, mime,
	)
	if err != nil {
		return fmt.Errorf("setting asset image: %w", err)
	}
	return nil
}

// GetAssetImage returns an asset's photo and MIME type, or nil data if there is none.
func GetAssetImage(ctx context.Context, db *sql.DB, assetID string) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM asset_images WHERE asset_id = ?`, assetID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting asset image: %w", err)
	}
	return image, mime, nil
}

// DeleteAssetImage removes an asset's photo.
func DeleteAssetImage(ctx context.Context, db *sql.DB, assetID string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM asset_images WHERE asset_id = ?`, assetID); err != nil {
		return fmt.Errorf("deleting asset image: %w", err)
	}
	return nil
}
