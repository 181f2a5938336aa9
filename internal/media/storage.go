package media

import "context"

// Asset identifies a stored image: the public URL callers embed in listings
// and the storage id needed to delete it later.
type Asset struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id"`
}

// Storage is the media-host integration point. Upload is best effort from the
// caller's perspective: a failed upload is skipped, not fatal.
type Storage interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, storageID string) error
}
