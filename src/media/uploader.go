// Package media is the boundary to the third-party image host. Uploads are
// allowed to fail independently of post creation; callers skip failed items.
package media

import "context"

type UploadResult struct {
	URL        string
	ExternalID string
}

type Uploader interface {
	Upload(ctx context.Context, data []byte, fileName, folder string) (*UploadResult, error)
	// Destroy removes a previously uploaded file. Best effort; callers treat
	// failures as non-fatal.
	Destroy(ctx context.Context, externalID string) error
}
