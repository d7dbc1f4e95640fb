// Package media uploads images to an external host and releases them when
// their owning records are deleted.
package media

import "context"

// Asset is a hosted image. ExternalID identifies the asset on the host and is
// required to delete it later.
type Asset struct {
	URL        string
	ExternalID string
}

// Uploader is the media host client. Implementations must be safe for
// concurrent use.
type Uploader interface {
	// UploadRaw uploads raw image bytes and returns the hosted asset.
	UploadRaw(ctx context.Context, data []byte, contentType string) (*Asset, error)
	// UploadDataURI uploads a "data:<mime>;base64,<payload>" string.
	UploadDataURI(ctx context.Context, uri string) (*Asset, error)
	// Delete removes a previously uploaded asset by its external ID.
	Delete(ctx context.Context, externalID string) error
}
