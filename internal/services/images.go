// Package services orchestrates store operations that need more than a
// single repository call, chiefly anything touching the media host.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/model"
)

// resolveImages turns flexible image inputs into stored images. Data URIs are
// uploaded to the media host; hosted URLs pass through unchanged. Any upload
// failure aborts the whole resolution so records never reference half of an
// upload batch.
func resolveImages(ctx context.Context, up media.Uploader, inputs []model.ImageInput) ([]model.Image, error) {
	if inputs == nil {
		return nil, nil
	}
	out := make([]model.Image, 0, len(inputs))
	for _, in := range inputs {
		switch {
		case strings.HasPrefix(in.Raw, "data:"):
			asset, err := up.UploadDataURI(ctx, in.Raw)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Image{URL: asset.URL, ExternalID: asset.ExternalID})
		case strings.HasPrefix(in.Raw, "http://"), strings.HasPrefix(in.Raw, "https://"):
			out = append(out, model.Image{URL: in.Raw})
		case in.Raw != "":
			return nil, fmt.Errorf("%w: image string must be a data URI or URL", model.ErrValidation)
		case in.URL != "":
			out = append(out, model.Image{URL: in.URL, ExternalID: in.ExternalID})
		default:
			return nil, fmt.Errorf("%w: image is missing a url", model.ErrValidation)
		}
	}
	return out, nil
}

// releaseImages deletes hosted copies after their owning record is gone.
// Best effort: the record delete already succeeded, so failures are logged
// and swallowed.
func releaseImages(ctx context.Context, up media.Uploader, log zerolog.Logger, images []model.Image) {
	for _, img := range images {
		if img.ExternalID == "" {
			continue
		}
		if err := up.Delete(ctx, img.ExternalID); err != nil {
			log.Warn().Err(err).Str("externalId", img.ExternalID).Msg("failed to release hosted image")
		}
	}
}
