// internal/productform/assets.go
package productform

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	ThumbnailFolder = "thumbnails"
	GalleryFolder   = "product-images"
)

// AssetUploader stores bytes under a caller-chosen key and returns a durable
// URL for them.
type AssetUploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ResolvedAssets holds the URLs of a draft's assets after every pending file
// has been uploaded. Uploaded lists only the URLs produced by this resolution.
type ResolvedAssets struct {
	ThumbnailURL string
	ImageURLs    []string
	Uploaded     []string
}

var now = time.Now

// ResolveAssets uploads pending files one at a time, in gallery order, and
// passes resolved URLs through unchanged. The first failed upload aborts the
// whole resolution.
func ResolveAssets(ctx context.Context, uploader AssetUploader, thumbnail Asset, images []Asset) (ResolvedAssets, error) {
	var resolved ResolvedAssets

	url, uploaded, err := resolveAsset(ctx, uploader, ThumbnailFolder, thumbnail)
	if err != nil {
		return ResolvedAssets{}, err
	}
	resolved.ThumbnailURL = url
	if uploaded {
		resolved.Uploaded = append(resolved.Uploaded, url)
	}

	resolved.ImageURLs = make([]string, 0, len(images))
	for _, image := range images {
		url, uploaded, err := resolveAsset(ctx, uploader, GalleryFolder, image)
		if err != nil {
			return ResolvedAssets{}, err
		}
		resolved.ImageURLs = append(resolved.ImageURLs, url)
		if uploaded {
			resolved.Uploaded = append(resolved.Uploaded, url)
		}
	}

	return resolved, nil
}

func resolveAsset(ctx context.Context, uploader AssetUploader, folder string, asset Asset) (string, bool, error) {
	if !asset.IsPending() {
		return asset.URL, false, nil
	}

	key := AssetKey(folder, asset.File.Name)
	if err := ctx.Err(); err != nil {
		return "", false, &UploadError{Key: key, Err: err}
	}

	url, err := uploader.Upload(ctx, key, asset.File.ContentType, asset.File.Data)
	if err != nil {
		return "", false, &UploadError{Key: key, Err: err}
	}
	return url, true, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// AssetKey builds a collision-free object key:
// <folder>/<unix millis>-<random>-<sanitized file name>.
func AssetKey(folder, filename string) string {
	name := unsafeKeyChars.ReplaceAllString(filepath.Base(filename), "_")
	if name == "" || name == "." || name == "_" {
		name = "file"
	}
	return fmt.Sprintf("%s/%d-%s-%s", folder, now().UnixMilli(), uuid.New().String()[:8], name)
}
