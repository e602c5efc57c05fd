package upload

import (
	"context"
	"log"
	"net/url"
	"strings"
)

// DefaultMaxImages is how many images a product holds unless configured.
const DefaultMaxImages = 5

// Deleter is the best-effort removal side of the upload gateway.
type Deleter interface {
	DeleteObject(ctx context.Context, publicURL string) error
}

// ImageSet manages a product's image URLs: uploads, pasted URLs, and removal
// with cleanup of store-hosted objects.
type ImageSet struct {
	max         int
	urls        []string
	deleter     Deleter
	storeHosted func(string) bool
}

// NewImageSet builds a set with the given capacity. storeHosted decides
// whether a URL points at the configured object store; nil falls back to the
// standard cloud-storage host check.
func NewImageSet(max int, deleter Deleter, storeHosted func(string) bool) *ImageSet {
	if max <= 0 {
		max = DefaultMaxImages
	}
	if storeHosted == nil {
		storeHosted = func(u string) bool { return strings.Contains(u, "amazonaws.com") }
	}
	return &ImageSet{max: max, deleter: deleter, storeHosted: storeHosted}
}

// URLs returns a copy of the current image list.
func (s *ImageSet) URLs() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

// AddUpload appends a freshly uploaded image URL.
func (s *ImageSet) AddUpload(publicURL string) error {
	if len(s.urls) >= s.max {
		return ErrTooManyImages
	}
	s.urls = append(s.urls, publicURL)
	return nil
}

// AddURL appends a pasted external URL after basic validation.
func (s *ImageSet) AddURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrInvalidImageURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidImageURL
	}
	for _, existing := range s.urls {
		if existing == raw {
			return ErrDuplicateImage
		}
	}
	if len(s.urls) >= s.max {
		return ErrTooManyImages
	}
	s.urls = append(s.urls, raw)
	return nil
}

// Remove drops the image at index. When the URL lives on the configured
// object store, the object is deleted best-effort: a failing deletion is
// logged and the image still leaves the list. Pasted URLs pointing elsewhere
// are removed without a deletion call.
func (s *ImageSet) Remove(ctx context.Context, index int) {
	if index < 0 || index >= len(s.urls) {
		return
	}
	removed := s.urls[index]
	s.urls = append(s.urls[:index], s.urls[index+1:]...)

	if s.deleter == nil || !s.storeHosted(removed) {
		return
	}
	if err := s.deleter.DeleteObject(ctx, removed); err != nil {
		log.Printf("failed to delete image from storage: %v", err)
	}
}
