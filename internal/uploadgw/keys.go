package uploadgw

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config selects the storage deployment: standard cloud storage by region and
// bucket, an S3-compatible endpoint (path-style addressing), and an optional
// CDN domain for public URLs.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	CDNDomain string
}

// ObjectKey derives the storage key for an upload. The key is never the
// original filename alone: a time prefix plus an opaque id prevents both
// collisions and path traversal.
func ObjectKey(folder, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), uuid.NewString(), ext)
}

// PublicURL is where the object will be reachable once uploaded.
func (c Config) PublicURL(key string) string {
	if c.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", c.CDNDomain, key)
	}
	if c.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.Endpoint, "/"), c.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}

// KeyFromURL recovers the storage key from a public URL. Path-style URLs from
// a configured endpoint carry the bucket as the first path segment;
// virtual-hosted URLs carry the key as the whole path.
func (c Config) KeyFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid image URL format")
	}

	var key string
	if c.Endpoint != "" && strings.Contains(imageURL, endpointHost(c.Endpoint)) {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 {
			return "", fmt.Errorf("invalid image URL format")
		}
		key = strings.Join(parts[1:], "/")
	} else {
		key = strings.TrimPrefix(u.Path, "/")
	}

	if key == "" {
		return "", fmt.Errorf("invalid image URL format")
	}
	return key, nil
}

func endpointHost(endpoint string) string {
	host := strings.TrimPrefix(endpoint, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}
