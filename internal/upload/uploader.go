package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the client-side size gate, checked before any network call.
const MaxFileSize = 5 << 20

// DefaultFolder is where product images land unless the caller says otherwise.
const DefaultFolder = "products"

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PresignRequest asks the upload gateway for a write credential.
type PresignRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Folder   string `json:"folder"`
}

// Credential is a short-lived, single-use write authorization. It is consumed
// by exactly one transfer and never reused: a failed transfer starts over
// from a fresh credential.
type Credential struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

// CredentialClient issues credentials and accepts deletion requests; the
// upload gateway implements it.
type CredentialClient interface {
	PresignUpload(ctx context.Context, req PresignRequest) (*Credential, error)
	DeleteObject(ctx context.Context, publicURL string) error
}

// Uploader moves a file to object storage without routing its bytes through
// the application server: credential first, then a direct PUT.
type Uploader struct {
	creds  CredentialClient
	http   *http.Client
	folder string
}

func NewUploader(creds CredentialClient, folder string) *Uploader {
	if folder == "" {
		folder = DefaultFolder
	}
	return &Uploader{
		creds:  creds,
		http:   &http.Client{Timeout: 60 * time.Second},
		folder: folder,
	}
}

// Upload validates the file, obtains a credential and performs the direct
// transfer. It returns the public URL of the stored object.
func (u *Uploader) Upload(ctx context.Context, fileName, contentType string, size int64, body io.Reader) (string, error) {
	if err := Validate(contentType, size); err != nil {
		return "", err
	}

	cred, err := u.creds.PresignUpload(ctx, PresignRequest{
		FileName: uniqueFileName(fileName),
		FileType: contentType,
		Folder:   u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get upload credential: %w", err)
	}

	if err := u.transfer(ctx, cred.UploadURL, contentType, size, body); err != nil {
		return "", err
	}
	return cred.PublicURL, nil
}

func (u *Uploader) transfer(ctx context.Context, uploadURL, contentType string, size int64, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("build transfer request failed: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := u.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload to storage failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload to storage failed: status %d", resp.StatusCode)
	}
	return nil
}

// Delete asks the gateway to remove a previously uploaded object.
func (u *Uploader) Delete(ctx context.Context, publicURL string) error {
	return u.creds.DeleteObject(ctx, publicURL)
}

// Validate applies the pre-upload gate: allowed content type and size cap.
// No network call happens for a file that fails here.
func Validate(contentType string, size int64) error {
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return ErrInvalidFileType
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

func uniqueFileName(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "." + ext
}
