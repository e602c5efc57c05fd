package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCredentialClient implements CredentialClient for testing.
type MockCredentialClient struct {
	Cred       *Credential
	PresignErr error
	DeleteErr  error

	PresignCalls int
	DeleteCalls  int
	LastPresign  PresignRequest
	LastDeleted  string
}

func (m *MockCredentialClient) PresignUpload(_ context.Context, req PresignRequest) (*Credential, error) {
	m.PresignCalls++
	m.LastPresign = req
	if m.PresignErr != nil {
		return nil, m.PresignErr
	}
	return m.Cred, nil
}

func (m *MockCredentialClient) DeleteObject(_ context.Context, publicURL string) error {
	m.DeleteCalls++
	m.LastDeleted = publicURL
	return m.DeleteErr
}

func TestUpload_OversizedFileRejectedWithoutNetworkCall(t *testing.T) {
	creds := &MockCredentialClient{}
	u := NewUploader(creds, "")

	_, err := u.Upload(context.Background(), "photo.jpg", "image/jpeg", 6<<20, strings.NewReader("x"))

	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, 0, creds.PresignCalls)
}

func TestUpload_BadTypeRejectedWithoutNetworkCall(t *testing.T) {
	creds := &MockCredentialClient{}
	u := NewUploader(creds, "")

	_, err := u.Upload(context.Background(), "doc.pdf", "application/pdf", 100, strings.NewReader("x"))

	require.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, 0, creds.PresignCalls)
}

func TestUpload_TwoPhase(t *testing.T) {
	var gotContentType string
	var gotBody string
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer storage.Close()

	creds := &MockCredentialClient{Cred: &Credential{
		UploadURL: storage.URL + "/bucket/products/k.png?signature=abc",
		PublicURL: "https://bucket.s3.us-east-1.amazonaws.com/products/k.png",
		Key:       "products/k.png",
		ExpiresIn: 300,
	}}
	u := NewUploader(creds, "products")

	url, err := u.Upload(context.Background(), "logo.png", "image/png", 4, strings.NewReader("1234"))

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/products/k.png", url)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, "1234", gotBody)
	assert.Equal(t, "products", creds.LastPresign.Folder)
	assert.Equal(t, "image/png", creds.LastPresign.FileType)
	// the presigned name is opaque, never the original filename
	assert.NotEqual(t, "logo.png", creds.LastPresign.FileName)
	assert.True(t, strings.HasSuffix(creds.LastPresign.FileName, ".png"))
}

func TestUpload_TransferFailureReported(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden) // e.g. expired credential
	}))
	defer storage.Close()

	creds := &MockCredentialClient{Cred: &Credential{UploadURL: storage.URL + "/k", PublicURL: "p"}}
	u := NewUploader(creds, "")

	_, err := u.Upload(context.Background(), "a.jpg", "image/jpeg", 1, strings.NewReader("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Equal(t, 1, creds.PresignCalls) // no automatic retry, caller restarts from phase 1
}

func TestUpload_CredentialFailureSurfaced(t *testing.T) {
	creds := &MockCredentialClient{PresignErr: errors.New("storage not configured")}
	u := NewUploader(creds, "")

	_, err := u.Upload(context.Background(), "a.jpg", "image/jpeg", 1, strings.NewReader("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage not configured")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("image/jpeg", 100))
	assert.NoError(t, Validate("IMAGE/PNG", MaxFileSize))
	assert.ErrorIs(t, Validate("image/gif", 100), ErrInvalidFileType)
	assert.ErrorIs(t, Validate("image/jpeg", MaxFileSize+1), ErrFileTooLarge)
}
