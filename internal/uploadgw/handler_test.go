package uploadgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPresigner implements Presigner for testing.
type MockPresigner struct {
	URL        string
	PresignErr error
	DeleteErr  error

	PresignCalls int
	DeleteCalls  int
	LastKey      string
	LastType     string
	LastExpires  time.Duration
}

func (m *MockPresigner) PresignPut(_ context.Context, key, contentType string, expires time.Duration) (string, error) {
	m.PresignCalls++
	m.LastKey = key
	m.LastType = contentType
	m.LastExpires = expires
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	return m.URL, nil
}

func (m *MockPresigner) Delete(_ context.Context, key string) error {
	m.DeleteCalls++
	m.LastKey = key
	return m.DeleteErr
}

func configured() Config {
	return Config{Region: "us-east-1", Bucket: "shop"}
}

func TestPresignedURL_Success(t *testing.T) {
	signer := &MockPresigner{URL: "https://shop.s3.us-east-1.amazonaws.com/products/k.jpg?sig=abc"}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "photo.jpg", "fileType": "image/jpeg", "folder": "products"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PresignResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, signer.URL, resp.UploadURL)
	assert.Equal(t, 300, resp.ExpiresIn)
	assert.Equal(t, 300*time.Second, signer.LastExpires)
	assert.Equal(t, "image/jpeg", signer.LastType)
	assert.Contains(t, resp.PublicURL, resp.Key)
}

func TestPresignedURL_DefaultFolder(t *testing.T) {
	signer := &MockPresigner{URL: "https://signed"}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "photo.png", "fileType": "image/png"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, signer.LastKey, "products/")
}

func TestPresignedURL_MissingFields(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "photo.jpg"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, signer.PresignCalls)
}

func TestPresignedURL_DisallowedType(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "a.svg", "fileType": "image/svg+xml"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "Invalid file type")
	assert.Equal(t, 0, signer.PresignCalls)
}

func TestPresignedURL_GifAllowed(t *testing.T) {
	signer := &MockPresigner{URL: "https://signed"}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "anim.gif", "fileType": "image/gif"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPresignedURL_UnconfiguredBucket(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(Config{Region: "us-east-1"}, signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "a.jpg", "fileType": "image/jpeg"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, signer.PresignCalls)
}

func TestPresignedURL_SignerFailure(t *testing.T) {
	signer := &MockPresigner{PresignErr: errors.New("credentials missing")}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fileName": "a.jpg", "fileType": "image/jpeg"}`)
	h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPresignedURL_KeysDifferForSameFileName(t *testing.T) {
	signer := &MockPresigner{URL: "https://signed"}
	h := NewHandler(configured(), signer)

	var keys []string
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"fileName": "same.jpg", "fileType": "image/jpeg"}`)
		h.PresignedURL(rec, httptest.NewRequest(http.MethodPost, "/upload/presigned-url", body))
		require.Equal(t, http.StatusOK, rec.Code)
		keys = append(keys, signer.LastKey)
	}
	assert.NotEqual(t, keys[0], keys[1])
}

func TestDeleteImage_Success(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"imageUrl": "https://shop.s3.us-east-1.amazonaws.com/products/123-abc.jpg"}`)
	h.DeleteImage(rec, httptest.NewRequest(http.MethodDelete, "/upload/delete", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeleteResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "products/123-abc.jpg", resp.Key)
	assert.Equal(t, "products/123-abc.jpg", signer.LastKey)
}

func TestDeleteImage_PathStyleURL(t *testing.T) {
	signer := &MockPresigner{}
	cfg := Config{Region: "us-east-1", Bucket: "shop", Endpoint: "http://localhost:9000"}
	h := NewHandler(cfg, signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"imageUrl": "http://localhost:9000/shop/products/123-abc.jpg"}`)
	h.DeleteImage(rec, httptest.NewRequest(http.MethodDelete, "/upload/delete", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "products/123-abc.jpg", signer.LastKey)
}

func TestDeleteImage_UnparsableURL(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"imageUrl": "::not-a-url::"}`)
	h.DeleteImage(rec, httptest.NewRequest(http.MethodDelete, "/upload/delete", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, signer.DeleteCalls)
}

func TestDeleteImage_MissingURL(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	h.DeleteImage(rec, httptest.NewRequest(http.MethodDelete, "/upload/delete", bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteImage_UnconfiguredBucket(t *testing.T) {
	signer := &MockPresigner{}
	h := NewHandler(Config{}, signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"imageUrl": "https://shop.s3.us-east-1.amazonaws.com/products/a.jpg"}`)
	h.DeleteImage(rec, httptest.NewRequest(http.MethodDelete, "/upload/delete", body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteImage_StorageFailure(t *testing.T) {
	signer := &MockPresigner{DeleteErr: errors.New("access denied")}
	h := NewHandler(configured(), signer)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"imageUrl": "https://shop.s3.us-east-1.amazonaws.com/products/a.jpg"}`)
	h.DeleteImage(rec, httptest.NewRequest(http.MethodDelete, "/upload/delete", body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
