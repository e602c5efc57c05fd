package uploadgw

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// UploadExpiry is the hard lifetime of an issued write credential.
const UploadExpiry = 300 * time.Second

var allowedFileTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type Handler struct {
	cfg    Config
	signer Presigner
}

func NewHandler(cfg Config, signer Presigner) *Handler {
	return &Handler{cfg: cfg, signer: signer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload/presigned-url", h.PresignedURL)
	r.Delete("/upload/delete", h.DeleteImage)
}

type PresignRequestDTO struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Folder   string `json:"folder"`
}

type PresignResponseDTO struct {
	Success   bool   `json:"success"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type DeleteRequestDTO struct {
	ImageURL string `json:"imageUrl"`
}

type DeleteResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Key     string `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) PresignedURL(w http.ResponseWriter, r *http.Request) {
	var req PresignRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.FileName == "" || req.FileType == "" {
		respondError(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}
	if h.cfg.Bucket == "" {
		log.Printf("storage bucket is not configured")
		respondError(w, http.StatusInternalServerError, "storage not configured")
		return
	}
	if !allowedFileTypes[strings.ToLower(req.FileType)] {
		respondError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, WebP, and GIF images are allowed.")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "products"
	}
	key := ObjectKey(folder, req.FileName)

	uploadURL, err := h.signer.PresignPut(r.Context(), key, req.FileType, UploadExpiry)
	if err != nil {
		log.Printf("presign failed for key %s: %v", key, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate presigned URL. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, PresignResponseDTO{
		Success:   true,
		UploadURL: uploadURL,
		PublicURL: h.cfg.PublicURL(key),
		Key:       key,
		ExpiresIn: int(UploadExpiry.Seconds()),
	})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}
	if h.cfg.Bucket == "" {
		log.Printf("storage bucket is not configured")
		respondError(w, http.StatusInternalServerError, "storage not configured")
		return
	}

	key, err := h.cfg.KeyFromURL(req.ImageURL)
	if err != nil {
		log.Printf("failed to parse image URL %q: %v", req.ImageURL, err)
		respondError(w, http.StatusBadRequest, "Invalid image URL format")
		return
	}

	if err := h.signer.Delete(r.Context(), key); err != nil {
		log.Printf("delete failed for key %s: %v", key, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	respondJSON(w, http.StatusOK, DeleteResponseDTO{
		Success: true,
		Message: "Image deleted successfully",
		Key:     key,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
