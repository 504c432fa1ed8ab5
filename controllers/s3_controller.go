package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"battles_server/services"
)

// S3Controller issues presigned upload URLs for match images.
type S3Controller struct {
	S3Service *services.S3Service
}

func NewS3Controller(s3Service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: s3Service}
}

// GeneratePresignedURL returns a presigned PUT URL for the match image.
// The key follows the {date}-{time}-{name} convention so the blob can be
// tied back to the match it belongs to.
func (c *S3Controller) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	log.Println("GeneratePresignedURL: Received request")

	var payload struct {
		MatchName string `json:"matchName"`
		DateTime  string `json:"dateTime"`
		FileType  string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.MatchName == "" || payload.DateTime == "" || payload.FileType == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	dateTime, err := time.Parse(time.RFC3339, payload.DateTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dateTime (use RFC3339)")
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(payload.MatchName, dateTime, payload.FileType)
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate pre-signed URL")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}
