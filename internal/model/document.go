package model

import (
	"math"
	"strconv"
	"time"
)

// Document represents a stored file and its metadata in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// FilePath is the server-generated relative storage path; it is assigned once
// at creation, never mutated, and never serialized to API clients.
type Document struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FileName    string     `json:"file_name"`
	FilePath    string     `json:"-"`
	FileSize    int64      `json:"file_size"`
	MimeType    string     `json:"mime_type"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	UploadedBy  string     `json:"uploaded_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// DocumentResponse is the API representation of a Document.
// It adds the derived file_size_human and download_url fields and
// keeps file_path hidden.
type DocumentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	FileSizeHuman string    `json:"file_size_human"`
	MimeType      string    `json:"mime_type"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	UploadedBy    string    `json:"uploaded_by"`
	DownloadURL   string    `json:"download_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Response builds the serializable view of the document.
func (d *Document) Response() DocumentResponse {
	return DocumentResponse{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		FileName:      d.FileName,
		FileSize:      d.FileSize,
		FileSizeHuman: HumanFileSize(d.FileSize),
		MimeType:      d.MimeType,
		Category:      d.Category,
		Status:        d.Status,
		UploadedBy:    d.UploadedBy,
		DownloadURL:   "/documents/" + d.ID + "/download",
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// HumanFileSize renders a byte count as a human-readable size: the value is
// divided by 1024 while it exceeds 1024, rounded to two decimals with
// trailing zeros trimmed, and suffixed with the matching unit.
// Examples: 2097152 -> "2 MB", 1536000 -> "1.46 MB".
func HumanFileSize(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	i := 0
	for size > 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	rounded := math.Round(size*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[i]
}
