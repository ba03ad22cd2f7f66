package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"boundary stays in bytes", 1024, "1024 B"},
		{"kilobytes", 2048, "2 KB"},
		{"two megabytes", 2097152, "2 MB"},
		{"fractional megabytes", 1536000, "1.46 MB"},
		{"gigabytes", 5 * 1024 * 1024 * 1024, "5 GB"},
		{"terabyte cap", 3 * 1024 * 1024 * 1024 * 1024, "3 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanFileSize(tt.bytes))
		})
	}
}

func TestDocumentResponse(t *testing.T) {
	now := time.Now().UTC()
	doc := &Document{
		ID:          "doc-id",
		Title:       "Quarterly report",
		Description: "Q3 numbers",
		FileName:    "report.pdf",
		FilePath:    "documents/2026/08/30/secret.pdf",
		FileSize:    2097152,
		MimeType:    "application/pdf",
		Category:    "finance",
		Status:      StatusActive,
		UploadedBy:  "alice",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := doc.Response()

	assert.Equal(t, "doc-id", res.ID)
	assert.Equal(t, "2 MB", res.FileSizeHuman)
	assert.Equal(t, "/documents/doc-id/download", res.DownloadURL)

	// file_path must never leak through serialization
	b, err := json.Marshal(res)
	assert.NoError(t, err)
	assert.NotContains(t, string(b), "secret.pdf")
	assert.NotContains(t, string(b), "file_path")
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusInactive))
	assert.True(t, ValidStatus(StatusProcessing))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}
