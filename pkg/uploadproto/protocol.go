// Package uploadproto описывает HTTP-протокол сервиса загрузки файлов.
package uploadproto

import (
	"net/url"
	"strings"
)

// Маршруты сервиса.
const (
	PathRoot    = "/"
	PathUpload  = "/upload"
	PathStatic  = "/static"
	PathHealth  = "/health"
	PathAdminGC = "/admin/gc"
)

// Фиксированные тексты ответов.
const (
	RootBanner      = "File Upload API"
	StatusSuccess   = "success"
	StatusError     = "error"
	MessageUploaded = "File(s) uploaded successfully!"
)

// Response — JSON-тело ответа POST /upload.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Files   []File `json:"files,omitempty"`
}

// File описывает один сохранённый файл в ответе на загрузку.
type File struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// Health — payload ответа /health.
type Health struct {
	OK         bool  `json:"ok"`
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
}

// StaticURL возвращает путь, по которому отдаётся файл с ключом key.
func StaticURL(key string) string {
	return PathStatic + "/" + url.PathEscape(key)
}

// JoinURL склеивает базовый адрес сервиса и путь.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
