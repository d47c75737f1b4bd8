package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yourname/upload_lite/internal/models"
	"github.com/yourname/upload_lite/pkg/uploadproto"
)

const (
	msgCreateFile = "Error creating file"
	msgInternal   = "Internal server error"
)

// Write отвечает клиенту JSON-ошибкой, подбирая статус по типу ошибки.
func Write(w http.ResponseWriter, err error) {
	status, msg := Classify(err)
	JSON(w, status, uploadproto.Response{
		Status:  uploadproto.StatusError,
		Message: msg,
	})
}

// Classify сопоставляет ошибку со статусом HTTP и сообщением для клиента.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrMissingFieldName),
		errors.Is(err, models.ErrMissingFileName),
		errors.Is(err, models.ErrInvalidName),
		errors.Is(err, models.ErrMalformedPart):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, models.ErrExtensionNotAllowed):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, models.ErrCreateFile):
		return http.StatusInternalServerError, msgCreateFile
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// JSON сериализует v в тело ответа с заданным статусом.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
