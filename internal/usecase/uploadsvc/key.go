package uploadsvc

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourname/upload_lite/internal/models"
)

// keyTimeLayout — DDMMYYYYHHMMSS.
const keyTimeLayout = "02012006150405"

// StorageKey строит ключ хранения "{DDMMYYYYHHMMSS}_{category}_{fileName}" по времени t в UTC.
func StorageKey(t time.Time, category, fileName string) string {
	return t.UTC().Format(keyTimeLayout) + "_" + category + "_" + fileName
}

// key вычисляет ключ для очередной части. С UniqueKeys между категорией и именем
// вставляется случайный токен, и ключи разных частей не совпадают.
func (s *Files) key(category, fileName string) string {
	now := s.Now()
	if !s.UniqueKeys {
		return StorageKey(now, category, fileName)
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return StorageKey(now, category, token+"_"+fileName)
}

// validateComponent не даёт клиентским именам выйти за пределы каталога загрузок.
func validateComponent(v string) error {
	if v == "." || v == ".." || strings.ContainsAny(v, "/\\\x00") {
		return models.ErrInvalidName
	}

	return nil
}

func (s *Files) extensionAllowed(fileName string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[strings.ToLower(filepath.Ext(fileName))]

	return ok
}
