package models

// StoredFile описывает файл, записанный в каталог загрузок.
type StoredFile struct {
	Key         string `json:"key"`
	Category    string `json:"category"`
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// UploadResult возвращается после успешной загрузки всех частей запроса.
type UploadResult struct {
	Files []StoredFile
}

// Usage — агрегированная статистика по каталогу загрузок.
type Usage struct {
	Files      int
	TotalBytes int64
}
