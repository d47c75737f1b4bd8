package uploadsvc

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/yourname/upload_lite/internal/models"
)

// FileSystem возвращает read-only представление каталога загрузок для http.FileServer.
func (s *Files) FileSystem() http.FileSystem {
	return publicFS{root: afero.NewHttpFs(s.Fs).Dir(s.Dir)}
}

// publicFS прячет скрытые (в том числе недописанные) файлы и не отдаёт листинг каталогов.
type publicFS struct {
	root http.FileSystem
}

func (p publicFS) Open(name string) (http.File, error) {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return nil, fs.ErrNotExist
		}
	}

	f, err := p.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}

	return f, nil
}

// Usage возвращает число опубликованных файлов и их суммарный размер.
func (s *Files) Usage() (models.Usage, error) {
	var usage models.Usage
	err := afero.Walk(s.Fs, s.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		usage.Files++
		usage.TotalBytes += info.Size()

		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return models.Usage{}, err
	}

	return usage, nil
}
