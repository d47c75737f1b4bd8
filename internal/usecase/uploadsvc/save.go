package uploadsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/yourname/upload_lite/internal/models"
)

const (
	// partialPrefix помечает файлы, которые ещё пишутся. Статика их не отдаёт, GC удаляет.
	partialPrefix = ".partial-"
	sniffLen      = 3072
)

// staged — часть, полностью записанная во временный файл и ожидающая rename.
type staged struct {
	tmp  string
	file models.StoredFile
}

// SaveAll читает части по порядку, стримит каждую во временный файл и только после
// успешной записи всех частей переименовывает их в итоговые ключи. Любая ошибка
// отменяет весь запрос: временные файлы удаляются, ничего не публикуется.
func (s *Files) SaveAll(ctx context.Context, parts PartSource) (models.UploadResult, error) {
	// Каталог проверяется на каждый вызов: его могли удалить между запросами.
	if err := s.Fs.MkdirAll(s.Dir, 0o755); err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: mkdir %s: %v", models.ErrCreateFile, s.Dir, err)
	}

	var pending []staged
	fail := func(err error) (models.UploadResult, error) {
		s.discard(pending)
		return models.UploadResult{}, err
	}

	for idx := 0; ; idx++ {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		part, err := parts.NextPart()
		// Голый io.EOF означает закрывающий разделитель. Обёрнутый EOF приходит,
		// когда тело оборвано до него, и это битый запрос.
		if err == io.EOF { //nolint:errorlint
			break
		}
		if err != nil {
			return fail(fmt.Errorf("%w: part %d: %v", models.ErrMalformedPart, idx, err))
		}

		st, err := s.stage(ctx, part)
		_ = part.Close()
		if err != nil {
			return fail(fmt.Errorf("part %d: %w", idx, err))
		}
		pending = append(pending, st)
	}

	files := make([]models.StoredFile, 0, len(pending))
	for _, st := range pending {
		if err := s.Fs.Rename(st.tmp, filepath.Join(s.Dir, st.file.Key)); err != nil {
			return fail(fmt.Errorf("%w: rename %s: %v", models.ErrCreateFile, st.file.Key, err))
		}
		files = append(files, st.file)
	}

	return models.UploadResult{Files: files}, nil
}

// stage проверяет заголовки части и записывает её содержимое во временный файл.
func (s *Files) stage(ctx context.Context, part *multipart.Part) (staged, error) {
	category := part.FormName()
	if category == "" {
		return staged{}, models.ErrMissingFieldName
	}
	name := part.FileName()
	if name == "" {
		return staged{}, models.ErrMissingFileName
	}
	if err := validateComponent(category); err != nil {
		return staged{}, fmt.Errorf("category %q: %w", category, err)
	}
	if err := validateComponent(name); err != nil {
		return staged{}, fmt.Errorf("file name %q: %w", name, err)
	}
	if !s.extensionAllowed(name) {
		return staged{}, fmt.Errorf("%q: %w", name, models.ErrExtensionNotAllowed)
	}

	tmp, err := afero.TempFile(s.Fs, s.Dir, partialPrefix+"*")
	if err != nil {
		return staged{}, fmt.Errorf("%w: %v", models.ErrCreateFile, err)
	}
	tmpName := tmp.Name()

	src := &partReader{ctx: ctx, r: part, limit: s.MaxFileSize}
	size, contentType, err := copyPart(tmp, src)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		// TempFile создаёт файл с 0600, опубликованный файл должен читаться как обычный.
		err = s.Fs.Chmod(tmpName, 0o644)
	}
	if err != nil {
		_ = s.Fs.Remove(tmpName)
		if src.err != nil {
			return staged{}, src.err
		}
		return staged{}, fmt.Errorf("%w: %v", models.ErrCreateFile, err)
	}

	key := s.key(category, name)
	s.Logger.Debug("staged part", "key", key, "size", humanize.Bytes(uint64(size)), "content_type", contentType)

	return staged{
		tmp: tmpName,
		file: models.StoredFile{
			Key:         key,
			Category:    category,
			FileName:    name,
			Size:        size,
			ContentType: contentType,
		},
	}, nil
}

// copyPart копирует src в dst, определяя MIME-тип по первым байтам.
func copyPart(dst io.Writer, src io.Reader) (int64, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, "", err
	}
	head = head[:n]
	contentType := mimetype.Detect(head).String()

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))

	return written, contentType, err
}

func (s *Files) discard(pending []staged) {
	for _, st := range pending {
		_ = s.Fs.Remove(st.tmp)
	}
}

// partReader считает прочитанные байты, ограничивает размер части и запоминает
// ошибку на стороне клиента, чтобы отличить её от ошибки записи на диск.
type partReader struct {
	ctx   context.Context
	r     io.Reader
	limit int64
	n     int64
	err   error
}

func (p *partReader) Read(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if err := p.ctx.Err(); err != nil {
		p.err = err
		return 0, err
	}

	n, err := p.r.Read(b)
	p.n += int64(n)
	if p.limit > 0 && p.n > p.limit {
		p.err = fmt.Errorf("%w: limit is %s", models.ErrTooLarge, humanize.Bytes(uint64(p.limit)))
		return n, p.err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		p.err = fmt.Errorf("%w: %v", models.ErrMalformedPart, err)
		return n, p.err
	}

	return n, err
}
