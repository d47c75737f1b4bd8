package uploadclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	barWidth    = 32
	redrawEvery = 120 * time.Millisecond
)

// progressBar рисует строку хода передачи в out. Сам является io.Writer:
// записанные байты засчитываются как переданные.
type progressBar struct {
	mu       sync.Mutex
	out      io.Writer
	label    string
	total    int64
	done     int64
	drawnAt  time.Time
	width    int
	finished bool
}

// startProgress создаёт бар и сразу рисует нулевое состояние. Если out == nil, бара нет.
func startProgress(out io.Writer, label string, total int64) *progressBar {
	if out == nil {
		return nil
	}

	p := &progressBar{out: out, label: label, total: total}
	p.mu.Lock()
	p.drawLocked()
	p.mu.Unlock()

	return p
}

func (p *progressBar) Write(b []byte) (int, error) {
	p.add(int64(len(b)))
	return len(b), nil
}

func (p *progressBar) add(n int64) {
	if p == nil || n <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.done += n
	if time.Since(p.drawnAt) >= redrawEvery {
		p.drawLocked()
	}
}

// finish рисует итоговую строку: ✓ при err == nil, иначе ✗ с текстом ошибки.
// Повторные вызовы ничего не делают.
func (p *progressBar) finish(err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true

	mark := " ✓"
	if err != nil {
		mark = " ✗ " + err.Error()
	}
	line := p.line() + mark
	fmt.Fprintf(p.out, "\r%s%s\n", line, padding(p.width, len(line)))
}

func (p *progressBar) drawLocked() {
	line := p.line()
	fmt.Fprintf(p.out, "\r%s%s", line, padding(p.width, len(line)))
	p.width = len(line)
	p.drawnAt = time.Now()
}

func (p *progressBar) line() string {
	if p.total <= 0 {
		return fmt.Sprintf("%s %s transferred", p.label, humanize.Bytes(uint64(p.done)))
	}

	ratio := min(float64(p.done)/float64(p.total), 1)
	filled := int(ratio*barWidth + 0.5)

	return fmt.Sprintf("%s [%s%s] %3d%% %s/%s",
		p.label,
		strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled),
		int(ratio*100+0.5),
		humanize.Bytes(uint64(p.done)), humanize.Bytes(uint64(p.total)),
	)
}

// padding затирает хвост предыдущей, более длинной строки.
func padding(prev, cur int) string {
	if prev > cur {
		return strings.Repeat(" ", prev-cur)
	}
	return ""
}

// progressBody считает байты тела ответа и закрывает бар на EOF, ошибке или Close.
type progressBody struct {
	io.ReadCloser
	bar *progressBar
}

func (b progressBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.bar.add(int64(n))
	switch {
	case err == io.EOF: //nolint:errorlint
		b.bar.finish(nil)
	case err != nil:
		b.bar.finish(err)
	}
	return n, err
}

func (b progressBody) Close() error {
	err := b.ReadCloser.Close()
	b.bar.finish(err)
	return err
}
