// internal/adapters/output/lines.go
package output

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// LineWriter escribe un nombre por línea. Es la salida por defecto (stdout).
type LineWriter struct {
	mu     sync.Mutex
	dst    io.Writer
	buf    *bufio.Writer
	count  int
	closed bool
}

// NewLineWriter crea un writer sobre w. Close cierra w salvo que sea
// stdout o stderr.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{dst: w, buf: bufio.NewWriter(w)}
}

func (l *LineWriter) Write(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if _, err := l.buf.WriteString(name); err != nil {
		return err
	}
	if err := l.buf.WriteByte('\n'); err != nil {
		return err
	}
	l.count++
	return nil
}

// Count retorna cuántos nombres se han escrito.
func (l *LineWriter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close vacía el buffer. Llamadas posteriores no hacen nada.
func (l *LineWriter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	err := l.buf.Flush()
	if c, ok := l.dst.(io.Closer); ok && !isStdStream(l.dst) {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func isStdStream(w io.Writer) bool {
	return w == io.Writer(os.Stdout) || w == io.Writer(os.Stderr)
}
