// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrClosed se devuelve al escribir en un sink ya cerrado.
var ErrClosed = errors.New("output: sink closed")

// Document es el formato de salida con --json.
type Document struct {
	Hosts []string `json:"hosts"`
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// JSONWriter acumula los nombres y escribe un único Document al cerrar.
type JSONWriter struct {
	mu     sync.Mutex
	dst    io.Writer
	hosts  []string
	names  []string
	pretty bool
	closed bool
}

// NewJSONWriter crea un writer para los hosts consultados.
func NewJSONWriter(w io.Writer, hosts []string, pretty bool) *JSONWriter {
	return &JSONWriter{
		dst:    w,
		hosts:  append([]string(nil), hosts...),
		names:  []string{},
		pretty: pretty,
	}
}

func (j *JSONWriter) Write(name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}
	j.names = append(j.names, name)
	return nil
}

// Close codifica el documento. Con cero nombres se escribe igualmente,
// con "names": [].
func (j *JSONWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	doc := Document{Hosts: j.hosts, Count: len(j.names), Names: j.names}
	if doc.Hosts == nil {
		doc.Hosts = []string{}
	}

	enc := json.NewEncoder(j.dst)
	if j.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if c, ok := j.dst.(io.Closer); ok && !isStdStream(j.dst) {
		return c.Close()
	}
	return nil
}
