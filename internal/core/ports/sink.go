// internal/core/ports/sink.go
package ports

// NameSink recibe los nombres finales, uno a uno, ya filtrados y sin duplicados.
type NameSink interface {
	Write(name string) error
	Close() error
}
