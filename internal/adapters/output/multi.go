// internal/adapters/output/multi.go
package output

import (
	"errors"

	"vita/internal/core/ports"
)

// MultiSink reparte cada nombre entre varios sinks (stdout + --output).
type MultiSink struct {
	sinks []ports.NameSink
}

// NewMultiSink ignora los sinks nil.
func NewMultiSink(sinks ...ports.NameSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Write escribe en todos los sinks aunque alguno falle.
func (m *MultiSink) Write(name string) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
