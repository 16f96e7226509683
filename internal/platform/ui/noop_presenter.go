// internal/platform/ui/noop_presenter.go
package ui

import "vita/internal/core/ports"

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para --silent.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Start(info RunInfo)                   {}
func (n *NoopPresenter) SourceFinished(outcome ports.Outcome) {}
func (n *NoopPresenter) Finish(summary Summary)               {}
func (n *NoopPresenter) Close() error                         { return nil }
