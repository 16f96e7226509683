// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"vita/internal/core/domain"
	"vita/internal/core/ports"
)

// PTermPresenter implementa Presenter usando pterm para colores, tablas y
// cajas. Escribe siempre en w (stderr); stdout queda para los resultados.
type PTermPresenter struct {
	mu sync.Mutex

	w     io.Writer
	info  RunInfo
	start time.Time

	// Una línea por unidad terminada; con muchos hosts conviene desactivarlo.
	perUnit bool

	rows map[string]*sourceRow
}

// sourceRow acumula los resultados de una fuente sobre todos los hosts.
type sourceRow struct {
	names     int
	units     int
	succeeded int
	failed    int
	worst     Status
	lastErr   string
}

func (r *sourceRow) status() Status {
	if r.succeeded > 0 {
		return StatusSuccess
	}
	return r.worst
}

// NewPTermPresenter crea un presenter que escribe en w.
func NewPTermPresenter(w io.Writer, perUnit bool) *PTermPresenter {
	return &PTermPresenter{
		w:       w,
		perUnit: perUnit,
		rows:    make(map[string]*sourceRow),
	}
}

// Start muestra el header y la configuración de la ejecución
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.start = time.Now()
	for _, name := range info.Sources {
		p.rows[name] = &sourceRow{}
	}

	header := pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint("vita - passive subdomain discovery")
	fmt.Fprintln(p.w, header)

	content := fmt.Sprintf("%s Hosts: %s\n", IconTarget, StylePrimary.Sprint(strings.Join(info.Hosts, ", ")))
	content += fmt.Sprintf("%s Sources: %d (%s)\n", IconSources, len(info.Sources), info.Profile)
	content += fmt.Sprintf("   Filter: %s\n", info.Filter)
	content += fmt.Sprintf("   Concurrency: %d\n", info.Concurrency)
	content += fmt.Sprintf("%s Timeout: %ds", IconTime, info.TimeoutS)
	if info.RunID != "" {
		content += "\n   Run: " + StyleSecondary.Sprint(info.RunID)
	}

	box := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan))
	fmt.Fprintln(p.w, box.Sprint(content))
	fmt.Fprintln(p.w)
}

// SourceFinished registra el resultado de una unidad (host, fuente).
func (p *PTermPresenter) SourceFinished(o ports.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	row, ok := p.rows[o.Source]
	if !ok {
		row = &sourceRow{}
		p.rows[o.Source] = row
	}

	status := StatusFromKind(o.Kind)
	row.units++
	row.names += o.Names
	if o.Failed() {
		row.failed++
		row.lastErr = o.Err.Error()
		if status > row.worst {
			row.worst = status
		}
	} else {
		row.succeeded++
	}

	if !p.perUnit {
		return
	}
	line := fmt.Sprintf("  %s %-15s %s", status.Symbol(), o.Source, o.Host)
	if o.Names > 0 {
		line += fmt.Sprintf(" %s %d", IconNames, o.Names)
	}
	if o.Duration > 0 {
		line += fmt.Sprintf(" (%s)", formatDuration(o.Duration))
	}
	if o.Failed() && o.Kind != domain.KindSource {
		line += " " + StyleSecondary.Sprint(o.Kind.String())
	}
	fmt.Fprintln(p.w, status.Style().Sprint(line))
}

// Finish muestra la tabla por fuente y las estadísticas finales
func (p *PTermPresenter) Finish(s Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.Duration == 0 && !p.start.IsZero() {
		s.Duration = time.Since(p.start)
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, pterm.DefaultSection.WithLevel(2).Sprint("Sources"))

	names := make([]string, 0, len(p.rows))
	for name := range p.rows {
		names = append(names, name)
	}
	sort.Strings(names)

	data := pterm.TableData{{"Source", "Status", "Names", "Failed", "Last error"}}
	for _, name := range names {
		row := p.rows[name]
		status := row.status()
		if row.units == 0 {
			data = append(data, []string{name, StyleSecondary.Sprint("not run"), "0", "0", ""})
			continue
		}
		data = append(data, []string{
			name,
			status.Style().Sprint(status.Symbol() + " " + status.String()),
			fmt.Sprintf("%d", row.names),
			fmt.Sprintf("%d", row.failed),
			truncate(row.lastErr, 60),
		})
	}
	if table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender(); err == nil {
		fmt.Fprintln(p.w, table)
	}

	content := fmt.Sprintf("%s Duration: %s\n", IconTime, StyleSuccess.Sprint(formatDuration(s.Duration)))
	content += fmt.Sprintf("   Units: %d (%s ok, %s failed)\n", s.Units,
		StyleSuccess.Sprint(s.Succeeded), failedStyle(s.Failed()).Sprint(s.Failed()))
	for _, kind := range []domain.ErrorKind{domain.KindSource, domain.KindAuth, domain.KindKey, domain.KindTask, domain.KindUnexpected} {
		if n := s.Failures[kind]; n > 0 {
			content += fmt.Sprintf("     %s: %s\n", kind, StyleWarning.Sprint(n))
		}
	}
	content += fmt.Sprintf("   Received: %d\n", s.Raw)
	content += fmt.Sprintf("%s Names: %s", IconNames, StylePrimary.Sprint(s.Names))

	box := pterm.DefaultBox.
		WithTitle("Run Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))
	fmt.Fprintln(p.w, box.Sprint(content))
}

// Close no retiene recursos; existe para cumplir Presenter.
func (p *PTermPresenter) Close() error {
	return nil
}

func failedStyle(n int) pterm.RGBStyle {
	if n > 0 {
		return StyleError
	}
	return StyleSecondary
}
