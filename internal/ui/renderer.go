package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/overlay"
)

// Renderer turns board views and notices into frames written to out
type Renderer struct {
	root *Root
	out  io.Writer

	mu sync.Mutex
	// frame identifies the query and open job of the last rendered view
	frame    string
	hasFrame bool
}

// NewRenderer renders into root and flushes every frame to out
func NewRenderer(root *Root, out io.Writer) *Renderer {
	return &Renderer{root: root, out: out}
}

// Attach subscribes the renderer to b. The returned function detaches it.
func (r *Renderer) Attach(b *board.Board) func() {
	stopViews := b.SubscribeViews(r.Render)
	stopNotices := b.SubscribeNotices(r.Notify)
	return func() {
		stopViews()
		stopNotices()
	}
}

// Render draws a full frame for v. A notice stays on screen until the query
// changes or the overlay opens, closes or switches job.
func (r *Renderer) Render(v board.View) {
	if r.moved(v) {
		_ = r.root.Update(LayerNotice, func(l *Layer) { l.Clear() })
	}
	_ = r.root.Update(LayerHeader, func(l *Layer) { l.Set(headerLines(v)) })
	_ = r.root.Update(LayerList, func(l *Layer) { l.Set(listLines(v)) })
	_ = r.root.Update(LayerPortal, func(l *Layer) { l.Set(overlayLines(v.Overlay)) })
	r.flush()
}

func (r *Renderer) moved(v board.View) bool {
	frame := v.Query + "\x00"
	if v.Overlay.Visible && v.Overlay.Job != nil {
		frame += v.Overlay.Job.ID.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	changed := r.hasFrame && frame != r.frame
	r.frame, r.hasFrame = frame, true
	return changed
}

// Notify draws n below the current frame
func (r *Renderer) Notify(n board.Notice) {
	_ = r.root.Update(LayerNotice, func(l *Layer) { l.Set(noticeLines(n)) })
	r.flush()
}

// Scroll moves the list viewport and redraws
func (r *Renderer) Scroll(delta int) {
	_ = r.root.Update(LayerList, func(l *Layer) { l.Scroll(delta) })
	r.flush()
}

func (r *Renderer) flush() {
	if err := r.root.Render(r.out); err != nil {
		fmt.Fprintf(r.out, "render: %v\n", err)
	}
}

func headerLines(v board.View) []string {
	line := fmt.Sprintf("%s  %d of %d jobs", pterm.LightCyan("Jobs"), len(v.Jobs), v.Total)
	if v.Query != "" {
		line += fmt.Sprintf("  matching %q", v.Query)
	}
	if v.User != nil {
		line += "  " + pterm.Gray("signed in as "+string(v.User.ID))
	}
	return []string{line}
}

func listLines(v board.View) []string {
	switch v.LoadState {
	case job.LoadIdle, job.Loading:
		return []string{pterm.Info.Sprint("Loading jobs...")}
	case job.LoadFailed:
		return []string{
			pterm.Error.Sprint("Could not load jobs: ", v.LoadErr),
			"Type 'reload' to try again.",
		}
	}

	if len(v.Jobs) == 0 {
		return []string{pterm.Warning.Sprint("No jobs match your search.")}
	}

	table, err := JobTable(v.Jobs)
	if err != nil {
		return []string{pterm.Error.Sprint(err)}
	}
	return splitLines(table)
}

// JobTable renders jobs as a table with a header row
func JobTable(jobs []domain.Job) (string, error) {
	data := pterm.TableData{{"ID", "Title", "Company"}}
	for _, j := range jobs {
		data = append(data, []string{j.ID.String(), j.Title, j.Company})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func overlayLines(v overlay.View) []string {
	if !v.Visible || v.Job == nil {
		return nil
	}

	j := v.Job
	var body strings.Builder
	fmt.Fprintf(&body, "%s\n\n%s\n", pterm.LightCyan(j.Company), j.Description)
	if j.Requirements != "" {
		fmt.Fprintf(&body, "\n%s %s\n", pterm.Yellow("Requirements:"), j.Requirements)
	}
	body.WriteString("\n")
	if v.UseExisting != nil {
		body.WriteString(affordanceLine("existing", v.UseExisting) + "\n")
	}
	if v.Upload != nil {
		body.WriteString(affordanceLine("upload <file.pdf>", v.Upload) + "\n")
	}
	body.WriteString(pterm.Gray("[close] Close"))
	if v.Busy {
		body.WriteString("\n" + pterm.Info.Sprint("Submitting application..."))
	}

	return splitLines(pterm.DefaultBox.WithTitle(j.Title).Sprint(body.String()))
}

func affordanceLine(cmd string, a *overlay.Affordance) string {
	label := a.Label
	if a.Accept != "" {
		label += " (" + a.Accept + ")"
	}
	if !a.Enabled {
		return pterm.Gray("[" + cmd + "] " + label + " - unavailable")
	}
	return pterm.Green("["+cmd+"]") + " " + label
}

func noticeLines(n board.Notice) []string {
	if n.Kind == board.NoticeSuccess {
		return []string{pterm.Success.Sprint(n.Message)}
	}
	lines := []string{pterm.Error.Sprint(n.Message)}
	if n.Hint != "" {
		lines = append(lines, pterm.Info.Sprint(n.Hint))
	}
	return lines
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
