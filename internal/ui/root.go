// Package ui renders board frames as text with pterm.
//
// A frame is composed from named layers owned by a Root. The job list lives
// in a clipped, scrollable layer; the detail overlay is attached to the
// portal layer at the root, so the list viewport never clips it.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Layer names
const (
	LayerHeader = "header"
	LayerList   = "list"
	LayerPortal = "portal"
	LayerNotice = "notice"
)

// Layer is a block of lines, optionally clipped to a viewport
type Layer struct {
	name     string
	viewport int // 0 = unclipped
	offset   int
	lines    []string
}

// Name returns the layer name
func (l *Layer) Name() string { return l.name }

// Set replaces the layer content and keeps the scroll offset in range
func (l *Layer) Set(lines []string) {
	l.lines = lines
	l.Scroll(0)
}

// Clear empties the layer
func (l *Layer) Clear() { l.Set(nil) }

// Scroll moves the viewport by delta lines
func (l *Layer) Scroll(delta int) {
	l.offset += delta
	limit := 0
	if l.viewport > 0 && len(l.lines) > l.viewport {
		limit = len(l.lines) - l.viewport
	}
	if l.offset > limit {
		l.offset = limit
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Visible returns the lines inside the viewport
func (l *Layer) Visible() []string {
	if l.viewport == 0 || len(l.lines) <= l.viewport {
		return l.lines
	}
	end := l.offset + l.viewport
	if end > len(l.lines) {
		end = len(l.lines)
	}
	return l.lines[l.offset:end]
}

// Hidden reports how many lines fall outside the viewport
func (l *Layer) Hidden() int {
	return len(l.lines) - len(l.Visible())
}

// Root stacks layers bottom to top
type Root struct {
	mu     sync.Mutex
	layers []*Layer
}

// NewRoot builds the standard layer stack with a list viewport of the given height
func NewRoot(listViewport int) *Root {
	return &Root{layers: []*Layer{
		{name: LayerHeader},
		{name: LayerList, viewport: listViewport},
		{name: LayerPortal},
		{name: LayerNotice},
	}}
}

// Update runs fn with the named layer locked
func (r *Root) Update(name string, fn func(*Layer)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.layers {
		if l.name == name {
			fn(l)
			return nil
		}
	}
	return fmt.Errorf("ui: unknown layer %q", name)
}

// Render writes every non-empty layer in stacking order
func (r *Root) Render(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	for _, l := range r.layers {
		visible := l.Visible()
		if len(visible) == 0 {
			continue
		}
		for _, line := range visible {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if hidden := l.Hidden(); hidden > 0 {
			fmt.Fprintf(&b, "  … %d more (scroll with 'more'/'back')\n", hidden)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
