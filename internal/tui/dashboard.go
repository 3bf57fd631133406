// Package tui renders a live dashboard over a state container.
//
// Each derived path of the container gets its own row and its own
// subscription; rows flash when their path fires and fade over
// subsequent ticks, making selective dispatch visible: editing one
// leaf highlights exactly one row.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pathstore/internal/store"
	"github.com/dshills/pathstore/internal/store/value"
)

const tickInterval = 120 * time.Millisecond

// Dashboard drives the terminal UI for one container.
type Dashboard struct {
	screen    tcell.Screen
	container *store.Container

	mu       sync.Mutex
	heat     map[string]int
	paths    []string
	selected int

	quit chan struct{}
	once sync.Once
}

// New creates a dashboard bound to the container's derived paths.
// The screen must already be initialized; the dashboard takes over
// drawing but not screen lifecycle.
func New(screen tcell.Screen, container *store.Container) *Dashboard {
	d := &Dashboard{
		screen:    screen,
		container: container,
		heat:      make(map[string]int),
		paths:     container.Listeners(),
		quit:      make(chan struct{}),
	}

	// One subscription per row so a notification identifies its path.
	for _, p := range d.paths {
		p := p
		container.AddListeners(func(value.Node) { d.markChanged(p) }, []string{p})
	}
	return d
}

// Run blocks until the user quits, drawing on every event and decaying
// highlights on a ticker.
func (d *Dashboard) Run() error {
	go d.tick()
	defer d.Stop()

	d.draw()
	for {
		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventInterrupt:
			d.decay()
		case *tcell.EventKey:
			if done, err := d.handleKey(ev); done || err != nil {
				return err
			}
		case nil:
			return nil
		}
		d.draw()
	}
}

// Stop ends the ticker goroutine and releases the row subscriptions.
func (d *Dashboard) Stop() {
	d.once.Do(func() {
		close(d.quit)
		d.container.Unsubscribe(d.paths)
	})
}

func (d *Dashboard) tick() {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-d.quit:
			return
		}
	}
}

func (d *Dashboard) handleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		d.moveSelection(-1)
		return false, nil
	case tcell.KeyDown:
		d.moveSelection(1)
		return false, nil
	}

	switch ev.Rune() {
	case 'q':
		return true, nil
	case 'r':
		d.container.Reset()
		return false, nil
	case '+', '=':
		return false, d.adjustSelected(1)
	case '-':
		return false, d.adjustSelected(-1)
	}
	return false, nil
}

func (d *Dashboard) moveSelection(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.paths) == 0 {
		return
	}
	d.selected = (d.selected + delta + len(d.paths)) % len(d.paths)
}

// adjustSelected increments or decrements the selected leaf when it
// holds an integer; other leaf types are left alone.
func (d *Dashboard) adjustSelected(delta int64) error {
	d.mu.Lock()
	if d.selected >= len(d.paths) {
		d.mu.Unlock()
		return nil
	}
	p := d.paths[d.selected]
	d.mu.Unlock()

	cur, ok := d.container.GetPath(p)
	if !ok {
		return nil
	}
	n, ok := cur.Prim().(int64)
	if !ok {
		return nil
	}
	return d.container.Set(partialFor(p, value.Int(n+delta)))
}

// partialFor builds the minimal partial that sets leaf at path. Array
// index segments become index-keyed object fragments, which the merger
// treats as sparse array overrides.
func partialFor(p string, leaf value.Node) value.Node {
	segs := strings.Split(p, ".")
	node := leaf
	for i := len(segs) - 1; i >= 0; i-- {
		node = value.Object(map[string]value.Node{segs[i]: node})
	}
	return node
}

func (d *Dashboard) markChanged(p string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.heat[p] = maxHeat
}

func (d *Dashboard) decay() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for p, h := range d.heat {
		if h <= 1 {
			delete(d.heat, p)
			continue
		}
		d.heat[p] = h - 1
	}
}

func (d *Dashboard) draw() {
	d.mu.Lock()
	paths := d.paths
	selected := d.selected
	heat := make(map[string]int, len(d.heat))
	for p, h := range d.heat {
		heat[p] = h
	}
	d.mu.Unlock()

	d.screen.Clear()
	width, height := d.screen.Size()

	title := fmt.Sprintf(" pathstore: %s ", d.container.Key())
	drawText(d.screen, 0, 0, tcell.StyleDefault.Bold(true), title)
	drawText(d.screen, 0, 1, tcell.StyleDefault.Dim(true),
		" up/down select · +/- adjust ints · r reset · q quit")

	row := 3
	for i, p := range paths {
		if row >= height-1 {
			break
		}
		style := heatStyle(heat[p])
		marker := "  "
		if i == selected {
			marker = "> "
			style = style.Underline(true)
		}
		val := "<gone>"
		if n, ok := d.container.GetPath(p); ok {
			val = n.String()
		}
		line := fmt.Sprintf("%s%-28s %s", marker, p, val)
		if len(line) > width {
			line = line[:width]
		}
		drawText(d.screen, 0, row, style, line)
		row++
	}

	// Full-state dump below the rows.
	if dump, err := d.container.Get().PrettyJSON(); err == nil {
		row++
		for _, line := range strings.Split(strings.TrimRight(string(dump), "\n"), "\n") {
			if row >= height {
				break
			}
			drawText(d.screen, 2, row, tcell.StyleDefault.Dim(true), line)
			row++
		}
	}

	d.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col++
	}
}
