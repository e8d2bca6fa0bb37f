package level

import (
	"time"

	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
)

// Textbox reveals dialogue lines by id
// A line completes on confirm once fully revealed, or after the read time
type Textbox struct {
	lines map[string]string

	active   *lineTask
	readTime time.Duration
}

// lineTask is the host.Task handed to the sequencer for one line
type lineTask struct {
	id       string
	text     string
	elapsed  time.Duration
	revealed bool
	done     bool
}

func (l *lineTask) Done() bool { return l.done }

func NewTextbox(lines map[string]string) *Textbox {
	if lines == nil {
		lines = make(map[string]string)
	}
	return &Textbox{lines: lines, readTime: parameter.TextboxReadTime}
}

// Say opens the line for id, replacing any open line
// Unknown ids show the id itself
func (tb *Textbox) Say(id string) host.Task {
	if tb.active != nil {
		tb.active.done = true
	}
	text, ok := tb.lines[id]
	if !ok {
		text = "{" + id + "}"
	}
	tb.active = &lineTask{id: id, text: text}
	return tb.active
}

// Confirm reveals the rest of the line, or closes it if already revealed
func (tb *Textbox) Confirm() {
	l := tb.active
	if l == nil {
		return
	}
	if !l.revealed {
		l.revealed = true
		l.elapsed = tb.revealTime(l)
		return
	}
	tb.close()
}

// Close dismisses the open line
func (tb *Textbox) Close() {
	if tb.active != nil {
		tb.close()
	}
}

func (tb *Textbox) close() {
	tb.active.done = true
	tb.active = nil
}

// Update advances the reveal and auto-closes after the read time
func (tb *Textbox) Update(dt time.Duration) {
	l := tb.active
	if l == nil {
		return
	}
	l.elapsed += dt
	reveal := tb.revealTime(l)
	if l.elapsed >= reveal {
		l.revealed = true
	}
	if l.elapsed >= reveal+tb.readTime {
		tb.close()
	}
}

func (tb *Textbox) revealTime(l *lineTask) time.Duration {
	runes := len([]rune(l.text))
	return time.Duration(float64(runes) / parameter.TextboxCharsPerSecond * float64(time.Second))
}

// Visible returns the open line's id and its revealed prefix
func (tb *Textbox) Visible() (id, text string, open bool) {
	l := tb.active
	if l == nil {
		return "", "", false
	}
	runes := []rune(l.text)
	n := len(runes)
	if !l.revealed {
		n = int(l.elapsed.Seconds() * parameter.TextboxCharsPerSecond)
		if n > len(runes) {
			n = len(runes)
		}
	}
	return l.id, string(runes[:n]), true
}
