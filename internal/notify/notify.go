package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultErrorTTL   = 5 * time.Second
	DefaultSuccessTTL = 3 * time.Second
)

type Level int

const (
	LevelError Level = iota
	LevelSuccess
)

func (l Level) String() string {
	if l == LevelSuccess {
		return "success"
	}
	return "error"
}

// DismissMsg is delivered when a notification's display time runs out.
type DismissMsg struct {
	Level Level
	Seq   int
}

type channel struct {
	text string
	seq  int
	ttl  time.Duration
}

// Center holds the two transient notification channels. Each channel shows at
// most one message; posting replaces it and restarts its timer. A dismissal
// scheduled for an earlier message never clears a later one.
type Center struct {
	channels [2]channel
}

func New(errorTTL, successTTL time.Duration) *Center {
	if errorTTL <= 0 {
		errorTTL = DefaultErrorTTL
	}
	if successTTL <= 0 {
		successTTL = DefaultSuccessTTL
	}

	c := &Center{}
	c.channels[LevelError].ttl = errorTTL
	c.channels[LevelSuccess].ttl = successTTL
	return c
}

func (c *Center) Error(text string) tea.Cmd {
	return c.post(LevelError, text)
}

func (c *Center) Success(text string) tea.Cmd {
	return c.post(LevelSuccess, text)
}

func (c *Center) post(level Level, text string) tea.Cmd {
	ch := &c.channels[level]
	ch.seq++
	ch.text = text

	seq := ch.seq
	return tea.Tick(ch.ttl, func(time.Time) tea.Msg {
		return DismissMsg{Level: level, Seq: seq}
	})
}

// Dismiss clears the channel if msg belongs to the message currently shown.
// It reports whether anything was cleared.
func (c *Center) Dismiss(msg DismissMsg) bool {
	if msg.Level != LevelError && msg.Level != LevelSuccess {
		return false
	}
	ch := &c.channels[msg.Level]
	if ch.seq != msg.Seq || ch.text == "" {
		return false
	}
	ch.text = ""
	return true
}

func (c *Center) Text(level Level) string {
	return c.channels[level].text
}

// Clear empties both channels. Pending timers become no-ops.
func (c *Center) Clear() {
	for i := range c.channels {
		c.channels[i].text = ""
		c.channels[i].seq++
	}
}
