package viewstate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

// EditorUseCases is what the editor holder needs from vocabulary.UseCases.
type EditorUseCases interface {
	GetWord(ctx context.Context, id uint) (*entities.Word, error)
	AddWord(ctx context.Context, word *entities.Word) error
}

var _ EditorUseCases = (*vocabulary.UseCases)(nil)

// InputField names one of the two text inputs of the editor.
type InputField string

const (
	TermInput        InputField = "term"
	DescriptionInput InputField = "description"
)

type TextField struct {
	Text        string `json:"text"`
	HintVisible bool   `json:"hint_visible"`
}

type EditorState struct {
	Term        TextField `json:"term"`
	Description TextField `json:"description"`
	Color       int32     `json:"color"`
	// WordID is zero for a new entry.
	WordID uint `json:"word_id,omitempty"`
}

// EditorEvent is one of EnterTerm, EnterDescription, ChangeFocus,
// ChangeColor or Save.
type EditorEvent interface {
	editorEvent()
}

type EnterTerm struct {
	Text string
}

type EnterDescription struct {
	Text string
}

type ChangeFocus struct {
	Field   InputField
	Focused bool
}

type ChangeColor struct {
	Color int32
}

type Save struct{}

func (EnterTerm) editorEvent()        {}
func (EnterDescription) editorEvent() {}
func (ChangeFocus) editorEvent()      {}
func (ChangeColor) editorEvent()      {}
func (Save) editorEvent()             {}

// Signal is a one-shot notification for the UI: Saved or ShowMessage.
type Signal interface {
	signal()
}

type Saved struct{}

type ShowMessage struct {
	Text string
}

func (Saved) signal()       {}
func (ShowMessage) signal() {}

type EditorOption func(*EditorHolder)

// WithClock sets the source of save timestamps in unix milliseconds.
func WithClock(now func() int64) EditorOption {
	return func(h *EditorHolder) {
		h.now = now
	}
}

// WithColorPicker sets how a new entry picks its initial color.
func WithColorPicker(pick func() int32) EditorOption {
	return func(h *EditorHolder) {
		h.pickColor = pick
	}
}

type EditorHolder struct {
	uc        EditorUseCases
	now       func() int64
	pickColor func() int32

	events sync.Mutex // serializes Handle

	mu      sync.Mutex
	state   EditorState
	loadErr error

	loaded  chan struct{}
	signals chan Signal
}

// NewEditorHolder opens the editor. A non-zero wordID loads that word in the
// background; an id that matches nothing leaves the editor empty.
func NewEditorHolder(ctx context.Context, uc EditorUseCases, wordID uint, opts ...EditorOption) *EditorHolder {
	h := &EditorHolder{
		uc:        uc,
		now:       entities.NowMillis,
		pickColor: entities.RandomColor,
		loaded:    make(chan struct{}),
		signals:   make(chan Signal, 8),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.state = EditorState{
		Term:        TextField{HintVisible: true},
		Description: TextField{HintVisible: true},
		Color:       h.pickColor(),
	}

	if wordID == 0 {
		close(h.loaded)
		return h
	}

	go h.load(ctx, wordID)
	return h
}

// Loaded is closed once the initial load has finished.
func (h *EditorHolder) Loaded() <-chan struct{} {
	return h.loaded
}

// LoadErr reports a store failure during the initial load.
func (h *EditorHolder) LoadErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadErr
}

func (h *EditorHolder) State() EditorState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Signals delivers Saved and ShowMessage notifications, each once.
func (h *EditorHolder) Signals() <-chan Signal {
	return h.signals
}

// Handle applies a UI event. Validation failures on Save become a
// ShowMessage signal; store failures are returned.
func (h *EditorHolder) Handle(ctx context.Context, event EditorEvent) error {
	h.events.Lock()
	defer h.events.Unlock()

	switch ev := event.(type) {
	case EnterTerm:
		h.mu.Lock()
		h.state.Term.Text = ev.Text
		h.mu.Unlock()
	case EnterDescription:
		h.mu.Lock()
		h.state.Description.Text = ev.Text
		h.mu.Unlock()
	case ChangeFocus:
		h.mu.Lock()
		switch ev.Field {
		case TermInput:
			h.state.Term.HintVisible = hintVisible(ev.Focused, h.state.Term.Text)
		case DescriptionInput:
			h.state.Description.HintVisible = hintVisible(ev.Focused, h.state.Description.Text)
		}
		h.mu.Unlock()
	case ChangeColor:
		h.mu.Lock()
		h.state.Color = ev.Color
		h.mu.Unlock()
	case Save:
		return h.save(ctx)
	default:
		panic(fmt.Sprintf("viewstate: unhandled editor event %T", event))
	}
	return nil
}

// The hint shows only while the field is unfocused and empty.
func hintVisible(focused bool, text string) bool {
	return !focused && strings.TrimSpace(text) == ""
}

func (h *EditorHolder) load(ctx context.Context, id uint) {
	defer close(h.loaded)

	word, err := h.uc.GetWord(ctx, id)
	if err != nil {
		log.Printf("[EDITOR] Failed to load word %d: %v", id, err)
		h.mu.Lock()
		h.loadErr = err
		h.mu.Unlock()
		return
	}
	if word == nil {
		return
	}

	h.mu.Lock()
	h.state = EditorState{
		Term:        TextField{Text: word.Term},
		Description: TextField{Text: word.Description},
		Color:       word.Color,
		WordID:      word.ID,
	}
	h.mu.Unlock()
}

func (h *EditorHolder) save(ctx context.Context) error {
	h.mu.Lock()
	word := entities.Word{
		ID:          h.state.WordID,
		Term:        h.state.Term.Text,
		Description: h.state.Description.Text,
		Timestamp:   h.now(),
		Color:       h.state.Color,
	}
	h.mu.Unlock()

	err := h.uc.AddWord(ctx, &word)

	var validationErr *vocabulary.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return h.emit(ctx, ShowMessage{Text: validationErr.Message})
	case err != nil:
		return err
	}
	return h.emit(ctx, Saved{})
}

func (h *EditorHolder) emit(ctx context.Context, s Signal) error {
	select {
	case h.signals <- s:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
