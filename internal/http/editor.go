package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/vocabdaily/internal/utils"
	"github.com/mrlokans/vocabdaily/internal/viewstate"
)

// EditorSessions keeps one editor holder per open editor, keyed by a random
// session id handed to the client.
type EditorSessions struct {
	uc   viewstate.EditorUseCases
	opts []viewstate.EditorOption

	// ctx outlives requests so background loads are not cut short.
	ctx context.Context

	mu       sync.Mutex
	sessions map[uuid.UUID]*editorSession
}

type editorSession struct {
	holder *viewstate.EditorHolder
	// saving is held from Save until its signal is drained.
	saving sync.Mutex
}

func NewEditorSessions(ctx context.Context, uc viewstate.EditorUseCases, opts ...viewstate.EditorOption) *EditorSessions {
	return &EditorSessions{
		uc:       uc,
		opts:     opts,
		ctx:      ctx,
		sessions: make(map[uuid.UUID]*editorSession),
	}
}

// Open starts an editor for wordID, or for a new word when wordID is zero.
func (s *EditorSessions) Open(wordID uint) uuid.UUID {
	holder := viewstate.NewEditorHolder(s.ctx, s.uc, wordID, s.opts...)
	id := uuid.New()

	s.mu.Lock()
	s.sessions[id] = &editorSession{holder: holder}
	s.mu.Unlock()
	return id
}

func (s *EditorSessions) Get(id uuid.UUID) (*viewstate.EditorHolder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return session.holder, true
}

// Save commits the draft of session id and returns the signal it produced.
// Saves on one session run one at a time; ok is false when the session is
// gone, including when a concurrent save already committed it.
func (s *EditorSessions) Save(ctx context.Context, id uuid.UUID) (signal viewstate.Signal, ok bool, err error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	session.saving.Lock()
	defer session.saving.Unlock()

	s.mu.Lock()
	current := s.sessions[id]
	s.mu.Unlock()
	if current != session {
		return nil, false, nil
	}

	if err := session.holder.Handle(ctx, viewstate.Save{}); err != nil {
		return nil, true, err
	}

	select {
	case signal = <-session.holder.Signals():
	default:
		return nil, true, errNoSaveSignal
	}

	if _, saved := signal.(viewstate.Saved); saved {
		s.Close(id)
	}
	return signal, true, nil
}

// Close discards a session and reports whether it existed.
func (s *EditorSessions) Close(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *EditorSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

var errNoSaveSignal = errors.New("save produced no signal")

type OpenEditorRequest struct {
	ID uint `json:"id"`
}

type OpenEditorResponse struct {
	Session string `json:"session"`
}

type EditorStateResponse struct {
	viewstate.EditorState
	ColorHex string `json:"color_hex"`
	Loaded   bool   `json:"loaded"`
}

// EditorEventRequest carries one editor event. Type is one of enter_term,
// enter_description, change_focus or change_color.
type EditorEventRequest struct {
	Type    string `json:"type" binding:"required"`
	Value   string `json:"value"`
	Field   string `json:"field"`
	Focused bool   `json:"focused"`
	Color   string `json:"color"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}

type EditorController struct {
	sessions *EditorSessions
}

func NewEditorController(sessions *EditorSessions) *EditorController {
	return &EditorController{sessions: sessions}
}

// Open handles POST /api/editor
func (ec *EditorController) Open(c *gin.Context) {
	var req OpenEditorRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	id := ec.sessions.Open(req.ID)
	respondCreated(c, OpenEditorResponse{Session: id.String()})
}

// State handles GET /api/editor/:session
func (ec *EditorController) State(c *gin.Context) {
	holder, ok := ec.holder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateResponse(holder))
}

// Event handles POST /api/editor/:session/events
func (ec *EditorController) Event(c *gin.Context) {
	holder, ok := ec.holder(c)
	if !ok {
		return
	}

	var req EditorEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "type is required")
		return
	}

	event, err := editorEvent(req)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := holder.Handle(c.Request.Context(), event); err != nil {
		respondInternalError(c, err, "editor event")
		return
	}
	c.JSON(http.StatusOK, stateResponse(holder))
}

// Save handles POST /api/editor/:session/save
// A successful save closes the session; a rejected one keeps the draft.
func (ec *EditorController) Save(c *gin.Context) {
	id, ok := parseSessionParam(c)
	if !ok {
		return
	}

	signal, ok, err := ec.sessions.Save(c.Request.Context(), id)
	if !ok {
		respondNotFound(c, "editor session")
		return
	}
	if err != nil {
		respondInternalError(c, err, "save word")
		return
	}

	switch s := signal.(type) {
	case viewstate.Saved:
		c.JSON(http.StatusOK, SaveResponse{Saved: true})
	case viewstate.ShowMessage:
		respondError(c, http.StatusUnprocessableEntity, s.Text)
	default:
		respondInternalError(c, errNoSaveSignal, "save word")
	}
}

// Discard handles DELETE /api/editor/:session
func (ec *EditorController) Discard(c *gin.Context) {
	id, ok := parseSessionParam(c)
	if !ok {
		return
	}
	if !ec.sessions.Close(id) {
		respondNotFound(c, "editor session")
		return
	}
	respondSuccess(c, "draft discarded")
}

func (ec *EditorController) holder(c *gin.Context) (*viewstate.EditorHolder, bool) {
	id, ok := parseSessionParam(c)
	if !ok {
		return nil, false
	}
	holder, ok := ec.sessions.Get(id)
	if !ok {
		respondNotFound(c, "editor session")
		return nil, false
	}
	return holder, true
}

func parseSessionParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session"))
	if err != nil {
		respondBadRequest(c, "invalid session")
		return uuid.Nil, false
	}
	return id, true
}

func stateResponse(holder *viewstate.EditorHolder) EditorStateResponse {
	loaded := false
	select {
	case <-holder.Loaded():
		loaded = true
	default:
	}

	state := holder.State()
	return EditorStateResponse{
		EditorState: state,
		ColorHex:    utils.ColorToHexARGB(state.Color),
		Loaded:      loaded,
	}
}

func editorEvent(req EditorEventRequest) (viewstate.EditorEvent, error) {
	switch req.Type {
	case "enter_term":
		return viewstate.EnterTerm{Text: req.Value}, nil
	case "enter_description":
		return viewstate.EnterDescription{Text: req.Value}, nil
	case "change_focus":
		field := viewstate.InputField(req.Field)
		if field != viewstate.TermInput && field != viewstate.DescriptionInput {
			return nil, fmt.Errorf("unknown field %q", req.Field)
		}
		return viewstate.ChangeFocus{Field: field, Focused: req.Focused}, nil
	case "change_color":
		color, err := utils.HexARGBToColor(req.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q", req.Color)
		}
		return viewstate.ChangeColor{Color: color}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", req.Type)
	}
}
