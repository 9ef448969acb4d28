package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/viewstate"
)

func (s *testServer) openEditor(t *testing.T, body any) string {
	t.Helper()
	w := s.do(t, "POST", "/api/editor", body)
	require.Equal(t, http.StatusCreated, w.Code)

	session := decode[OpenEditorResponse](t, w).Session
	_, err := uuid.Parse(session)
	require.NoError(t, err)
	return session
}

func (s *testServer) sendEvent(t *testing.T, session string, event EditorEventRequest) EditorStateResponse {
	t.Helper()
	w := s.do(t, "POST", "/api/editor/"+session+"/events", event)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[EditorStateResponse](t, w)
}

func TestEditorController_NewWord(t *testing.T) {
	s := newTestServer(t)
	session := s.openEditor(t, nil)

	w := s.do(t, "GET", "/api/editor/"+session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[EditorStateResponse](t, w)
	assert.True(t, state.Loaded)
	assert.True(t, state.Term.HintVisible)
	assert.Equal(t, entities.ColorViolet, state.Color)

	s.sendEvent(t, session, EditorEventRequest{Type: "enter_term", Value: "kiwi"})
	s.sendEvent(t, session, EditorEventRequest{Type: "enter_description", Value: "fuzzy fruit"})
	state = s.sendEvent(t, session, EditorEventRequest{Type: "change_color", Color: "#FFE7ED9B"})
	assert.Equal(t, "#FFE7ED9B", state.ColorHex)
	assert.Equal(t, "kiwi", state.Term.Text)

	w = s.do(t, "POST", "/api/editor/"+session+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[SaveResponse](t, w).Saved)

	assert.Equal(t, []entities.Word{{
		ID:          1,
		Term:        "kiwi",
		Description: "fuzzy fruit",
		Timestamp:   1_700_000_000_000,
		Color:       entities.ColorLightGreen,
	}}, s.store.Words())
	assert.Equal(t, 0, s.editors.Len(), "session closes after saving")
	s.waitForWords(t, 1)
}

func TestEditorController_EditExisting(t *testing.T) {
	s := newTestServer(t, banana)
	session := s.openEditor(t, OpenEditorRequest{ID: banana.ID})

	var state EditorStateResponse
	require.Eventually(t, func() bool {
		state = decode[EditorStateResponse](t, s.do(t, "GET", "/api/editor/"+session, nil))
		return state.Loaded
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, "banana", state.Term.Text)
	assert.False(t, state.Term.HintVisible)
	assert.Equal(t, banana.ID, state.WordID)

	s.sendEvent(t, session, EditorEventRequest{Type: "enter_description", Value: "a yellow fruit"})
	w := s.do(t, "POST", "/api/editor/"+session+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stored := s.store.Words()
	require.Len(t, stored, 1)
	assert.Equal(t, banana.ID, stored[0].ID)
	assert.Equal(t, "a yellow fruit", stored[0].Description)
}

func TestEditorController_SaveRejected(t *testing.T) {
	s := newTestServer(t)
	session := s.openEditor(t, nil)

	s.sendEvent(t, session, EditorEventRequest{Type: "enter_description", Value: "no term"})
	w := s.do(t, "POST", "/api/editor/"+session+"/save", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "the word can't be empty", decode[ErrorResponse](t, w).Error)
	assert.Equal(t, 1, s.editors.Len(), "draft survives a rejected save")
	assert.Equal(t, 0, s.store.InsertCalls())
}

func TestEditorController_Focus(t *testing.T) {
	s := newTestServer(t)
	session := s.openEditor(t, nil)

	state := s.sendEvent(t, session, EditorEventRequest{Type: "change_focus", Field: string(viewstate.TermInput), Focused: true})
	assert.False(t, state.Term.HintVisible)
	assert.True(t, state.Description.HintVisible)
}

func TestEditorController_BadEvents(t *testing.T) {
	s := newTestServer(t)
	session := s.openEditor(t, nil)

	tests := []struct {
		name  string
		event EditorEventRequest
	}{
		{"unknown type", EditorEventRequest{Type: "shout"}},
		{"unknown field", EditorEventRequest{Type: "change_focus", Field: "title"}},
		{"bad color", EditorEventRequest{Type: "change_color", Color: "blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, "POST", "/api/editor/"+session+"/events", tt.event)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEditorController_Sessions(t *testing.T) {
	s := newTestServer(t)

	t.Run("invalid session id", func(t *testing.T) {
		w := s.do(t, "GET", "/api/editor/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := s.do(t, "GET", "/api/editor/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("discard", func(t *testing.T) {
		session := s.openEditor(t, nil)

		w := s.do(t, "DELETE", "/api/editor/"+session, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, "DELETE", "/api/editor/"+session, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEditorController_ConcurrentSavesInsertOnce(t *testing.T) {
	s := newTestServer(t)
	session := s.openEditor(t, nil)
	s.sendEvent(t, session, EditorEventRequest{Type: "enter_term", Value: "kiwi"})
	s.sendEvent(t, session, EditorEventRequest{Type: "enter_description", Value: "fuzzy fruit"})

	const saves = 8
	codes := make([]int, saves)
	var wg sync.WaitGroup
	for i := range saves {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, httptest.NewRequest("POST", "/api/editor/"+session+"/save", nil))
			codes[i] = w.Code
		}()
	}
	wg.Wait()

	counts := make(map[int]int)
	for _, code := range codes {
		counts[code]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 1, http.StatusNotFound: saves - 1}, counts)
	assert.Equal(t, 1, s.store.InsertCalls())
	assert.Len(t, s.store.Words(), 1)
	assert.Equal(t, 0, s.editors.Len())
}

func TestEditorSessions_SaveUnknownSession(t *testing.T) {
	s := newTestServer(t)

	signal, ok, err := s.editors.Save(context.Background(), uuid.New())

	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Nil(t, signal)
}

func TestEditorSessions_RejectedSaveKeepsSession(t *testing.T) {
	s := newTestServer(t)
	id, err := uuid.Parse(s.openEditor(t, nil))
	require.NoError(t, err)

	for range 2 {
		signal, ok, err := s.editors.Save(context.Background(), id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, viewstate.ShowMessage{Text: "the word can't be empty"}, signal)
	}
	assert.Equal(t, 1, s.editors.Len())
	assert.Equal(t, 0, s.store.InsertCalls())
}
