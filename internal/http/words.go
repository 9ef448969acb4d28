package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/utils"
	"github.com/mrlokans/vocabdaily/internal/viewstate"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

// WordList is the list view state the controller drives.
// viewstate.ListHolder implements it.
type WordList interface {
	State() viewstate.ListState
	Tombstone() (entities.Word, bool)
	Handle(ctx context.Context, event viewstate.ListEvent) error
}

var _ WordList = (*viewstate.ListHolder)(nil)

type WordResponse struct {
	entities.Word
	ColorHex string `json:"color_hex"`
}

type WordListResponse struct {
	Words             []WordResponse      `json:"words"`
	Ordering          vocabulary.Ordering `json:"ordering"`
	OrderPanelVisible bool                `json:"order_panel_visible"`
	CanRestore        bool                `json:"can_restore"`
}

type OrderRequest struct {
	Field     string `json:"field" binding:"required"`
	Direction string `json:"direction"`
}

type WordsController struct {
	list WordList
}

func NewWordsController(list WordList) *WordsController {
	return &WordsController{list: list}
}

func newWordResponse(word entities.Word) WordResponse {
	return WordResponse{Word: word, ColorHex: utils.ColorToHexARGB(word.Color)}
}

func (wc *WordsController) listResponse() WordListResponse {
	state := wc.list.State()
	_, canRestore := wc.list.Tombstone()

	words := make([]WordResponse, 0, len(state.Words))
	for _, word := range state.Words {
		words = append(words, newWordResponse(word))
	}

	return WordListResponse{
		Words:             words,
		Ordering:          state.Ordering,
		OrderPanelVisible: state.OrderPanelVisible,
		CanRestore:        canRestore,
	}
}

// List handles GET /api/words
func (wc *WordsController) List(c *gin.Context) {
	c.JSON(http.StatusOK, wc.listResponse())
}

// ChangeOrder handles POST /api/words/order
func (wc *WordsController) ChangeOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "field is required")
		return
	}

	ordering, err := vocabulary.ParseOrdering(req.Field, req.Direction)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := wc.list.Handle(c.Request.Context(), viewstate.ChangeOrdering{Ordering: ordering}); err != nil {
		respondInternalError(c, err, "change ordering")
		return
	}
	c.JSON(http.StatusOK, wc.listResponse())
}

// ToggleOrderPanel handles POST /api/words/order-panel/toggle
func (wc *WordsController) ToggleOrderPanel(c *gin.Context) {
	if err := wc.list.Handle(c.Request.Context(), viewstate.ToggleOrderPanel{}); err != nil {
		respondInternalError(c, err, "toggle order panel")
		return
	}
	c.JSON(http.StatusOK, wc.listResponse())
}

// Delete handles DELETE /api/words/:id
// Only words currently shown in the list can be deleted.
func (wc *WordsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var target *entities.Word
	for _, word := range wc.list.State().Words {
		if word.ID == id {
			target = &word
			break
		}
	}
	if target == nil {
		respondNotFound(c, "word")
		return
	}

	if err := wc.list.Handle(c.Request.Context(), viewstate.DeleteEntry{Word: *target}); err != nil {
		respondInternalError(c, err, "delete word")
		return
	}
	respondSuccess(c, "word deleted")
}

// Restore handles POST /api/words/restore
func (wc *WordsController) Restore(c *gin.Context) {
	if _, ok := wc.list.Tombstone(); !ok {
		respondError(c, http.StatusConflict, "nothing to restore")
		return
	}

	if err := wc.list.Handle(c.Request.Context(), viewstate.RestoreEntry{}); err != nil {
		respondInternalError(c, err, "restore word")
		return
	}
	respondSuccess(c, "word restored")
}
