package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"starborg-web/internal/apperr"
	"starborg-web/internal/game"
	"starborg-web/internal/http/views"
	"starborg-web/internal/security"
)

// MsgSheetSaved is shown after a sheet has been saved.
const MsgSheetSaved = "Sheet saved!"

type CharacterHandler struct {
	game  *game.Service
	sec   *security.SessionStore
	views *views.Renderer
}

func NewCharacterHandler(gameService *game.Service, sec *security.SessionStore, v *views.Renderer) *CharacterHandler {
	return &CharacterHandler{
		game:  gameService,
		sec:   sec,
		views: v,
	}
}

func (h *CharacterHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	characters, err := h.game.ListCharacters(r.Context(), user)
	if err != nil {
		serverError(w, r, err)
		return
	}
	renderPage(w, r, h.views, h.sec, views.PageDashboard, views.Page{
		Title:      "Dashboard",
		User:       user,
		Characters: characters,
	})
}

func (h *CharacterHandler) CreateCharacterForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.views, h.sec, views.PageCreateChar, views.Page{
		Title: "New character",
		User:  currentUser(r),
	})
}

func (h *CharacterHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	arg := game.NewCharacter{
		Name:      r.PostForm.Get("name"),
		CharClass: r.PostForm.Get("char_class"),
	}
	if r.PostForm.Has("roll_abilities") {
		scores := h.game.Roller().RollScores()
		arg.Abilities = &scores
	}
	c, err := h.game.CreateCharacter(r.Context(), currentUser(r), arg)
	if err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sheet/%d", c.ID), http.StatusFound)
}

func (h *CharacterHandler) Sheet(w http.ResponseWriter, r *http.Request) {
	id, err := characterID(r)
	if err != nil {
		failPage(w, r, err)
		return
	}
	c, err := h.game.OwnedCharacter(r.Context(), currentUser(r), id)
	if err != nil {
		failPage(w, r, err)
		return
	}
	renderPage(w, r, h.views, h.sec, views.PageSheet, views.Page{
		Title:     c.Name,
		User:      currentUser(r),
		Character: c,
	})
}

func (h *CharacterHandler) SaveSheet(w http.ResponseWriter, r *http.Request) {
	id, err := characterID(r)
	if err != nil {
		failPage(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	f := r.PostForm
	sheet := game.Sheet{
		Name:          f.Get("name"),
		Agility:       f.Get("agility"),
		Knowledge:     f.Get("knowledge"),
		Presence:      f.Get("presence"),
		Strength:      f.Get("strength"),
		HPCurrent:     f.Get("hp_current"),
		HPMax:         f.Get("hp_max"),
		DestinyPoints: f.Get("destiny_points"),
		Bits:          f.Has("bits"),
		Equipment:     f.Get("equipment"),
		Notes:         f.Get("notes"),
	}
	if f.Has("char_class") {
		class := f.Get("char_class")
		sheet.CharClass = &class
	}
	c, err := h.game.SaveSheet(r.Context(), currentUser(r), id, sheet)
	if err != nil {
		failPage(w, r, err)
		return
	}
	renderPage(w, r, h.views, h.sec, views.PageSheet, views.Page{
		Title:     c.Name,
		User:      currentUser(r),
		Character: c,
		Flashes:   []string{MsgSheetSaved},
	})
}

func (h *CharacterHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := characterID(r)
	if err != nil {
		failPage(w, r, err)
		return
	}
	c, err := h.game.DeleteCharacter(r.Context(), currentUser(r), id)
	if err != nil {
		failPage(w, r, err)
		return
	}
	redirectWithFlash(w, r, h.sec, "/dashboard", fmt.Sprintf("Character %s deleted.", c.Name))
}

func characterID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["char_id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeNotFound, fmt.Sprintf("character %q not found", raw), err)
	}
	return id, nil
}
