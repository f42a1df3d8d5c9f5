package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"starborg-web/internal/apperr"
	"starborg-web/internal/game"
)

const logTimeLayout = "15:04"

type RollHandler struct {
	game *game.Service
}

func NewRollHandler(gameService *game.Service) *RollHandler {
	return &RollHandler{game: gameService}
}

type rollRequest struct {
	Dice     string  `json:"dice"`
	Modifier flexInt `json:"modifier"`
	Reason   string  `json:"reason"`
}

type rollResponse struct {
	Result int `json:"result"`
	Raw    int `json:"raw"`
}

type logEntry struct {
	Time string `json:"time"`
	User string `json:"user"`
	Msg  string `json:"msg"`
}

// flexInt accepts a JSON number, a numeric string or null.
// Fractional numbers are truncated toward zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("modifier %q is not an integer", s)
		}
		*f = flexInt(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if math.IsNaN(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("modifier %v out of range", v)
	}
	*f = flexInt(math.Trunc(v))
	return nil
}

func (h *RollHandler) RollAPI(w http.ResponseWriter, r *http.Request) {
	var req rollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	roll, err := h.game.Roll(r.Context(), currentUser(r), game.RollRequest{
		Dice:     req.Dice,
		Modifier: int(req.Modifier),
		Reason:   req.Reason,
	})
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeInternal {
			serverError(w, r, err)
			return
		}
		writeJSONError(w, apperr.HTTPStatus(err), apperr.MessageOf(err))
		return
	}
	writeJSON(w, http.StatusOK, rollResponse{Result: roll.Total, Raw: roll.Raw})
}

// GetLogs returns the shared roll feed, newest first.
func (h *RollHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.game.RecentLogs(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	entries := make([]logEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, logEntry{
			Time: l.Timestamp.UTC().Format(logTimeLayout),
			User: l.Username,
			Msg:  l.Message,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}
