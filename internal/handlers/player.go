package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HandleUpdateProfile updates a player's cosmetic profile in every game
// they are currently seated in. Roles and game state are untouched.
// PUT /api/player/{name}/profile
func (ctx *Context) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var req struct {
		Username          string   `json:"username"`
		ProfilePictureURL string   `json:"profile_picture_url"`
		SelectedEmotes    []string `json:"selected_emotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctx.writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	updated := 0
	for _, g := range ctx.GameStore.All() {
		g.Lock()
		if p := g.PlayerByName(name); p != nil {
			if username := strings.TrimSpace(req.Username); username != "" {
				p.Username = username
			}
			if req.ProfilePictureURL != "" {
				p.ProfilePictureURL = req.ProfilePictureURL
			}
			if req.SelectedEmotes != nil {
				p.SelectedEmotes = req.SelectedEmotes
			}
			updated++
		}
		g.Unlock()
	}

	if updated == 0 {
		ctx.writeError(w, http.StatusNotFound, "player not found in any game")
		return
	}
	ctx.writeJSON(w, http.StatusOK, map[string]any{
		"updated_games": updated,
	})
}
