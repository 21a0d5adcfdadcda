package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// HandleUpload stores a multipart image and returns its public URL.
// The "kind" path segment picks the asset slot: profile-picture,
// card-image or board-image. Card and board images additionally attach
// to a game when game_id is sent alongside the file.
// POST /api/upload/{kind}
func (ctx *Context) HandleUpload(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	if kind != "profile-picture" && kind != "card-image" && kind != "board-image" {
		ctx.writeError(w, http.StatusNotFound, "unknown upload kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		ctx.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		ctx.writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	if err := os.MkdirAll(ctx.Cfg.UploadDir, 0o755); err != nil {
		ctx.Log.Errorw("creating upload dir", "dir", ctx.Cfg.UploadDir, "error", err)
		ctx.writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(ctx.Cfg.UploadDir, name))
	if err != nil {
		ctx.Log.Errorw("creating upload file", "error", err)
		ctx.writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		ctx.Log.Errorw("writing upload file", "error", err)
		ctx.writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	url := "/uploads/" + name
	if gameID := strings.ToUpper(r.FormValue("game_id")); gameID != "" {
		if g, ok := ctx.GameStore.Get(gameID); ok {
			g.Lock()
			switch kind {
			case "card-image":
				g.CustomCardImageURL = url
			case "board-image":
				g.CustomBoardImageURL = url
			}
			g.Unlock()
		}
	}

	ctx.Log.Infow("upload stored", "kind", kind, "file", name, "size", header.Size)
	ctx.writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
