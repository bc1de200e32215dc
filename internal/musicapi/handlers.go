package musicapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/crud-services/internal/httpx"
	"github.com/example/crud-services/internal/music"
)

type deleteResponse struct {
	Message string `json:"message"`
}

func handleCreatePlaylist(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req music.CreatePlaylistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		playlist, err := deps.Music.CreatePlaylist(r.Context(), req)
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusCreated, playlist)
	}
}

func handleListPlaylists(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playlists, err := deps.Music.ListPlaylists(r.Context())
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, playlists)
	}
}

func handleGetPlaylist(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		playlist, err := deps.Music.GetPlaylist(r.Context(), id)
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, playlist)
	}
}

func handleUpdatePlaylist(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var upd music.PlaylistUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		playlist, err := deps.Music.UpdatePlaylist(r.Context(), id, upd)
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, playlist)
	}
}

func handleDeletePlaylist(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := deps.Music.DeletePlaylist(r.Context(), id); err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, deleteResponse{Message: "Playlist deleted successfully"})
	}
}

func handleAddSong(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req music.AddSongRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		song, err := deps.Music.AddSong(r.Context(), id, req)
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusCreated, song)
	}
}

func handleListSongs(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songs, err := deps.Music.ListSongs(r.Context())
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		if songs == nil {
			songs = []music.Song{}
		}
		httpx.WriteJSON(w, r, http.StatusOK, songs)
	}
}

func handlePlaylistSongs(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		songs, err := deps.Music.PlaylistSongs(r.Context(), id)
		if err != nil {
			writeMusicError(w, r, err)
			return
		}
		if songs == nil {
			songs = []music.Song{}
		}
		httpx.WriteJSON(w, r, http.StatusOK, songs)
	}
}

func handleDeleteSong(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := deps.Music.DeleteSong(r.Context(), id); err != nil {
			writeMusicError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, deleteResponse{Message: "Song deleted successfully"})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "validation_error", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func writeMusicError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, music.ErrPlaylistNotFound),
		errors.Is(err, music.ErrSongNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, music.ErrInvalidRequest):
		httpx.WriteError(w, r, http.StatusBadRequest, "validation_error", err.Error())
	default:
		httpx.WriteError(w, r, http.StatusInternalServerError, "internal_error", "")
	}
}
