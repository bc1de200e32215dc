// Package musicapi exposes the playlist domain over HTTP JSON.
package musicapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/crud-services/internal/httpx"
	"github.com/example/crud-services/internal/music"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Logger *slog.Logger

	Music interface {
		CreatePlaylist(ctx context.Context, req music.CreatePlaylistRequest) (*music.Playlist, error)
		ListPlaylists(ctx context.Context) ([]music.Playlist, error)
		GetPlaylist(ctx context.Context, id uint) (*music.Playlist, error)
		UpdatePlaylist(ctx context.Context, id uint, upd music.PlaylistUpdate) (*music.Playlist, error)
		DeletePlaylist(ctx context.Context, id uint) error
		AddSong(ctx context.Context, playlistID uint, req music.AddSongRequest) (*music.Song, error)
		ListSongs(ctx context.Context) ([]music.Song, error)
		PlaylistSongs(ctx context.Context, playlistID uint) ([]music.Song, error)
		DeleteSong(ctx context.Context, id uint) error
	}
}

// NewRouter builds the music service HTTP handler.
func NewRouter(deps Dependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// Collection endpoints are reachable with and without the trailing slash.
	r.Use(middleware.StripSlashes)
	r.Use(httpx.CorrelationID)
	r.Use(httpx.RequestLogger(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/playlists", func(r chi.Router) {
		r.Post("/", handleCreatePlaylist(deps))
		r.Get("/", handleListPlaylists(deps))
		r.Get("/{id}", handleGetPlaylist(deps))
		r.Put("/{id}", handleUpdatePlaylist(deps))
		r.Delete("/{id}", handleDeletePlaylist(deps))
		r.Post("/{id}/songs", handleAddSong(deps))
		r.Get("/{id}/songs", handlePlaylistSongs(deps))
	})

	r.Route("/songs", func(r chi.Router) {
		r.Get("/", handleListSongs(deps))
		r.Delete("/{id}", handleDeleteSong(deps))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	return r
}
