package music

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Service provides playlist and song CRUD.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreatePlaylistRequest names a new, empty playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*Playlist, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	playlist := Playlist{
		Name:        req.Name,
		Description: req.Description,
		Songs:       []Song{},
	}
	if err := s.db.WithContext(ctx).Create(&playlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	return &playlist, nil
}

func (s *Service) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist
	if err := s.db.WithContext(ctx).Preload("Songs").Order("id").Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	for i := range playlists {
		if playlists[i].Songs == nil {
			playlists[i].Songs = []Song{}
		}
	}
	return playlists, nil
}

func (s *Service) GetPlaylist(ctx context.Context, id uint) (*Playlist, error) {
	var playlist Playlist
	if err := s.db.WithContext(ctx).Preload("Songs").First(&playlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	if playlist.Songs == nil {
		playlist.Songs = []Song{}
	}
	return &playlist, nil
}

// PlaylistUpdate enumerates the mutable playlist fields. Both are applied;
// there is no partial update by field omission.
type PlaylistUpdate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) UpdatePlaylist(ctx context.Context, id uint, upd PlaylistUpdate) (*Playlist, error) {
	if upd.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	if _, err := s.GetPlaylist(ctx, id); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Model(&Playlist{}).Where("id = ?", id).
		Updates(map[string]any{
			"name":        upd.Name,
			"description": upd.Description,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	return s.GetPlaylist(ctx, id)
}

// DeletePlaylist removes the playlist and its songs in one storage
// transaction. The child delete is explicit rather than left to the ORM's
// object-graph cascade.
func (s *Service) DeletePlaylist(ctx context.Context, id uint) error {
	if _, err := s.GetPlaylist(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&Song{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist songs: %w", err)
		}
		if err := tx.Delete(&Playlist{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}
		return nil
	})
}

// AddSongRequest adds a track to an existing playlist.
type AddSongRequest struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration"`
}

func (s *Service) AddSong(ctx context.Context, playlistID uint, req AddSongRequest) (*Song, error) {
	if req.Title == "" || req.Artist == "" {
		return nil, fmt.Errorf("%w: title and artist are required", ErrInvalidRequest)
	}

	var playlist Playlist
	if err := s.db.WithContext(ctx).First(&playlist, playlistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	song := Song{
		Title:      req.Title,
		Artist:     req.Artist,
		Album:      req.Album,
		Duration:   req.Duration,
		PlaylistID: playlistID,
	}
	if err := s.db.WithContext(ctx).Create(&song).Error; err != nil {
		return nil, fmt.Errorf("failed to add song: %w", err)
	}

	return &song, nil
}

func (s *Service) ListSongs(ctx context.Context) ([]Song, error) {
	var songs []Song
	if err := s.db.WithContext(ctx).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// PlaylistSongs returns the songs of one playlist in insertion order.
func (s *Service) PlaylistSongs(ctx context.Context, playlistID uint) ([]Song, error) {
	var songs []Song
	if err := s.db.WithContext(ctx).Where("playlist_id = ?", playlistID).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlist songs: %w", err)
	}
	return songs, nil
}

func (s *Service) DeleteSong(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Song{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete song: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSongNotFound
	}
	return nil
}
