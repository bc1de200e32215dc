// Package music implements the playlist domain: playlists and the songs
// they contain. Deleting a playlist removes its songs with it.
package music

import "time"

// Playlist groups songs. Songs belong to exactly one playlist and are
// removed together with it.
type Playlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Songs []Song `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"songs"`
}

// Song is one track inside a playlist. Duration is in seconds.
type Song struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"size:255;not null" json:"title"`
	Artist     string `gorm:"size:255;not null" json:"artist"`
	Album      string `gorm:"size:255" json:"album,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	PlaylistID uint   `gorm:"index;not null" json:"playlist_id"`
}

// Models lists every music table for migration.
func Models() []any {
	return []any{&Playlist{}, &Song{}}
}
