package models

import "time"

// DartType affects parser behaviour: steel tournaments carry per-player
// averages and a referee scheme, soft tournaments do not.
type DartType string

const (
	DartTypeSteel DartType = "steel"
	DartTypeSoft  DartType = "soft"
)

// TournamentFormat corresponds to the bracket layout on the source site.
type TournamentFormat string

const (
	FormatSingleKO TournamentFormat = "single_ko"
	FormatGroupsKO TournamentFormat = "groups_ko"
)

// Tournament is created and edited through the admin proxy and is read-only
// to the scraping pipeline. All scraped entities reference it by ID.
type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	SourceURL string           `json:"source_url" db:"source_url"`
	Date      time.Time        `json:"tournament_date" db:"tournament_date"`
	IsActive  bool             `json:"is_active" db:"is_active"`
	DartType  DartType         `json:"dart_type" db:"dart_type"`
	Format    TournamentFormat `json:"tournament_format" db:"tournament_format"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
