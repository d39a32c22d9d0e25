package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
	"github.com/dartcorner/liveboard/scraper"
	"github.com/dartcorner/liveboard/utils"
)

// CreateTournamentInput is the admin proxy's write payload.
type CreateTournamentInput struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
	Date      string `json:"tournament_date"`
	IsActive  *bool  `json:"is_active"`
	DartType  string `json:"dart_type"`
	Format    string `json:"tournament_format"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournamentsByDate(ctx context.Context, date time.Time) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input CreateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	t, err := tournamentFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) ListTournamentsByDate(ctx context.Context, date time.Time) ([]models.Tournament, error) {
	return s.tournamentRepo.ListByDate(ctx, date)
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input CreateTournamentInput) (*models.Tournament, error) {
	t, err := tournamentFromInput(input)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	err := s.tournamentRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

func tournamentFromInput(input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameMissing
	}
	if !scraper.IsTournamentURL(input.SourceURL) {
		return nil, ErrTournamentInvalidURL
	}
	date, err := utils.ParseDate(strings.TrimSpace(input.Date))
	if err != nil {
		return nil, ErrTournamentInvalidDate
	}

	t := &models.Tournament{
		Name:      name,
		SourceURL: input.SourceURL,
		Date:      date,
		IsActive:  true,
		DartType:  models.DartTypeSteel,
		Format:    models.FormatSingleKO,
	}
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}

	switch models.DartType(input.DartType) {
	case models.DartTypeSoft:
		t.DartType = models.DartTypeSoft
	case models.DartTypeSteel, "":
	default:
		return nil, ErrValidationFailed
	}

	switch models.TournamentFormat(input.Format) {
	case models.FormatGroupsKO:
		t.Format = models.FormatGroupsKO
	case models.FormatSingleKO, "":
	default:
		return nil, ErrValidationFailed
	}

	return t, nil
}
