package service

import (
	"context"
	"fmt"

	"streamhub/internal/cache"
	"streamhub/internal/http-api/models"
	"streamhub/internal/http-api/repository"
)

type MovieService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	SearchByTitle(ctx context.Context, query string) ([]models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, id int64, m *models.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	repo  *repository.MovieRepo
	cache *cache.Cache
}

func NewMovieService(repo *repository.MovieRepo, c *cache.Cache) MovieService {
	return &movieService{repo: repo, cache: c}
}

func movieCacheKey(id int64) string {
	return fmt.Sprintf("movie:%d", id)
}

func (s *movieService) GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	return s.repo.GetAll(ctx, page, pageSize)
}

func (s *movieService) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var cached models.Movie
	hit, err := s.cache.GetJSON(ctx, movieCacheKey(id), &cached)
	if err == nil && hit {
		return &cached, nil
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed cache write never fails the read.
	_ = s.cache.SetJSON(ctx, movieCacheKey(id), m)
	return m, nil
}

func (s *movieService) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	return s.repo.SearchByTitle(ctx, query)
}

func (s *movieService) Create(ctx context.Context, m *models.Movie) error {
	return s.repo.Create(ctx, m)
}

func (s *movieService) Update(ctx context.Context, id int64, m *models.Movie) error {
	if err := s.repo.Update(ctx, id, m); err != nil {
		return err
	}
	return s.cache.Delete(ctx, movieCacheKey(id))
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.Delete(ctx, movieCacheKey(id))
}
