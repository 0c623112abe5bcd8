package service

import (
	"context"
	"fmt"

	"streamhub/internal/cache"
	"streamhub/internal/http-api/models"
	"streamhub/internal/http-api/repository"
)

type ComicService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comic, error)
	SearchByTitle(ctx context.Context, query string) ([]models.Comic, error)
	Create(ctx context.Context, c *models.Comic) error
	Update(ctx context.Context, id int64, c *models.Comic) error
	Delete(ctx context.Context, id int64) error
}

type comicService struct {
	repo  *repository.ComicRepo
	cache *cache.Cache
}

func NewComicService(repo *repository.ComicRepo, c *cache.Cache) ComicService {
	return &comicService{repo: repo, cache: c}
}

func comicCacheKey(id int64) string {
	return fmt.Sprintf("comic:%d", id)
}

func (s *comicService) GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error) {
	return s.repo.GetAll(ctx, page, pageSize)
}

func (s *comicService) GetByID(ctx context.Context, id int64) (*models.Comic, error) {
	var cached models.Comic
	hit, err := s.cache.GetJSON(ctx, comicCacheKey(id), &cached)
	if err == nil && hit {
		return &cached, nil
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, comicCacheKey(id), c)
	return c, nil
}

func (s *comicService) SearchByTitle(ctx context.Context, query string) ([]models.Comic, error) {
	return s.repo.SearchByTitle(ctx, query)
}

func (s *comicService) Create(ctx context.Context, c *models.Comic) error {
	return s.repo.Create(ctx, c)
}

func (s *comicService) Update(ctx context.Context, id int64, c *models.Comic) error {
	if err := s.repo.Update(ctx, id, c); err != nil {
		return err
	}
	return s.cache.Delete(ctx, comicCacheKey(id))
}

func (s *comicService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.Delete(ctx, comicCacheKey(id))
}
