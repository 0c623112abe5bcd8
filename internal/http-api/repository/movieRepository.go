package repository

import (
	"context"
	"fmt"
	"strings"

	"streamhub/internal/http-api/models"

	"gorm.io/gorm"
)

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

func (r *MovieRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var count int64
	if err := db.Model(&models.Movie{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MovieRepo) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *MovieRepo) Update(ctx context.Context, id int64, m *models.Movie) error {
	// ensure ID set for Save
	m.ID = id
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Movie{}, id).Error; err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// SearchByTitle performs case-insensitive partial match on title and slug.
// Splits the query into tokens and requires each token to appear in at least one field.
func (r *MovieRepo) SearchByTitle(ctx context.Context, title string) ([]models.Movie, error) {
	var list []models.Movie
	tokens := strings.Fields(title)
	db := r.db.WithContext(ctx)

	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*2)
	for _, t := range tokens {
		p := "%" + t + "%"
		// COALESCE avoids NULL slug breaking ILIKE
		clauses = append(clauses, "(title ILIKE ? OR COALESCE(slug,'') ILIKE ?)")
		args = append(args, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Where(where, args...).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return list, nil
}
