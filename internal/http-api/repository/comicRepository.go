package repository

import (
	"context"
	"fmt"
	"strings"

	"streamhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ComicRepo struct {
	db *gorm.DB
}

func NewComicRepo(db *gorm.DB) *ComicRepo {
	return &ComicRepo{db: db}
}

func (r *ComicRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Comic, int64, error) {
	var list []models.Comic
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comic{}).Count(&total).Error; err != nil {
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

func (r *ComicRepo) GetByID(ctx context.Context, id int64) (*models.Comic, error) {
	var c models.Comic
	if err := r.db.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComicRepo) Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var count int64
	if err := db.Model(&models.Comic{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ComicRepo) Create(ctx context.Context, c *models.Comic) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create comic: %w", err)
	}
	return nil
}

func (r *ComicRepo) Update(ctx context.Context, id int64, c *models.Comic) error {
	c.ID = id
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update comic: %w", err)
	}
	return nil
}

func (r *ComicRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comic{}, id).Error; err != nil {
		return fmt.Errorf("delete comic: %w", err)
	}
	return nil
}

// SearchByTitle matches title, author and slug the same way MovieRepo does.
func (r *ComicRepo) SearchByTitle(ctx context.Context, title string) ([]models.Comic, error) {
	var list []models.Comic
	tokens := strings.Fields(title)
	db := r.db.WithContext(ctx)

	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, t := range tokens {
		p := "%" + t + "%"
		clauses = append(clauses, "(title ILIKE ? OR COALESCE(author,'') ILIKE ? OR COALESCE(slug,'') ILIKE ?)")
		args = append(args, p, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Where(where, args...).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search comics: %w", err)
	}
	return list, nil
}
