package repository

import (
	"context"
	"fmt"
	"time"

	"streamhub/internal/http-api/models"

	"gorm.io/gorm"
)

// previewLimit bounds how many member rows are attached when a listing asks for items.
const previewLimit = 10

type CollectionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *models.Collection) error
	// FindOwned loads the collection only if it belongs to ownerID; a miss cannot be
	// told apart from a foreign collection on purpose.
	FindOwned(ctx context.Context, tx *gorm.DB, id int64, ownerID string) (*models.Collection, error)
	FindByID(ctx context.Context, id int64) (*models.Collection, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	ListByOwner(ctx context.Context, ownerID, typeFilter string, includeItems bool) ([]models.Collection, error)

	// Membership. Insert methods report (created=false, err=nil) when the unique
	// constraint already holds the pair.
	InsertMovieMembership(ctx context.Context, tx *gorm.DB, m *models.CollectionMovie) (bool, error)
	InsertComicMembership(ctx context.Context, tx *gorm.DB, m *models.CollectionComic) (bool, error)
	DeleteMovieMembership(ctx context.Context, tx *gorm.DB, collectionID, movieID int64) (int64, error)
	DeleteComicMembership(ctx context.Context, tx *gorm.DB, collectionID, comicID int64) (int64, error)

	// TouchRecency bumps updated_at without changing any other column so that
	// membership changes reorder the owner's listing.
	TouchRecency(ctx context.Context, tx *gorm.DB, collectionID int64) error
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// handle returns the transaction when one is threaded in, the base connection otherwise.
func (r *collectionRepository) handle(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *collectionRepository) Create(ctx context.Context, tx *gorm.DB, c *models.Collection) error {
	if err := r.handle(ctx, tx).Create(c).Error; err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) FindOwned(ctx context.Context, tx *gorm.DB, id int64, ownerID string) (*models.Collection, error) {
	var c models.Collection
	if err := r.handle(ctx, tx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) FindByID(ctx context.Context, id int64) (*models.Collection, error) {
	var c models.Collection
	q := r.db.WithContext(ctx).Preload("Owner")
	if err := q.First(&c, id).Error; err != nil {
		return nil, err
	}

	// Attach the membership preview for the side that matches the collection type.
	switch c.Type {
	case models.CollectionTypeComic:
		err := r.db.WithContext(ctx).
			Preload("Comic.Chapters", func(db *gorm.DB) *gorm.DB {
				return db.Order("number DESC")
			}).
			Preload("Comic").
			Where("collection_id = ?", id).
			Order("added_at DESC").
			Limit(previewLimit).
			Find(&c.Comics).Error
		if err != nil {
			return nil, fmt.Errorf("load comic memberships: %w", err)
		}
		keepLatestChapter(c.Comics)
	default:
		err := r.db.WithContext(ctx).
			Preload("Movie.Episodes", func(db *gorm.DB) *gorm.DB {
				return db.Order("number DESC")
			}).
			Preload("Movie").
			Where("collection_id = ?", id).
			Order("added_at DESC").
			Limit(previewLimit).
			Find(&c.Movies).Error
		if err != nil {
			return nil, fmt.Errorf("load movie memberships: %w", err)
		}
		keepLatestEpisode(c.Movies)
	}
	return &c, nil
}

// keepLatestChapter trims every member's preloaded chapters to the highest-numbered
// one. A LIMIT inside the preload callback caps the single batched query across all
// parents, not each parent, so the per-member trim happens here.
func keepLatestChapter(members []models.CollectionComic) {
	for i := range members {
		if members[i].Comic != nil && len(members[i].Comic.Chapters) > 1 {
			members[i].Comic.Chapters = members[i].Comic.Chapters[:1]
		}
	}
}

func keepLatestEpisode(members []models.CollectionMovie) {
	for i := range members {
		if members[i].Movie != nil && len(members[i].Movie.Episodes) > 1 {
			members[i].Movie.Episodes = members[i].Movie.Episodes[:1]
		}
	}
}

func (r *collectionRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) error {
	if err := r.handle(ctx, tx).
		Model(&models.Collection{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	db := r.handle(ctx, tx)

	// Explicit pre-delete of membership rows so no orphans remain even when the
	// schema was migrated without FK cascade.
	if err := db.Where("collection_id = ?", id).Delete(&models.CollectionMovie{}).Error; err != nil {
		return fmt.Errorf("delete movie memberships: %w", err)
	}
	if err := db.Where("collection_id = ?", id).Delete(&models.CollectionComic{}).Error; err != nil {
		return fmt.Errorf("delete comic memberships: %w", err)
	}
	if err := db.Delete(&models.Collection{}, id).Error; err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) ListByOwner(ctx context.Context, ownerID, typeFilter string, includeItems bool) ([]models.Collection, error) {
	var list []models.Collection

	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	if includeItems {
		q = q.
			Preload("Movies", func(db *gorm.DB) *gorm.DB {
				return db.Order("added_at DESC")
			}).
			Preload("Movies.Movie").
			Preload("Comics", func(db *gorm.DB) *gorm.DB {
				return db.Order("added_at DESC")
			}).
			Preload("Comics.Comic")
	}

	if err := q.Order("updated_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	// Preload can't bound rows per parent, so trim the preview here.
	if includeItems {
		for i := range list {
			if len(list[i].Movies) > previewLimit {
				list[i].Movies = list[i].Movies[:previewLimit]
			}
			if len(list[i].Comics) > previewLimit {
				list[i].Comics = list[i].Comics[:previewLimit]
			}
		}
	}
	return list, nil
}

func (r *collectionRepository) InsertMovieMembership(ctx context.Context, tx *gorm.DB, m *models.CollectionMovie) (bool, error) {
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	if err := r.handle(ctx, tx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert movie membership: %w", err)
	}
	return true, nil
}

func (r *collectionRepository) InsertComicMembership(ctx context.Context, tx *gorm.DB, m *models.CollectionComic) (bool, error) {
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	if err := r.handle(ctx, tx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert comic membership: %w", err)
	}
	return true, nil
}

func (r *collectionRepository) DeleteMovieMembership(ctx context.Context, tx *gorm.DB, collectionID, movieID int64) (int64, error) {
	result := r.handle(ctx, tx).
		Where("collection_id = ? AND movie_id = ?", collectionID, movieID).
		Delete(&models.CollectionMovie{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete movie membership: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *collectionRepository) DeleteComicMembership(ctx context.Context, tx *gorm.DB, collectionID, comicID int64) (int64, error) {
	result := r.handle(ctx, tx).
		Where("collection_id = ? AND comic_id = ?", collectionID, comicID).
		Delete(&models.CollectionComic{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete comic membership: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *collectionRepository) TouchRecency(ctx context.Context, tx *gorm.DB, collectionID int64) error {
	if err := r.handle(ctx, tx).
		Model(&models.Collection{}).
		Where("id = ?", collectionID).
		UpdateColumn("updated_at", time.Now()).Error; err != nil {
		return fmt.Errorf("touch collection recency: %w", err)
	}
	return nil
}
