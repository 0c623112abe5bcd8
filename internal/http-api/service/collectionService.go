package service

import (
	"context"
	"errors"
	"strings"

	"streamhub/internal/http-api/models"
	"streamhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrEmptyCollectionName   = errors.New("collection name must not be empty")
	ErrInvalidCollectionType = errors.New("collection type must be movie or comic")
	ErrOwnerNotFound         = errors.New("owner not found")
	// ErrCollectionNotFound covers both "does not exist" and "exists but not yours" on
	// mutation paths, so a non-owner can't probe for private collections.
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrPrivateCollection   = errors.New("collection is private")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrComicNotFound       = errors.New("comic not found")
	ErrWrongCollectionType = errors.New("item type does not match collection type")
	ErrAlreadyInCollection = errors.New("item already in collection")
	ErrNotInCollection     = errors.New("item not in collection")
)

// CreateCollectionInput carries the fields a caller may set at creation time.
type CreateCollectionInput struct {
	Name        string
	Description *string
	IsPublic    bool
	Type        string
}

// UpdateCollectionInput is a sparse patch: nil means "leave untouched".
type UpdateCollectionInput struct {
	Name        *string
	Description *string
	IsPublic    *bool
	Type        *string
}

type CollectionService interface {
	Create(ctx context.Context, ownerID string, in CreateCollectionInput) (*models.Collection, error)
	Update(ctx context.Context, ownerID string, id int64, in UpdateCollectionInput) (*models.Collection, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	List(ctx context.Context, ownerID, typeFilter string, includeItems bool) ([]models.Collection, error)
	// GetByID is the only operation non-owners may hit: public collections are
	// readable by anyone (callerID may be empty for anonymous requests).
	GetByID(ctx context.Context, callerID string, id int64) (*models.Collection, error)
	AddMovie(ctx context.Context, ownerID string, collectionID, movieID int64) (*models.CollectionMovie, error)
	AddComic(ctx context.Context, ownerID string, collectionID, comicID int64) (*models.CollectionComic, error)
	RemoveMovie(ctx context.Context, ownerID string, collectionID, movieID int64) error
	RemoveComic(ctx context.Context, ownerID string, collectionID, comicID int64) error
}

type collectionService struct {
	tx           repository.TxRunner
	repo         repository.CollectionRepository
	userRepo     repository.UserRepository
	movieRepo    MovieFinder
	comicRepo    ComicFinder
	gamification GamificationService
}

// MovieFinder / ComicFinder are the slices of the catalogue repos this service needs.
type MovieFinder interface {
	Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
}

type ComicFinder interface {
	Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
}

func NewCollectionService(
	tx repository.TxRunner,
	repo repository.CollectionRepository,
	userRepo repository.UserRepository,
	movieRepo MovieFinder,
	comicRepo ComicFinder,
	gamification GamificationService,
) CollectionService {
	return &collectionService{
		tx:           tx,
		repo:         repo,
		userRepo:     userRepo,
		movieRepo:    movieRepo,
		comicRepo:    comicRepo,
		gamification: gamification,
	}
}

func (s *collectionService) Create(ctx context.Context, ownerID string, in CreateCollectionInput) (*models.Collection, error) {
	// Validation happens before any transaction is opened.
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyCollectionName
	}
	colType := in.Type
	if colType == "" {
		colType = models.CollectionTypeMovie
	}
	if !models.ValidCollectionType(colType) {
		return nil, ErrInvalidCollectionType
	}

	collection := &models.Collection{
		OwnerID:  ownerID,
		Name:     name,
		IsPublic: in.IsPublic,
		Type:     colType,
	}
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		collection.Description = &trimmed
	}

	err := s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.userRepo.Exists(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrOwnerNotFound
		}
		if err := s.repo.Create(ctx, tx, collection); err != nil {
			return err
		}
		// Awarded in the same transaction: either the collection and its points
		// both land, or neither does.
		return s.gamification.Award(ctx, tx, ownerID, models.EventWatchlistCreated)
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *collectionService) Update(ctx context.Context, ownerID string, id int64, in UpdateCollectionInput) (*models.Collection, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrEmptyCollectionName
		}
		fields["name"] = name
	}
	if in.Type != nil {
		if !models.ValidCollectionType(*in.Type) {
			return nil, ErrInvalidCollectionType
		}
		fields["type"] = *in.Type
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}

	err := s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.findOwned(ctx, tx, id, ownerID); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.repo.UpdateFields(ctx, tx, id, fields)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *collectionService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.findOwned(ctx, tx, id, ownerID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *collectionService) List(ctx context.Context, ownerID, typeFilter string, includeItems bool) ([]models.Collection, error) {
	if typeFilter != "" && !models.ValidCollectionType(typeFilter) {
		return nil, ErrInvalidCollectionType
	}
	return s.repo.ListByOwner(ctx, ownerID, typeFilter, includeItems)
}

func (s *collectionService) GetByID(ctx context.Context, callerID string, id int64) (*models.Collection, error) {
	collection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	// Reads are the one place existence is disclosed to non-owners: a private
	// collection yields 403 here, while mutations yield a 404-shaped error.
	if !collection.IsPublic && collection.OwnerID != callerID {
		return nil, ErrPrivateCollection
	}
	return collection, nil
}

func (s *collectionService) AddMovie(ctx context.Context, ownerID string, collectionID, movieID int64) (*models.CollectionMovie, error) {
	membership := &models.CollectionMovie{CollectionID: collectionID, MovieID: movieID}

	err := s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		collection, err := s.findOwned(ctx, tx, collectionID, ownerID)
		if err != nil {
			return err
		}
		if collection.Type != models.CollectionTypeMovie {
			return ErrWrongCollectionType
		}
		exists, err := s.movieRepo.Exists(ctx, tx, movieID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMovieNotFound
		}
		created, err := s.repo.InsertMovieMembership(ctx, tx, membership)
		if err != nil {
			return err
		}
		if !created {
			return ErrAlreadyInCollection
		}
		return s.repo.TouchRecency(ctx, tx, collectionID)
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *collectionService) AddComic(ctx context.Context, ownerID string, collectionID, comicID int64) (*models.CollectionComic, error) {
	membership := &models.CollectionComic{CollectionID: collectionID, ComicID: comicID}

	err := s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		collection, err := s.findOwned(ctx, tx, collectionID, ownerID)
		if err != nil {
			return err
		}
		if collection.Type != models.CollectionTypeComic {
			return ErrWrongCollectionType
		}
		exists, err := s.comicRepo.Exists(ctx, tx, comicID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrComicNotFound
		}
		created, err := s.repo.InsertComicMembership(ctx, tx, membership)
		if err != nil {
			return err
		}
		if !created {
			return ErrAlreadyInCollection
		}
		return s.repo.TouchRecency(ctx, tx, collectionID)
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *collectionService) RemoveMovie(ctx context.Context, ownerID string, collectionID, movieID int64) error {
	return s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.findOwned(ctx, tx, collectionID, ownerID); err != nil {
			return err
		}
		rows, err := s.repo.DeleteMovieMembership(ctx, tx, collectionID, movieID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotInCollection
		}
		return s.repo.TouchRecency(ctx, tx, collectionID)
	})
}

func (s *collectionService) RemoveComic(ctx context.Context, ownerID string, collectionID, comicID int64) error {
	return s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.findOwned(ctx, tx, collectionID, ownerID); err != nil {
			return err
		}
		rows, err := s.repo.DeleteComicMembership(ctx, tx, collectionID, comicID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotInCollection
		}
		return s.repo.TouchRecency(ctx, tx, collectionID)
	})
}

// findOwned is the ownership check used by every mutation. It maps a missing row to
// ErrCollectionNotFound whether the collection is absent or owned by someone else.
func (s *collectionService) findOwned(ctx context.Context, tx *gorm.DB, id int64, ownerID string) (*models.Collection, error) {
	collection, err := s.repo.FindOwned(ctx, tx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return collection, nil
}
