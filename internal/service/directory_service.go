package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/medcore-io/appointment-service/internal/domain"
	"github.com/medcore-io/appointment-service/internal/repository"
	apperrors "github.com/medcore-io/appointment-service/pkg/util"
)

// DirectoryCache is the read-through cache over directory listings.
// persistence.Redis satisfies it; cache failures degrade to store reads.
type DirectoryCache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, val string, ttl time.Duration) error
}

// DirectoryService serves the read-only doctor catalog.
type DirectoryService struct {
	doctors  repository.DoctorRepository
	cache    DirectoryCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDirectoryService constructs the service. cache may be nil.
func NewDirectoryService(doctors repository.DoctorRepository, cache DirectoryCache, cacheTTL time.Duration, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		doctors:  doctors,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// cachedDoctor is the directory entry shape stored in the cache. The
// credential hash never leaves the store.
type cachedDoctor struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

// ListDoctors returns doctors filtered by specialty; empty filter yields all.
func (s *DirectoryService) ListDoctors(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	key := "directory:doctors:" + specialty

	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := s.cache.GetString(ctx, key); err == nil && raw != "" {
			var cached []cachedDoctor
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				result := make([]domain.Doctor, 0, len(cached))
				for _, entry := range cached {
					result = append(result, domain.Doctor{
						ID:        entry.ID,
						FullName:  entry.FullName,
						Specialty: entry.Specialty,
						Bio:       entry.Bio,
					})
				}
				return result, nil
			}
		}
	}

	doctors, err := s.doctors.List(ctx, specialty)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		cached := make([]cachedDoctor, 0, len(doctors))
		for _, doc := range doctors {
			cached = append(cached, cachedDoctor{
				ID:        doc.ID,
				FullName:  doc.FullName,
				Specialty: doc.Specialty,
				Bio:       doc.Bio,
			})
		}
		if raw, err := json.Marshal(cached); err == nil {
			if err := s.cache.SetString(ctx, key, string(raw), s.cacheTTL); err != nil && s.logger != nil {
				s.logger.Warn("directory cache write failed", zap.Error(err))
			}
		}
	}
	return doctors, nil
}

// GetDoctor returns a single doctor by id.
func (s *DirectoryService) GetDoctor(ctx context.Context, id string) (*domain.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", map[string]any{"doctor_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return doctor, nil
}
