package provider

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type GetProfileUseCase struct {
	providerRepo repository.ProviderRepository
}

func NewGetProfileUseCase(providerRepo repository.ProviderRepository) *GetProfileUseCase {
	return &GetProfileUseCase{providerRepo: providerRepo}
}

func (uc *GetProfileUseCase) ByID(ctx context.Context, profileID uuid.UUID) (*entity.ProviderProfile, error) {
	return uc.providerRepo.FindByID(ctx, profileID)
}

func (uc *GetProfileUseCase) ByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	return uc.providerRepo.FindByUserID(ctx, userID)
}

type ListProvidersUseCase struct {
	providerRepo repository.ProviderRepository
}

func NewListProvidersUseCase(providerRepo repository.ProviderRepository) *ListProvidersUseCase {
	return &ListProvidersUseCase{providerRepo: providerRepo}
}

func (uc *ListProvidersUseCase) Execute(ctx context.Context) ([]*entity.ProviderProfile, error) {
	return uc.providerRepo.List(ctx)
}

type VerifyProviderUseCase struct {
	providerRepo repository.ProviderRepository
}

func NewVerifyProviderUseCase(providerRepo repository.ProviderRepository) *VerifyProviderUseCase {
	return &VerifyProviderUseCase{providerRepo: providerRepo}
}

func (uc *VerifyProviderUseCase) Execute(ctx context.Context, profileID uuid.UUID, verified bool, notes *string) (*entity.ProviderProfile, error) {
	profile, err := uc.providerRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		notes = &trimmed
	}
	profile.SetVerification(verified, notes)

	if err := uc.providerRepo.UpdateVerification(ctx, profile); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"verified":   verified,
	}).Info("provider verification updated")

	return profile, nil
}

// PhotoStore is the storage facade for profile photos. Save returns a path
// relative to the public media root.
type PhotoStore interface {
	Save(ctx context.Context, ownerID uuid.UUID, originalName string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
}

type UploadPhotoUseCase struct {
	providerRepo repository.ProviderRepository
	photos       PhotoStore
	publicPrefix string
}

func NewUploadPhotoUseCase(providerRepo repository.ProviderRepository, photos PhotoStore, publicPrefix string) *UploadPhotoUseCase {
	return &UploadPhotoUseCase{providerRepo: providerRepo, photos: photos, publicPrefix: strings.TrimRight(publicPrefix, "/")}
}

// Execute stores the photo and points the caller's profile at it. The file
// is removed again if the profile cannot be updated.
func (uc *UploadPhotoUseCase) Execute(ctx context.Context, userID uuid.UUID, fileName string, r io.Reader) (*entity.ProviderProfile, error) {
	profile, err := uc.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	relative, _, err := uc.photos.Save(ctx, userID, fileName, r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "failed to store photo")
	}

	url := uc.publicPrefix + "/" + strings.ReplaceAll(relative, "\\", "/")
	if err := uc.providerRepo.UpdatePhoto(ctx, profile.ID, url); err != nil {
		if delErr := uc.photos.Delete(ctx, relative); delErr != nil {
			logger.Log.WithError(delErr).Warn("failed to remove orphaned photo")
		}
		return nil, err
	}

	profile.PhotoURL = &url
	return profile, nil
}
