package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/logger"
)

type PromoteToProviderUseCase struct {
	userRepo repository.UserRepository
}

func NewPromoteToProviderUseCase(userRepo repository.UserRepository) *PromoteToProviderUseCase {
	return &PromoteToProviderUseCase{userRepo: userRepo}
}

// Execute is idempotent: a user who already is a provider (or an admin) is
// returned unchanged and nothing is written.
func (uc *PromoteToProviderUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.PromoteToProvider() {
		return user, nil
	}

	if err := uc.userRepo.UpdateRole(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"user_id": user.ID}).Info("user promoted to provider")
	return user, nil
}
