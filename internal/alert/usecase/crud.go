package usecase

import (
	"context"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"

	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/alert/repository"
	"stockwatch-srv/internal/model"
)

func (uc *implUseCase) Create(ctx context.Context, input alert.CreateInput) (model.Alert, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return model.Alert{}, alert.ErrSymbolRequired
	}
	if !validCondition(input.Condition) {
		return model.Alert{}, alert.ErrInvalidCondition
	}
	if requiresThreshold(input.Condition) && input.Threshold == nil {
		return model.Alert{}, alert.ErrThresholdRequired
	}

	now := uc.clock()
	a := model.Alert{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Symbol:    symbol,
		Type:      input.Type,
		Condition: input.Condition,
		Threshold: input.Threshold,
		Message:   input.Message,
		Email:     input.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.Create(ctx, a); err != nil {
		uc.logger.Errorf(ctx, "internal.alert.usecase.Create.repo.Create: %v", err)
		return model.Alert{}, err
	}
	uc.upsertSnapshot(a)

	return a, nil
}

func (uc *implUseCase) Update(ctx context.Context, userID, id string, input alert.UpdateInput) (model.Alert, error) {
	a, err := uc.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrNotFound
		}
		uc.logger.Errorf(ctx, "internal.alert.usecase.Update.repo.Get: %v", err)
		return model.Alert{}, err
	}

	if input.Condition != nil {
		if !validCondition(*input.Condition) {
			return model.Alert{}, alert.ErrInvalidCondition
		}
		a.Condition = *input.Condition
	}
	if input.Threshold != nil {
		a.Threshold = input.Threshold
	}
	if requiresThreshold(a.Condition) && a.Threshold == nil {
		return model.Alert{}, alert.ErrThresholdRequired
	}
	if input.Message != nil {
		a.Message = *input.Message
	}
	if input.Email != nil {
		a.Email = *input.Email
	}
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}
	a.UpdatedAt = uc.clock()

	if err := uc.repo.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrNotFound
		}
		uc.logger.Errorf(ctx, "internal.alert.usecase.Update.repo.Update: %v", err)
		return model.Alert{}, err
	}
	uc.upsertSnapshot(a)

	return a, nil
}

func (uc *implUseCase) Delete(ctx context.Context, userID, id string) error {
	a, err := uc.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return alert.ErrNotFound
		}
		uc.logger.Errorf(ctx, "internal.alert.usecase.Delete.repo.Get: %v", err)
		return err
	}

	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return alert.ErrNotFound
		}
		uc.logger.Errorf(ctx, "internal.alert.usecase.Delete.repo.Delete: %v", err)
		return err
	}
	uc.dropFromSnapshot(a.Symbol, a.ID)

	return nil
}

func (uc *implUseCase) Get(ctx context.Context, userID, id string) (model.Alert, error) {
	a, err := uc.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrNotFound
		}
		uc.logger.Errorf(ctx, "internal.alert.usecase.Get.repo.Get: %v", err)
		return model.Alert{}, err
	}
	return a, nil
}

func (uc *implUseCase) List(ctx context.Context, userID string, filter alert.Filter) ([]model.Alert, error) {
	alerts, err := uc.repo.List(ctx, userID, repository.ListOptions{
		Symbol:    strings.ToUpper(strings.TrimSpace(filter.Symbol)),
		Triggered: filter.Triggered,
	})
	if err != nil {
		uc.logger.Errorf(ctx, "internal.alert.usecase.List.repo.List: %v", err)
		return nil, err
	}
	return alerts, nil
}

func (uc *implUseCase) Reset(ctx context.Context, userID, id string) (model.Alert, error) {
	a, err := uc.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrNotFound
		}
		uc.logger.Errorf(ctx, "internal.alert.usecase.Reset.repo.Get: %v", err)
		return model.Alert{}, err
	}
	if !a.Triggered {
		return a, nil
	}

	if err := uc.repo.ClearTriggered(ctx, []string{a.ID}); err != nil {
		uc.logger.Errorf(ctx, "internal.alert.usecase.Reset.repo.ClearTriggered: %v", err)
		return model.Alert{}, err
	}

	a.Triggered = false
	a.TriggeredAt = nil
	uc.upsertSnapshot(a)

	return a, nil
}

// RearmAll clears every triggered flag and rebuilds the evaluation snapshot.
// Wired to session open when rearm-on-open is configured.
func (uc *implUseCase) RearmAll(ctx context.Context) error {
	if err := uc.repo.ClearTriggered(ctx, nil); err != nil {
		uc.logger.Errorf(ctx, "internal.alert.usecase.RearmAll.repo.ClearTriggered: %v", err)
		return err
	}
	return uc.rebuildSnapshot(ctx)
}
