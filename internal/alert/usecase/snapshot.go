package usecase

import (
	"context"

	"stockwatch-srv/internal/model"
)

// rebuildSnapshot reloads the per-symbol eligible-alert map from the store.
func (uc *implUseCase) rebuildSnapshot(ctx context.Context) error {
	alerts, err := uc.repo.ListEligible(ctx)
	if err != nil {
		uc.logger.Errorf(ctx, "internal.alert.usecase.rebuildSnapshot.ListEligible: %v", err)
		return err
	}

	next := make(map[string][]model.Alert, len(alerts))
	for _, a := range alerts {
		next[a.Symbol] = append(next[a.Symbol], a)
	}

	uc.snapMu.Lock()
	uc.snapshot = next
	uc.snapMu.Unlock()
	return nil
}

// eligible returns the current evaluation set for a symbol. The returned
// slice is immutable; callers may range over it without holding any lock.
func (uc *implUseCase) eligible(symbol string) []model.Alert {
	uc.snapMu.RLock()
	defer uc.snapMu.RUnlock()
	return uc.snapshot[symbol]
}

// upsertSnapshot swaps in a fresh per-symbol slice reflecting the alert's
// latest state: present when eligible, absent otherwise.
func (uc *implUseCase) upsertSnapshot(a model.Alert) {
	uc.snapMu.Lock()
	defer uc.snapMu.Unlock()

	old := uc.snapshot[a.Symbol]
	next := make([]model.Alert, 0, len(old)+1)
	for _, cur := range old {
		if cur.ID != a.ID {
			next = append(next, cur)
		}
	}
	if a.Eligible() {
		next = append(next, a)
	}

	if len(next) == 0 {
		delete(uc.snapshot, a.Symbol)
		return
	}
	uc.snapshot[a.Symbol] = next
}

// dropFromSnapshot removes an alert from its symbol's evaluation set.
func (uc *implUseCase) dropFromSnapshot(symbol, id string) {
	uc.snapMu.Lock()
	defer uc.snapMu.Unlock()

	old := uc.snapshot[symbol]
	next := make([]model.Alert, 0, len(old))
	for _, cur := range old {
		if cur.ID != id {
			next = append(next, cur)
		}
	}

	if len(next) == 0 {
		delete(uc.snapshot, symbol)
		return
	}
	uc.snapshot[symbol] = next
}
