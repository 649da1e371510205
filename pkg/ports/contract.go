package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGaugeStoreContract runs a suite of tests to verify that a GaugeStore implementation
// adheres to the defined interface contract.
func RunGaugeStoreContract(t *testing.T, store GaugeStore) {
	ctx := context.Background()
	widgetID := "contract-test-widget-" + time.Now().Format("20060102150405")

	newSnap := func(id string) *domain.Snapshot {
		cfg := domain.DefaultConfig()
		cfg.BoxCount = 25
		return &domain.Snapshot{
			ID:     id,
			Config: cfg,
			Seed:   42,
			State: domain.GaugeState{
				Phase:     domain.PhaseActive,
				Selection: 7,
				Enabled:   true,
			},
			UpdatedAt: time.Now().UTC(),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnap(widgetID)
		require.NoError(t, store.Save(ctx, snap), "Save should not return error")

		loaded, err := store.Load(ctx, widgetID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.ID, loaded.ID)
		assert.Equal(t, snap.Seed, loaded.Seed)
		assert.Equal(t, 25, loaded.Config.BoxCount)
		assert.Equal(t, 7, loaded.State.Selection)
		assert.Equal(t, domain.PhaseActive, loaded.State.Phase)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+widgetID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newSnap(widgetID)))
		require.NoError(t, store.Delete(ctx, widgetID), "Delete should not return error")

		_, err := store.Load(ctx, widgetID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := widgetID + "-1"
		id2 := widgetID + "-2"
		_ = store.Save(ctx, newSnap(id1))
		_ = store.Save(ctx, newSnap(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
