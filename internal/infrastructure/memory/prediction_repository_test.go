package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/memory"
)

func newPrediction(t *testing.T, route string) *model.Prediction {
	t.Helper()
	q := model.DefaultBookingQuery()
	q.Route = route
	p, err := model.NewPrediction(q, valueobject.ProfilePipeline)
	require.NoError(t, err)
	return p
}

func TestPredictionRepository_SaveAndFind(t *testing.T) {
	repo := memory.NewPredictionRepository(0)
	ctx := context.Background()
	p := newPrediction(t, "AKLKUL")

	require.NoError(t, repo.Save(ctx, p))
	got, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrPredictionNotFound)
}

func TestPredictionRepository_ListRecent(t *testing.T) {
	repo := memory.NewPredictionRepository(0)
	ctx := context.Background()
	for _, r := range []string{"A", "B", "C", "D"} {
		require.NoError(t, repo.Save(ctx, newPrediction(t, r)))
	}

	tests := []struct {
		name   string
		want   []string
		limit  int
		offset int
	}{
		{name: "first page", limit: 2, offset: 0, want: []string{"D", "C"}},
		{name: "second page", limit: 2, offset: 2, want: []string{"B", "A"}},
		{name: "past the end", limit: 2, offset: 10, want: nil},
		{name: "zero limit", limit: 0, offset: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.ListRecent(ctx, tt.limit, tt.offset)
			require.NoError(t, err)
			var routes []string
			for _, p := range list {
				routes = append(routes, p.Query().Route)
			}
			assert.Equal(t, tt.want, routes)
		})
	}
}

func TestPredictionRepository_EvictsOldest(t *testing.T) {
	repo := memory.NewPredictionRepository(2)
	ctx := context.Background()
	first := newPrediction(t, "A")

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, newPrediction(t, "B")))
	require.NoError(t, repo.Save(ctx, newPrediction(t, "C")))

	assert.Equal(t, 2, repo.Len())
	_, err := repo.FindByID(ctx, first.ID())
	assert.ErrorIs(t, err, model.ErrPredictionNotFound)
}

func TestPredictionRepository_ConcurrentSave(t *testing.T) {
	repo := memory.NewPredictionRepository(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := model.NewPrediction(model.DefaultBookingQuery(), valueobject.ProfilePipeline)
			if err == nil {
				_ = repo.Save(ctx, p)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, repo.Len())
}
