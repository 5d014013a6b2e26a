package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"sanad/internal/content/models"
	"sanad/internal/content/store"
	dErrors "sanad/pkg/domain-errors"
)

func newNoticeService() *Service[models.Notice] {
	return New[models.Notice]("notices", store.NewInMemoryStore[models.Notice](), nil)
}

func TestCreateAssignsServerID(t *testing.T) {
	ctx := context.Background()
	svc := newNoticeService()

	created, err := svc.Create(ctx, models.Notice{ID: "client-chosen", TitleBN: "নোটিশ", TitleEN: "Notice"})
	require.NoError(t, err)
	require.NotEqual(t, "client-chosen", created.ID)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Notice", got.TitleEN)
}

func TestUpdateAddressesByPathID(t *testing.T) {
	ctx := context.Background()
	svc := newNoticeService()

	created, err := svc.Create(ctx, models.Notice{TitleEN: "Original"})
	require.NoError(t, err)

	// The payload id is ignored; the path id wins.
	updated, err := svc.Update(ctx, created.ID, models.Notice{ID: "other", TitleEN: "Revised"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Revised", updated.TitleEN)

	_, err = svc.Update(ctx, "missing", models.Notice{TitleEN: "x"})
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newNoticeService()

	created, err := svc.Create(ctx, models.Notice{TitleEN: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestListKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	svc := newNoticeService()

	first, err := svc.Create(ctx, models.Notice{TitleEN: "first"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, models.Notice{TitleEN: "second"})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{first.ID, second.ID}, []string{items[0].ID, items[1].ID})

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
