package service

import (
	"context"
	"testing"

	"github.com/chapincloud/meterbill/internal/invoice/domain"
	"github.com/chapincloud/meterbill/internal/invoice/repository"
	"github.com/chapincloud/meterbill/pkg/dates"
	"github.com/chapincloud/meterbill/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	store, err := docstore.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewService(ServiceParam{Log: zap.NewNop(), Repo: repository.New(store)})
}

func day(t *testing.T, value string) dates.Date {
	t.Helper()
	d, err := dates.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestAppendThenGetByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	in := []domain.Invoice{
		{ID: 101, ClientTaxID: "12345678-9", IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"), Total: 70},
		{ID: 102, ClientTaxID: "87654321-0", IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"), Total: 15.5},
	}
	require.NoError(t, svc.Append(ctx, in))

	inv, err := svc.GetByID(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, "87654321-0", inv.ClientTaxID)
	assert.Equal(t, 15.5, inv.Total)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendPreservesExistingInvoices(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, []domain.Invoice{
		{ID: 1, ClientTaxID: "12345678-9", IssueDate: day(t, "29/02/2024"), PeriodStart: day(t, "01/02/2024")},
	}))
	require.NoError(t, svc.Append(ctx, []domain.Invoice{
		{ID: 2, ClientTaxID: "12345678-9", IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024")},
	}))

	invoices, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, int64(1), int64(invoices[0].ID))
	assert.Equal(t, int64(2), int64(invoices[1].ID))
}

func TestListIssuedBetween(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, []domain.Invoice{
		{ID: 1, ClientTaxID: "12345678-9", IssueDate: day(t, "29/02/2024"), PeriodStart: day(t, "01/02/2024")},
		{ID: 2, ClientTaxID: "12345678-9", IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024")},
		{ID: 3, ClientTaxID: "12345678-9", IssueDate: day(t, "30/04/2024"), PeriodStart: day(t, "01/04/2024")},
	}))

	invoices, err := svc.ListIssuedBetween(ctx, day(t, "01/03/2024"), day(t, "30/04/2024"))
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, int64(2), int64(invoices[0].ID))
	assert.Equal(t, int64(3), int64(invoices[1].ID))
}
