package repository_test

import (
	"testing"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/company"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepos(t *testing.T) *repository.Repos {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := testutils.SetupPostgresForIntegration()
	t.Cleanup(cleanup)
	return repository.NewRepositories(db)
}

func TestInvoiceRepo_UpdateStatusIfIsConditional(t *testing.T) {
	repos := setupRepos(t)

	inv := &invoice.Invoice{ID: "inv-repo-1", TicketID: "t-repo-1", Status: invoice.StatusPendingApproval}
	require.NoError(t, repos.Invoice.Create(inv))

	matched, err := repos.Invoice.UpdateStatusIf("inv-repo-1",
		[]invoice.Status{invoice.StatusPendingApproval},
		map[string]any{"status": invoice.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	// Replay: the row no longer matches the precondition.
	matched, err = repos.Invoice.UpdateStatusIf("inv-repo-1",
		[]invoice.Status{invoice.StatusPendingApproval},
		map[string]any{"status": invoice.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)

	got, err := repos.Invoice.FindByID("inv-repo-1")
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusApproved, got.Status)
}

func TestInvoiceRepo_FindActiveByTicketSkipsRejected(t *testing.T) {
	repos := setupRepos(t)

	require.NoError(t, repos.Invoice.Create(&invoice.Invoice{
		ID: "inv-rej", TicketID: "t-act-1", Status: invoice.StatusRejected,
	}))

	_, err := repos.Invoice.FindActiveByTicket("t-act-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repos.Invoice.Create(&invoice.Invoice{
		ID: "inv-act", TicketID: "t-act-1", Status: invoice.StatusPendingApproval,
	}))

	got, err := repos.Invoice.FindActiveByTicket("t-act-1")
	require.NoError(t, err)
	assert.Equal(t, "inv-act", got.ID)
}

func TestInvoiceRepo_OneActivePerTicketEnforced(t *testing.T) {
	repos := setupRepos(t)

	require.NoError(t, repos.Invoice.Create(&invoice.Invoice{
		ID: "inv-uq-1", TicketID: "t-uq-1", Status: invoice.StatusPendingApproval,
	}))

	// A second active invoice for the same ticket hits the partial unique
	// index, regardless of what a racing pre-insert lookup saw.
	err := repos.Invoice.Create(&invoice.Invoice{
		ID: "inv-uq-2", TicketID: "t-uq-1", Status: invoice.StatusPendingApproval,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Inactive rows are outside the index: a rejected invoice coexists with
	// a fresh active one.
	require.NoError(t, repos.Invoice.Create(&invoice.Invoice{
		ID: "inv-uq-3", TicketID: "t-uq-2", Status: invoice.StatusRejected,
	}))
	require.NoError(t, repos.Invoice.Create(&invoice.Invoice{
		ID: "inv-uq-4", TicketID: "t-uq-2", Status: invoice.StatusPendingApproval,
	}))
}

func TestTicketRepo_ListScopes(t *testing.T) {
	repos := setupRepos(t)
	provider := "prov-1"

	require.NoError(t, repos.Category.Create(&category.Category{
		ID: "cat-x", Name: "fixture", NameLower: "fixture", Active: true,
	}))

	seed := []ticket.Ticket{
		{ID: "t-s-1", CategoryID: "cat-x", Description: "a", CompanyID: "co-1", CreatedBy: "u-1", Status: ticket.StatusSubmitted},
		{ID: "t-s-2", CategoryID: "cat-x", Description: "b", CompanyID: "co-2", CreatedBy: "u-2", Status: ticket.StatusSubmitted, AssignedProvider: &provider},
	}
	for i := range seed {
		require.NoError(t, repos.Ticket.Create(&seed[i]))
	}

	all, err := repos.Ticket.List(repository.ListScope{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 2)

	scoped, err := repos.Ticket.List(repository.ListScope{CompanyIDs: []string{"co-1"}})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "t-s-1", scoped[0].ID)

	assigned, err := repos.Ticket.List(repository.ListScope{AssignedProvider: provider})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "t-s-2", assigned[0].ID)

	empty, err := repos.Ticket.List(repository.ListScope{Empty: true})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepo_CompanyIDsFallback(t *testing.T) {
	repos := setupRepos(t)
	companyID := "co-f-1"

	require.NoError(t, repos.Company.Create(&company.Company{
		ID: companyID, Name: "Fallback Co", Email: "fallback@test.com", Active: true,
	}))
	require.NoError(t, repos.User.Create(&user.User{
		ID: "u-f-1", Email: "member-f@test.com", Role: user.RoleUser, CompanyID: &companyID,
	}))
	require.NoError(t, repos.User.Create(&user.User{
		ID: "m-f-1", Email: "mgr-f@test.com", Role: user.RoleManager,
	}))

	// Primary company fallback when the oversight set is empty.
	ids, err := repos.User.CompanyIDs("u-f-1")
	require.NoError(t, err)
	assert.Equal(t, []string{companyID}, ids)

	// No oversight, no primary company: no scope.
	ids, err = repos.User.CompanyIDs("m-f-1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, c := range []company.Company{
		{ID: "co-a", Name: "Co A", Email: "co-a@test.com", Active: true},
		{ID: "co-b", Name: "Co B", Email: "co-b@test.com", Active: true},
	} {
		cp := c
		require.NoError(t, repos.Company.Create(&cp))
	}
	require.NoError(t, repos.User.ReplaceCompanies("m-f-1", []string{"co-a", "co-b"}))
	ids, err = repos.User.CompanyIDs("m-f-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"co-a", "co-b"}, ids)
}
