package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/config"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/internal/repository/mock"
	"github.com/Harishkumar132003/service-app-backend/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerMocks struct {
	ticket  *mock.MockTicketRepo
	invoice *mock.MockInvoiceRepo
	user    *mock.MockUserRepo
}

func setupRoutes(t *testing.T) (*gin.Engine, routerMocks) {
	t.Helper()
	config.JwtSecret = "route-test-secret"
	middleware.Init()

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := routerMocks{
		ticket:  mock.NewMockTicketRepo(ctrl),
		invoice: mock.NewMockInvoiceRepo(ctrl),
		user:    mock.NewMockUserRepo(ctrl),
	}
	repos := &repository.Repos{
		Ticket:   m.ticket,
		Invoice:  m.invoice,
		Company:  mock.NewMockCompanyRepo(ctrl),
		Category: mock.NewMockCategoryRepo(ctrl),
		User:     m.user,
	}
	return testutils.SetupRouter(application.New(repos, nil)), m
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupRoutes(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r, _ := setupRoutes(t)

	for _, path := range []string{"/api/tickets", "/api/companies", "/api/users"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestListTicketsRoute_AdminToken(t *testing.T) {
	r, m := setupRoutes(t)

	m.ticket.EXPECT().List(repository.ListScope{}).Return([]ticket.Ticket{{ID: "t1"}}, nil)

	token, err := middleware.GenerateToken("a1", "admin@test.com", "admin", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tickets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t1")
}

func TestInvoiceReadScopedToTicketCompany(t *testing.T) {
	r, m := setupRoutes(t)

	amount := 999.0
	m.invoice.EXPECT().FindByID("inv-c1").Return(invoice.Invoice{ID: "inv-c1", TicketID: "t1", Amount: &amount}, nil)
	m.ticket.EXPECT().FindByID("t1").Return(ticket.Ticket{ID: "t1", CompanyID: "c1"}, nil)
	m.user.EXPECT().CompanyIDs("u9").Return([]string{"c9"}, nil)

	token, err := middleware.GenerateToken("u9", "outsider@test.com", "user", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/inv-c1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	// Cross-company callers get the same 404 as for a missing invoice; the
	// amount must not leak.
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "999")
}

func TestCompanyRoutesAreAdminOnly(t *testing.T) {
	r, _ := setupRoutes(t)

	token, err := middleware.GenerateToken("u1", "user@test.com", "user", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
