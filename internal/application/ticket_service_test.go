package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/internal/repository/mock"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeImageStore counts saves and hands back deterministic refs.
type fakeImageStore struct {
	saved   int
	failErr error
}

func (f *fakeImageStore) Save(ctx context.Context, r io.Reader, size int64, filename, contentType, prefix string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	f.saved++
	return fmt.Sprintf("%s_%d.jpg", prefix, f.saved), nil
}

func (f *fakeImageStore) Load(ctx context.Context, ref string) ([]byte, string, error) {
	return []byte("img"), "image/jpeg", nil
}

type ticketMocks struct {
	ticket   *mock.MockTicketRepo
	invoice  *mock.MockInvoiceRepo
	userRepo *mock.MockUserRepo
	catRepo  *mock.MockCategoryRepo
	images   *fakeImageStore
}

func setupTicketService(t *testing.T) (*TicketService, ticketMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := ticketMocks{
		ticket:   mock.NewMockTicketRepo(ctrl),
		invoice:  mock.NewMockInvoiceRepo(ctrl),
		userRepo: mock.NewMockUserRepo(ctrl),
		catRepo:  mock.NewMockCategoryRepo(ctrl),
		images:   &fakeImageStore{},
	}
	repos := &repository.Repos{
		Ticket:   m.ticket,
		Invoice:  m.invoice,
		User:     m.userRepo,
		Category: m.catRepo,
	}
	members := NewMembershipIndex(m.userRepo)
	svc := NewTicketService(repos, m.images, NewAuthorizer(members), members)
	return svc, m
}

func jpegUpload() *Upload {
	return &Upload{
		Reader:      strings.NewReader("fake-bytes"),
		Size:        10,
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
	}
}

// --------------------- Create ---------------------

func TestCreateTicket_Success(t *testing.T) {
	svc, m := setupTicketService(t)
	companyID := "c1"

	m.catRepo.EXPECT().FindByNameLower("bathroom").Return(category.Category{ID: "cat1", Name: "bathroom"}, nil)
	m.userRepo.EXPECT().FindByID("u1").Return(user.User{ID: "u1", Email: "u1@test.com", CompanyID: &companyID}, nil)
	m.ticket.EXPECT().Create(gomock.Any()).DoAndReturn(func(tk *ticket.Ticket) error {
		assert.Equal(t, ticket.StatusSubmitted, tk.Status)
		assert.Equal(t, "c1", tk.CompanyID)
		assert.Equal(t, "u1", tk.CreatedBy)
		assert.NotEmpty(t, tk.InitialImage)
		return nil
	})

	tk, err := svc.Create(context.Background(), claimsFor("u1", "u1@test.com", "user"),
		ticket.CreateTicketInput{Category: "Bathroom", Description: " leaking sink "}, jpegUpload())
	assert.NoError(t, err)
	assert.Equal(t, "leaking sink", tk.Description)
	assert.Equal(t, 1, m.images.saved)
}

func TestCreateTicket_RoleDenied(t *testing.T) {
	svc, _ := setupTicketService(t)

	_, err := svc.Create(context.Background(), claimsFor("a1", "a@test.com", "admin"),
		ticket.CreateTicketInput{Category: "bathroom", Description: "x"}, jpegUpload())
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestCreateTicket_UnknownCategory(t *testing.T) {
	svc, m := setupTicketService(t)

	m.catRepo.EXPECT().FindByNameLower("sofa").Return(category.Category{}, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), claimsFor("u1", "u1@test.com", "user"),
		ticket.CreateTicketInput{Category: "sofa", Description: "torn"}, jpegUpload())
	assert.Equal(t, ErrUnknownCategory, err)
}

func TestCreateTicket_NoCompany(t *testing.T) {
	svc, m := setupTicketService(t)

	m.catRepo.EXPECT().FindByNameLower("ac").Return(category.Category{ID: "cat1"}, nil)
	m.userRepo.EXPECT().FindByID("u1").Return(user.User{ID: "u1"}, nil)

	_, err := svc.Create(context.Background(), claimsFor("u1", "u1@test.com", "user"),
		ticket.CreateTicketInput{Category: "ac", Description: "broken"}, jpegUpload())
	assert.Equal(t, ErrNoCompany, err)
}

func TestCreateTicket_MissingImage(t *testing.T) {
	svc, m := setupTicketService(t)
	companyID := "c1"

	m.catRepo.EXPECT().FindByNameLower("ac").Return(category.Category{ID: "cat1"}, nil)
	m.userRepo.EXPECT().FindByID("u1").Return(user.User{ID: "u1", CompanyID: &companyID}, nil)

	_, err := svc.Create(context.Background(), claimsFor("u1", "u1@test.com", "user"),
		ticket.CreateTicketInput{Category: "ac", Description: "broken"}, nil)
	assert.Equal(t, ErrMissingImage, err)
}

func TestCreateTicket_BlankDescription(t *testing.T) {
	svc, _ := setupTicketService(t)

	_, err := svc.Create(context.Background(), claimsFor("u1", "u1@test.com", "user"),
		ticket.CreateTicketInput{Category: "ac", Description: "   "}, jpegUpload())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// --------------------- List ---------------------

func TestListTickets_AdminSeesAll(t *testing.T) {
	svc, m := setupTicketService(t)

	m.ticket.EXPECT().List(repository.ListScope{}).Return([]ticket.Ticket{{ID: "t1"}, {ID: "t2"}}, nil)

	tickets, err := svc.List(claimsFor("a1", "a@test.com", "admin"))
	assert.NoError(t, err)
	assert.Len(t, tickets, 2)
}

func TestListTickets_UserScopedToCompany(t *testing.T) {
	svc, m := setupTicketService(t)
	companyID := "c1"

	m.userRepo.EXPECT().FindByID("u1").Return(user.User{ID: "u1", CompanyID: &companyID}, nil)
	m.ticket.EXPECT().List(repository.ListScope{CompanyIDs: []string{"c1"}}).Return([]ticket.Ticket{{ID: "t1"}}, nil)

	tickets, err := svc.List(claimsFor("u1", "u1@test.com", "user"))
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestListTickets_UserWithoutCompanyGetsEmptySet(t *testing.T) {
	svc, m := setupTicketService(t)

	m.userRepo.EXPECT().FindByID("u1").Return(user.User{ID: "u1"}, nil)
	m.ticket.EXPECT().List(repository.ListScope{Empty: true}).Return([]ticket.Ticket{}, nil)

	tickets, err := svc.List(claimsFor("u1", "u1@test.com", "user"))
	assert.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestListTickets_ManagerOversightUnion(t *testing.T) {
	svc, m := setupTicketService(t)

	m.userRepo.EXPECT().CompanyIDs("m1").Return([]string{"c1", "c2"}, nil)
	m.ticket.EXPECT().List(repository.ListScope{CompanyIDs: []string{"c1", "c2"}}).Return([]ticket.Ticket{{ID: "t1"}}, nil)

	tickets, err := svc.List(claimsFor("m1", "m@test.com", "manager"))
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestListTickets_ProviderSeesAssignmentsOnly(t *testing.T) {
	svc, m := setupTicketService(t)

	m.ticket.EXPECT().List(repository.ListScope{AssignedProvider: "p1"}).Return([]ticket.Ticket{}, nil)

	_, err := svc.List(claimsFor("p1", "p@test.com", "serviceprovider"))
	assert.NoError(t, err)
}

func TestListTickets_BackfillsInvoiceAmount(t *testing.T) {
	svc, m := setupTicketService(t)
	invID := "inv1"
	amount := 120.5

	m.ticket.EXPECT().List(repository.ListScope{}).Return([]ticket.Ticket{{ID: "t1", InvoiceID: &invID}}, nil)
	m.invoice.EXPECT().FindByID("inv1").Return(invoice.Invoice{ID: "inv1", Amount: &amount}, nil)

	tickets, err := svc.List(claimsFor("a1", "a@test.com", "admin"))
	assert.NoError(t, err)
	assert.Equal(t, &amount, tickets[0].InvoiceAmount)
}

// --------------------- AssignProvider ---------------------

func TestAssignProvider_Success(t *testing.T) {
	svc, m := setupTicketService(t)

	m.userRepo.EXPECT().FindByEmail("provider@test.com").Return(user.User{ID: "p1", Role: user.RoleServiceProvider}, nil)
	m.ticket.EXPECT().Updates("t1", map[string]any{
		"assigned_provider": "p1",
		"status":            ticket.StatusProviderAssignment,
	}).Return(int64(1), nil)

	err := svc.AssignProvider(claimsFor("a1", "a@test.com", "admin"), "t1", "Provider@Test.com ")
	assert.NoError(t, err)
}

func TestAssignProvider_ProviderUnknown(t *testing.T) {
	svc, m := setupTicketService(t)

	m.userRepo.EXPECT().FindByEmail("nobody@test.com").Return(user.User{}, gorm.ErrRecordNotFound)

	err := svc.AssignProvider(claimsFor("a1", "a@test.com", "admin"), "t1", "nobody@test.com")
	assert.Equal(t, ErrProviderNotFound, err)
}

func TestAssignProvider_TicketMissing(t *testing.T) {
	svc, m := setupTicketService(t)

	m.userRepo.EXPECT().FindByEmail("provider@test.com").Return(user.User{ID: "p1"}, nil)
	m.ticket.EXPECT().Updates("nope", gomock.Any()).Return(int64(0), nil)

	err := svc.AssignProvider(claimsFor("a1", "a@test.com", "admin"), "nope", "provider@test.com")
	assert.Equal(t, ErrTicketNotFound, err)
}

// --------------------- SubmitCompletion ---------------------

func TestSubmitCompletion_ReplacesImageSet(t *testing.T) {
	svc, m := setupTicketService(t)

	m.ticket.EXPECT().FindByID("t1").Return(ticket.Ticket{ID: "t1", Status: ticket.StatusProviderAssignment}, nil)
	m.ticket.EXPECT().Updates("t1", gomock.Any()).DoAndReturn(func(id string, fields map[string]any) (int64, error) {
		assert.Equal(t, ticket.StatusWorkCompletion, fields["status"])
		return 1, nil
	})

	refs, err := svc.SubmitCompletion(context.Background(), claimsFor("p1", "p@test.com", "serviceprovider"),
		"t1", []Upload{*jpegUpload(), *jpegUpload()})
	assert.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Equal(t, 2, m.images.saved)
}

func TestSubmitCompletion_NoImages(t *testing.T) {
	svc, _ := setupTicketService(t)

	_, err := svc.SubmitCompletion(context.Background(), claimsFor("p1", "p@test.com", "serviceprovider"), "t1", nil)
	assert.Equal(t, ErrNoCompletionImage, err)
}

// --------------------- MemberVerify ---------------------

func TestMemberVerify_CreatorSucceeds(t *testing.T) {
	svc, m := setupTicketService(t)

	m.ticket.EXPECT().FindByID("t1").Return(ticket.Ticket{ID: "t1", CompanyID: "c1", CreatedBy: "u1", Status: ticket.StatusWorkCompletion}, nil)
	m.userRepo.EXPECT().CompanyIDs("u1").Return([]string{"c1"}, nil)
	m.ticket.EXPECT().Updates("t1", map[string]any{
		"status": ticket.StatusAccountantProcessing,
	}).Return(int64(1), nil)

	err := svc.MemberVerify(claimsFor("u1", "u1@test.com", "user"), "t1")
	assert.NoError(t, err)
}

func TestMemberVerify_NonCreatorDenied(t *testing.T) {
	svc, m := setupTicketService(t)

	m.ticket.EXPECT().FindByID("t1").Return(ticket.Ticket{ID: "t1", CompanyID: "c1", CreatedBy: "u1"}, nil)

	err := svc.MemberVerify(claimsFor("u2", "u2@test.com", "user"), "t1")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

// --------------------- Get ---------------------

func TestGetTicket_HiddenReadsAsAbsent(t *testing.T) {
	svc, m := setupTicketService(t)

	m.ticket.EXPECT().FindByID("t1").Return(ticket.Ticket{ID: "t1", CompanyID: "c1"}, nil)
	m.userRepo.EXPECT().CompanyIDs("u9").Return([]string{"c9"}, nil)

	_, err := svc.Get(claimsFor("u9", "u9@test.com", "user"), "t1")
	assert.Equal(t, ErrTicketNotFound, err)
}

func TestGetTicket_ProviderSeesOwnAssignment(t *testing.T) {
	svc, m := setupTicketService(t)
	provider := "p1"

	m.ticket.EXPECT().FindByID("t1").Return(ticket.Ticket{ID: "t1", AssignedProvider: &provider}, nil)

	tk, err := svc.Get(claimsFor("p1", "p@test.com", "serviceprovider"), "t1")
	assert.NoError(t, err)
	assert.Equal(t, "t1", tk.ID)
}
