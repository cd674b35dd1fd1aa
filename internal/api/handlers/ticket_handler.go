package handlers

import (
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	svc *application.TicketService
}

func NewTicketHandler(svc *application.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Create godoc
// @Summary Submit a service request
// @Tags tickets
// @Accept mpfd
// @Produce json
// @Param category formData string true "Category name"
// @Param description formData string true "Description"
// @Param image formData file true "Initial evidence image (JPEG/PNG)"
// @Success 201 {object} response.CreatedResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	var input ticket.CreateTicketInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, apperr.Validation("category and description are required"))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperr.Validation("image is required"))
		return
	}
	upload, closeFn, err := uploadFromHeader(fh)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeFn()

	t, err := h.svc.Create(c.Request.Context(), claims, input, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.CreatedResponse{ID: t.ID, Status: string(t.Status)})
}

// List godoc
// @Summary List tickets visible to the caller
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string][]ticket.Ticket
// @Router /tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	tickets, err := h.svc.List(claims)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *TicketHandler) Get(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	t, err := h.svc.Get(claims, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Assign godoc
// @Summary Route a ticket to a service provider
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param input body ticket.AssignInput true "Provider"
// @Success 200 {object} response.MessageResponse
// @Router /tickets/{id}/assign [patch]
func (h *TicketHandler) Assign(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	var input ticket.AssignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("provider_email required"))
		return
	}

	if err := h.svc.AssignProvider(claims, c.Param("id"), input.ProviderEmail); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Assigned"})
}

// Complete godoc
// @Summary Submit completion evidence
// @Tags tickets
// @Accept mpfd
// @Produce json
// @Param id path string true "Ticket ID"
// @Param images formData file true "Completion images (JPEG/PNG, one or more)"
// @Success 200 {object} response.MessageResponse
// @Router /tickets/{id}/complete [post]
func (h *TicketHandler) Complete(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, apperr.Validation("At least one completion image is required"))
		return
	}

	var uploads []application.Upload
	for _, fh := range form.File["images"] {
		up, closeFn, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, err)
			return
		}
		defer closeFn()
		uploads = append(uploads, *up)
	}

	if _, err := h.svc.SubmitCompletion(c.Request.Context(), claims, c.Param("id"), uploads); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Work submitted"})
}

// Verify godoc
// @Summary Requester verifies completed work
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.MessageResponse
// @Router /tickets/{id}/verify [patch]
func (h *TicketHandler) Verify(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	if err := h.svc.MemberVerify(claims, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Verified"})
}

// ServeUpload streams a stored image by ref.
func (h *TicketHandler) ServeUpload(c *gin.Context) {
	data, contentType, err := h.svc.Images.Load(c.Request.Context(), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
