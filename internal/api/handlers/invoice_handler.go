package handlers

import (
	"net/http"

	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	svc *application.InvoiceService
}

func NewInvoiceHandler(svc *application.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Create godoc
// @Summary Raise an invoice for a ticket
// @Tags invoices
// @Accept mpfd
// @Produce json
// @Param ticket_id formData string true "Ticket ID"
// @Param amount formData number false "Amount"
// @Param image formData file false "Supporting image (required when amount is absent)"
// @Success 201 {object} response.CreatedResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	var input invoice.CreateInvoiceInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, apperr.Validation("ticket_id required"))
		return
	}

	var upload *application.Upload
	if fh, err := c.FormFile("image"); err == nil {
		up, closeFn, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, err)
			return
		}
		defer closeFn()
		upload = up
	}

	inv, err := h.svc.Create(c.Request.Context(), claims, input, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.CreatedResponse{ID: inv.ID})
}

// Approve godoc
// @Summary Manager approves a pending invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.MessageResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /invoices/{id}/approve [patch]
func (h *InvoiceHandler) Approve(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	if err := h.svc.Approve(claims, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Approved"})
}

// Reject godoc
// @Summary Manager rejects a pending invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.MessageResponse
// @Router /invoices/{id}/reject [patch]
func (h *InvoiceHandler) Reject(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	if err := h.svc.Reject(claims, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Rejected"})
}

// Process godoc
// @Summary Accountant settles an approved invoice
// @Tags invoices
// @Accept mpfd
// @Produce json
// @Param id path string true "Invoice ID"
// @Param payment_image formData file false "Payment evidence (JPEG/PNG)"
// @Success 200 {object} response.MessageResponse
// @Router /invoices/{id}/process [patch]
func (h *InvoiceHandler) Process(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	var upload *application.Upload
	if fh, err := c.FormFile("payment_image"); err == nil {
		up, closeFn, err := uploadFromHeader(fh)
		if err != nil {
			respondError(c, err)
			return
		}
		defer closeFn()
		upload = up
	}

	if err := h.svc.Process(c.Request.Context(), claims, c.Param("id"), upload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Payment processed"})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)

	inv, err := h.svc.Get(claims, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
