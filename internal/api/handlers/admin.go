package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/search"
	"github.com/jafarshop/dealmarket/internal/service"
)

// UpdateStatusRequest represents a ticket status change
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status" binding:"required"`
}

// AssignTicketRequest represents a ticket assignment
type AssignTicketRequest struct {
	AdminID   string `json:"adminId" binding:"required"`
	AdminName string `json:"adminName"`
}

// HandleListTickets handles GET /v1/admin/tickets
func HandleListTickets(tickets *service.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := domain.TicketFilters{
			Status:   domain.TicketStatus(c.Query("status")),
			Priority: domain.TicketPriority(c.Query("priority")),
			Category: c.Query("category"),
			Query:    c.Query("q"),
		}

		list := search.FilterTickets(tickets.All(c.Request.Context()), filters)

		c.JSON(http.StatusOK, gin.H{
			"tickets": list,
			"count":   len(list),
		})
	}
}

// HandleUpdateTicketStatus handles POST /v1/admin/tickets/:id/status
func HandleUpdateTicketStatus(tickets *service.TicketService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ticket, err := tickets.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, logger, err, "update ticket status")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     ticket.ID,
			"status": ticket.Status,
		})
	}
}

// HandleAssignTicket handles POST /v1/admin/tickets/:id/assign
func HandleAssignTicket(tickets *service.TicketService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AssignTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ticket, err := tickets.AssignAdmin(c.Request.Context(), c.Param("id"), req.AdminID, req.AdminName)
		if err != nil {
			respondError(c, logger, err, "assign ticket")
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

// HandleTicketStats handles GET /v1/admin/tickets/stats
func HandleTicketStats(tickets *service.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, tickets.Stats(c.Request.Context()))
	}
}
