package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/service"
)

// CreateTicketRequest represents a new ticket payload
type CreateTicketRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// PostMessageRequest represents a ticket reply payload
type PostMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// HandleListMyTickets handles GET /v1/tickets
func HandleListMyTickets(tickets *service.TicketService, profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user := profile.Get(ctx)
		if !user.IsLoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		list := tickets.GetByUser(ctx, user.ID)
		c.JSON(http.StatusOK, gin.H{
			"tickets": list,
			"count":   len(list),
		})
	}
}

// HandleCreateTicket handles POST /v1/tickets
func HandleCreateTicket(tickets *service.TicketService, profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user := profile.Get(ctx)
		if !user.IsLoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		var req CreateTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ticket, err := tickets.Create(ctx, service.TicketInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Priority:    req.Priority,
			UserID:      user.ID,
			UserName:    user.Name,
			UserEmail:   user.Email,
		})
		if err != nil {
			respondError(c, logger, err, "create ticket")
			return
		}

		c.JSON(http.StatusCreated, ticket)
	}
}

// HandleGetTicket handles GET /v1/tickets/:id
func HandleGetTicket(tickets *service.TicketService, profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := visibleTicket(c, tickets, profile)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

// HandlePatchTicket handles PATCH /v1/tickets/:id
func HandlePatchTicket(tickets *service.TicketService, profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := visibleTicket(c, tickets, profile)
		if !ok {
			return
		}

		var patch service.TicketPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		// assignment is an admin decision
		if patch.AssignedTo != nil && !profile.IsAdmin(c.Request.Context()) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		updated, err := tickets.Patch(c.Request.Context(), ticket.ID, patch)
		if err != nil {
			respondError(c, logger, err, "update ticket")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// HandleDeleteTicket handles DELETE /v1/tickets/:id
func HandleDeleteTicket(tickets *service.TicketService, profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := visibleTicket(c, tickets, profile)
		if !ok {
			return
		}

		if err := tickets.Delete(c.Request.Context(), ticket.ID); err != nil {
			respondError(c, logger, err, "delete ticket")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandlePostMessage handles POST /v1/tickets/:id/messages
func HandlePostMessage(tickets *service.TicketService, profile *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, ok := visibleTicket(c, tickets, profile)
		if !ok {
			return
		}

		var req PostMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ctx := c.Request.Context()
		user := profile.Get(ctx)
		msg, err := tickets.AppendMessage(ctx, ticket.ID, service.MessageInput{
			AuthorID:   user.ID,
			AuthorName: user.Name,
			IsAdmin:    profile.IsAdmin(ctx),
			Message:    req.Message,
		})
		if err != nil {
			respondError(c, logger, err, "post message")
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// visibleTicket loads the ticket named by :id and checks that the caller
// owns it or is an admin. It writes the error response itself.
func visibleTicket(c *gin.Context, tickets *service.TicketService, profile *service.ProfileService) (domain.Ticket, bool) {
	ctx := c.Request.Context()
	user := profile.Get(ctx)
	isAdmin := profile.IsAdmin(ctx)
	if !user.IsLoggedIn() && !isAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return domain.Ticket{}, false
	}

	ticket, ok := tickets.GetByID(ctx, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return domain.Ticket{}, false
	}

	if ticket.UserID != user.ID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return domain.Ticket{}, false
	}
	return ticket, true
}
