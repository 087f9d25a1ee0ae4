package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository"
	"github.com/jafarshop/dealmarket/internal/search"
	"github.com/jafarshop/dealmarket/pkg/errors"
)

// TicketInput is what a user supplies when opening a ticket
type TicketInput struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	UserID      string                `json:"userId"`
	UserName    string                `json:"userName"`
	UserEmail   string                `json:"userEmail"`
}

// MessageInput is one reply appended to a ticket conversation
type MessageInput struct {
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	IsAdmin    bool   `json:"isAdmin"`
	Message    string `json:"message" binding:"required"`
}

// TicketPatch is a partial ticket update; nil fields are left unchanged
type TicketPatch struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Category    *string                `json:"category,omitempty"`
	Priority    *domain.TicketPriority `json:"priority,omitempty"`
	Status      *domain.TicketStatus   `json:"status,omitempty"`
	AssignedTo  *domain.Assignment     `json:"assignedTo,omitempty"`
}

// TicketStats counts tickets per status
type TicketStats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// TicketService owns the support ticket collection. Until the first
// write the collection defaults to the seed tickets.
type TicketService struct {
	store    repository.Store
	logger   *zap.Logger
	defaults []domain.Ticket
	now      func() time.Time

	mu      sync.Mutex
	loaded  bool
	tickets []domain.Ticket
}

// NewTicketService creates a new ticket service
func NewTicketService(store repository.Store, defaults []domain.Ticket, logger *zap.Logger) *TicketService {
	return &TicketService{
		store:    store,
		logger:   logger,
		defaults: defaults,
		now:      time.Now,
	}
}

// Create opens a new ticket and puts it at the front of the collection
func (s *TicketService) Create(ctx context.Context, input TicketInput) (domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Ticket{}, &errors.ErrValidation{Field: "title", Message: "is required"}
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.IsValid() {
		return domain.Ticket{}, &errors.ErrValidation{Field: "priority", Message: "unknown priority " + string(priority)}
	}

	now := s.now().UTC()
	ticket := domain.Ticket{
		ID:          newTicketID(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		UserID:      input.UserID,
		UserName:    input.UserName,
		UserEmail:   input.UserEmail,
		Messages:    []domain.TicketMessage{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.tickets = append([]domain.Ticket{ticket}, s.tickets...)
	s.flush(ctx)

	s.logger.Info("Ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("user_id", ticket.UserID),
		zap.String("priority", string(ticket.Priority)),
	)
	return cloneTicket(ticket), nil
}

// UpdateStatus moves a ticket to status. Entering resolved or closed for
// the first time stamps ResolvedAt or ClosedAt; later entries keep the
// original stamp.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error) {
	return s.mutate(ctx, id, func(t *domain.Ticket, now time.Time) error {
		if !t.Status.CanTransitionTo(status) {
			return &errors.ErrValidation{Field: "status", Message: "unknown status " + string(status)}
		}
		applyStatus(t, status, now)
		return nil
	})
}

// AppendMessage adds a reply to the ticket conversation
func (s *TicketService) AppendMessage(ctx context.Context, id string, input MessageInput) (domain.TicketMessage, error) {
	text := strings.TrimSpace(input.Message)
	if text == "" {
		return domain.TicketMessage{}, &errors.ErrValidation{Field: "message", Message: "is required"}
	}

	var msg domain.TicketMessage
	_, err := s.mutate(ctx, id, func(t *domain.Ticket, now time.Time) error {
		msg = domain.TicketMessage{
			ID:         "MSG-" + uuid.NewString(),
			TicketID:   t.ID,
			AuthorID:   input.AuthorID,
			AuthorName: input.AuthorName,
			IsAdmin:    input.IsAdmin,
			Message:    text,
			CreatedAt:  now,
		}
		t.Messages = append(t.Messages, msg)
		return nil
	})
	if err != nil {
		return domain.TicketMessage{}, err
	}
	return msg, nil
}

// AssignAdmin records which admin handles the ticket
func (s *TicketService) AssignAdmin(ctx context.Context, id, adminID, adminName string) (domain.Ticket, error) {
	if adminID == "" {
		return domain.Ticket{}, &errors.ErrValidation{Field: "adminId", Message: "is required"}
	}
	return s.mutate(ctx, id, func(t *domain.Ticket, _ time.Time) error {
		t.AssignedTo = &domain.Assignment{AdminID: adminID, AdminName: adminName}
		return nil
	})
}

// Patch applies a shallow merge of patch onto the ticket
func (s *TicketService) Patch(ctx context.Context, id string, patch TicketPatch) (domain.Ticket, error) {
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return domain.Ticket{}, &errors.ErrValidation{Field: "priority", Message: "unknown priority " + string(*patch.Priority)}
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.Ticket{}, &errors.ErrValidation{Field: "status", Message: "unknown status " + string(*patch.Status)}
	}

	return s.mutate(ctx, id, func(t *domain.Ticket, now time.Time) error {
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.AssignedTo != nil {
			assigned := *patch.AssignedTo
			t.AssignedTo = &assigned
		}
		if patch.Status != nil {
			applyStatus(t, *patch.Status, now)
		}
		return nil
	})
}

// Delete removes a ticket from the collection
func (s *TicketService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	i := s.indexOf(id)
	if i < 0 {
		return &errors.ErrNotFound{Resource: "ticket", ID: id}
	}
	s.tickets = slices.Delete(s.tickets, i, i+1)
	s.flush(ctx)

	s.logger.Info("Ticket deleted", zap.String("ticket_id", id))
	return nil
}

func (s *TicketService) GetByID(ctx context.Context, id string) (domain.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	i := s.indexOf(id)
	if i < 0 {
		return domain.Ticket{}, false
	}
	return cloneTicket(s.tickets[i]), true
}

// GetByUser returns the user's tickets, most recently updated first
func (s *TicketService) GetByUser(ctx context.Context, userID string) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]domain.Ticket, 0)
	for _, t := range s.tickets {
		if t.UserID == userID {
			out = append(out, cloneTicket(t))
		}
	}
	search.SortTicketsByActivity(out)
	return out
}

// All returns every ticket in collection order
func (s *TicketService) All(ctx context.Context) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, cloneTicket(t))
	}
	return out
}

func (s *TicketService) Stats(ctx context.Context) TicketStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	stats := TicketStats{Total: len(s.tickets)}
	for _, t := range s.tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}
	return stats
}

// mutate runs fn against the stored ticket, bumps UpdatedAt and flushes.
// fn errors leave the ticket untouched.
func (s *TicketService) mutate(ctx context.Context, id string, fn func(t *domain.Ticket, now time.Time) error) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	i := s.indexOf(id)
	if i < 0 {
		return domain.Ticket{}, &errors.ErrNotFound{Resource: "ticket", ID: id}
	}

	now := s.now().UTC()
	updated := cloneTicket(s.tickets[i])
	if err := fn(&updated, now); err != nil {
		return domain.Ticket{}, err
	}
	updated.UpdatedAt = now
	s.tickets[i] = updated
	s.flush(ctx)

	return cloneTicket(updated), nil
}

func (s *TicketService) indexOf(id string) int {
	return slices.IndexFunc(s.tickets, func(t domain.Ticket) bool { return t.ID == id })
}

func (s *TicketService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	defaults := make([]domain.Ticket, 0, len(s.defaults))
	for _, t := range s.defaults {
		defaults = append(defaults, cloneTicket(t))
	}
	s.tickets = repository.ReadJSON(ctx, s.store, repository.KeyTickets, defaults, s.logger)
	s.loaded = true
}

func (s *TicketService) flush(ctx context.Context) {
	if err := repository.WriteJSON(ctx, s.store, repository.KeyTickets, s.tickets); err != nil {
		s.logger.Error("Failed to persist tickets", zap.Error(err))
	}
}

func applyStatus(t *domain.Ticket, status domain.TicketStatus, now time.Time) {
	t.Status = status
	switch status {
	case domain.TicketStatusResolved:
		if t.ResolvedAt == nil {
			stamp := now
			t.ResolvedAt = &stamp
		}
	case domain.TicketStatusClosed:
		if t.ClosedAt == nil {
			stamp := now
			t.ClosedAt = &stamp
		}
	}
}

func newTicketID() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func cloneTicket(t domain.Ticket) domain.Ticket {
	t.Messages = append([]domain.TicketMessage{}, t.Messages...)
	if t.AssignedTo != nil {
		assigned := *t.AssignedTo
		t.AssignedTo = &assigned
	}
	if t.ResolvedAt != nil {
		resolved := *t.ResolvedAt
		t.ResolvedAt = &resolved
	}
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		t.ClosedAt = &closed
	}
	return t
}
