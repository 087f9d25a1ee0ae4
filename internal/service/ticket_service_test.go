package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository"
	"github.com/jafarshop/dealmarket/internal/repository/memory"
	"github.com/jafarshop/dealmarket/pkg/errors"
)

var ticketClockStart = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestTicketService(t *testing.T, store repository.Store) *TicketService {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)

	svc := NewTicketService(store, cat.Tickets(), zap.NewNop())
	svc.now = steppingClock(ticketClockStart)
	return svc
}

func TestTicketService_DefaultsToSeed(t *testing.T) {
	ctx := context.Background()
	svc := newTestTicketService(t, memory.NewStore())

	all := svc.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "TKT-001", all[0].ID)

	ticket, ok := svc.GetByID(ctx, "TKT-002")
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusResolved, ticket.Status)

	_, ok = svc.GetByID(ctx, "TKT-404")
	assert.False(t, ok)
}

func TestTicketService_Create(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestTicketService(t, store)

	ticket, err := svc.Create(ctx, TicketInput{
		Title:     "  Refund missing ",
		Category:  "billing",
		UserID:    "user-9",
		UserName:  "Riley",
		UserEmail: "riley@example.com",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.ID, "TKT-"))
	assert.Equal(t, "Refund missing", ticket.Title)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.NotNil(t, ticket.Messages)
	assert.Empty(t, ticket.Messages)
	assert.Equal(t, ticketClockStart, ticket.CreatedAt)
	assert.Nil(t, ticket.ResolvedAt)

	all := svc.All(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, ticket.ID, all[0].ID, "new tickets go first")

	reloaded := newTestTicketService(t, store)
	assert.Len(t, reloaded.All(ctx), 3)

	_, err = svc.Create(ctx, TicketInput{Title: " "})
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = svc.Create(ctx, TicketInput{Title: "x", Priority: "urgent"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "priority", verr.Field)
}

func TestTicketService_StatusTimestamps(t *testing.T) {
	ctx := context.Background()
	svc := newTestTicketService(t, memory.NewStore())

	ticket, err := svc.Create(ctx, TicketInput{Title: "Broken link", UserID: "user-1"})
	require.NoError(t, err)

	resolved, err := svc.UpdateStatus(ctx, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	firstResolved := *resolved.ResolvedAt
	assert.Equal(t, firstResolved, resolved.UpdatedAt)
	assert.True(t, resolved.UpdatedAt.After(ticket.UpdatedAt))

	reopened, err := svc.UpdateStatus(ctx, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, reopened.Status)
	require.NotNil(t, reopened.ResolvedAt, "resolvedAt survives reopening")

	again, err := svc.UpdateStatus(ctx, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, firstResolved, *again.ResolvedAt)
	assert.True(t, again.UpdatedAt.After(firstResolved))

	closed, err := svc.UpdateStatus(ctx, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, firstResolved, *closed.ResolvedAt)

	_, err = svc.UpdateStatus(ctx, ticket.ID, domain.TicketStatus("archived"))
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateStatus(ctx, "TKT-404", domain.TicketStatusClosed)
	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "TKT-404", nf.ID)
}

func TestTicketService_Messages(t *testing.T) {
	ctx := context.Background()
	svc := newTestTicketService(t, memory.NewStore())

	msg, err := svc.AppendMessage(ctx, "TKT-001", MessageInput{
		AuthorID:   "user-1",
		AuthorName: "Jordan Lee",
		Message:    "Any update?",
	})
	require.NoError(t, err)
	assert.Equal(t, "TKT-001", msg.TicketID)
	assert.True(t, strings.HasPrefix(msg.ID, "MSG-"))

	ticket, ok := svc.GetByID(ctx, "TKT-001")
	require.True(t, ok)
	require.Len(t, ticket.Messages, 2)
	assert.Equal(t, "Any update?", ticket.Messages[1].Message)
	assert.Equal(t, msg.CreatedAt, ticket.UpdatedAt)

	_, err = svc.AppendMessage(ctx, "TKT-001", MessageInput{Message: "  "})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)

	_, err = svc.AppendMessage(ctx, "TKT-404", MessageInput{Message: "hello"})
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestTicketService_AssignPatchDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestTicketService(t, memory.NewStore())

	assigned, err := svc.AssignAdmin(ctx, "TKT-002", "admin-7", "Casey")
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, "admin-7", assigned.AssignedTo.AdminID)

	title := "Coupon SAVE20 rejected"
	closed := domain.TicketStatusClosed
	priority := domain.TicketPriorityLow
	patched, err := svc.Patch(ctx, "TKT-002", TicketPatch{Title: &title, Status: &closed, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, title, patched.Title)
	assert.Equal(t, domain.TicketPriorityLow, patched.Priority)
	assert.Equal(t, "billing", patched.Category, "unset fields are kept")
	require.NotNil(t, patched.ClosedAt, "status changes via patch still stamp closedAt")
	assert.Equal(t, "Casey", patched.AssignedTo.AdminName)

	bad := domain.TicketPriority("someday")
	_, err = svc.Patch(ctx, "TKT-002", TicketPatch{Priority: &bad})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, svc.Delete(ctx, "TKT-002"))
	_, ok := svc.GetByID(ctx, "TKT-002")
	assert.False(t, ok)

	var nf *errors.ErrNotFound
	assert.ErrorAs(t, svc.Delete(ctx, "TKT-002"), &nf)
}

func TestTicketService_GetByUserAndStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestTicketService(t, memory.NewStore())

	older, err := svc.Create(ctx, TicketInput{Title: "First", UserID: "user-5"})
	require.NoError(t, err)
	newer, err := svc.Create(ctx, TicketInput{Title: "Second", UserID: "user-5"})
	require.NoError(t, err)

	mine := svc.GetByUser(ctx, "user-5")
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)

	_, err = svc.AppendMessage(ctx, older.ID, MessageInput{Message: "bump"})
	require.NoError(t, err)

	mine = svc.GetByUser(ctx, "user-5")
	assert.Equal(t, older.ID, mine[0].ID, "recent activity moves a ticket up")
	assert.Empty(t, svc.GetByUser(ctx, "nobody"))

	stats := svc.Stats(ctx)
	assert.Equal(t, TicketStats{Total: 4, Open: 2, InProgress: 1, Resolved: 1}, stats)
}

func TestTicketService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc := newTestTicketService(t, memory.NewStore())

	ticket, ok := svc.GetByID(ctx, "TKT-001")
	require.True(t, ok)
	ticket.Messages[0].Message = "tampered"
	ticket.AssignedTo.AdminName = "tampered"

	again, _ := svc.GetByID(ctx, "TKT-001")
	assert.NotEqual(t, "tampered", again.Messages[0].Message)
	assert.NotEqual(t, "tampered", again.AssignedTo.AdminName)
}
