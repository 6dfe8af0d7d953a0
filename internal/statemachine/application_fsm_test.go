package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

func newApplication(status string) *models.BeneficiaryApplication {
	return &models.BeneficiaryApplication{
		ID:                1,
		ApplicationStatus: status,
		HousingProgram:    models.ProgramSocializedHousing,
	}
}

func TestForwardPathThroughSiteVisit(t *testing.T) {
	ctx := context.Background()
	app := newApplication(models.ApplicationStatusSubmitted)
	path := []string{
		models.ApplicationStatusUnderReview,
		models.ApplicationStatusSiteVisitScheduled,
		models.ApplicationStatusSiteVisitCompleted,
		models.ApplicationStatusVerified,
		models.ApplicationStatusEligible,
		models.ApplicationStatusApproved,
		models.ApplicationStatusAllocated,
	}

	for _, next := range path {
		m := NewApplicationFSM(app)
		require.NoError(t, m.TransitionTo(ctx, next))
		assert.Equal(t, next, app.ApplicationStatus)
	}
}

func TestSubmittedToAllocatedIsIllegal(t *testing.T) {
	app := newApplication(models.ApplicationStatusSubmitted)
	m := NewApplicationFSM(app)

	err := m.TransitionTo(context.Background(), models.ApplicationStatusAllocated)
	require.Error(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, app.ApplicationStatus)
}

func TestWaitlistEdges(t *testing.T) {
	ctx := context.Background()

	app := newApplication(models.ApplicationStatusEligible)
	require.NoError(t, NewApplicationFSM(app).TransitionTo(ctx, models.ApplicationStatusWaitlisted))

	// waitlisted applications can be approved or finally ruled out
	require.NoError(t, NewApplicationFSM(app).TransitionTo(ctx, models.ApplicationStatusApproved))

	app = newApplication(models.ApplicationStatusWaitlisted)
	require.NoError(t, NewApplicationFSM(app).TransitionTo(ctx, models.ApplicationStatusNotEligible))

	// but never back to waitlisted from anywhere except eligible
	app = newApplication(models.ApplicationStatusUnderReview)
	assert.Error(t, NewApplicationFSM(app).TransitionTo(ctx, models.ApplicationStatusWaitlisted))
}

func TestCancellationFromEveryNonTerminalState(t *testing.T) {
	ctx := context.Background()
	for _, status := range nonTerminalStatuses {
		app := newApplication(status)
		m := NewApplicationFSM(app)
		require.NoError(t, m.TransitionTo(ctx, models.ApplicationStatusCancelled), "from %s", status)
		assert.Equal(t, models.ApplicationStatusCancelled, app.ApplicationStatus)
	}
}

func TestTerminalStatesHaveNoOutboundEdges(t *testing.T) {
	ctx := context.Background()
	terminals := []string{
		models.ApplicationStatusNotEligible,
		models.ApplicationStatusAllocated,
		models.ApplicationStatusCancelled,
		models.ApplicationStatusRejected,
	}
	targets := []string{
		models.ApplicationStatusUnderReview,
		models.ApplicationStatusEligible,
		models.ApplicationStatusApproved,
		models.ApplicationStatusAllocated,
		models.ApplicationStatusCancelled,
	}

	for _, terminal := range terminals {
		for _, target := range targets {
			if terminal == target {
				continue
			}
			app := newApplication(terminal)
			m := NewApplicationFSM(app)
			assert.Error(t, m.TransitionTo(ctx, target), "%s -> %s must be illegal", terminal, target)
			assert.Equal(t, terminal, app.ApplicationStatus)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	m := NewApplicationFSM(newApplication(models.ApplicationStatusSubmitted))
	assert.True(t, m.CanTransitionTo(models.ApplicationStatusUnderReview))
	assert.True(t, m.CanTransitionTo(models.ApplicationStatusCancelled))
	assert.False(t, m.CanTransitionTo(models.ApplicationStatusApproved))
	assert.False(t, m.CanTransitionTo("typo_status"))
}

func TestUnknownTargetStatus(t *testing.T) {
	m := NewApplicationFSM(newApplication(models.ApplicationStatusSubmitted))
	assert.Error(t, m.TransitionTo(context.Background(), "archived"))
}
