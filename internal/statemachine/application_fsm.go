package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/models"
)

// ApplicationFSM wraps a beneficiary application with its lifecycle state
// machine. The adjacency is an explicit enumeration: only the listed forward
// edges are legal, plus cancellation from any non-terminal state. Terminal
// states (not_eligible, allocated, cancelled, rejected) have no outbound
// edges at all.
type ApplicationFSM struct {
	application *models.BeneficiaryApplication
	fsm         *fsm.FSM
}

// eventForStatus maps each target status to the event that produces it
var eventForStatus = map[string]string{
	models.ApplicationStatusUnderReview:        "review",
	models.ApplicationStatusSiteVisitScheduled: "schedule_site_visit",
	models.ApplicationStatusSiteVisitCompleted: "complete_site_visit",
	models.ApplicationStatusVerified:           "verify",
	models.ApplicationStatusEligible:           "mark_eligible",
	models.ApplicationStatusNotEligible:        "mark_not_eligible",
	models.ApplicationStatusApproved:           "approve",
	models.ApplicationStatusWaitlisted:         "waitlist",
	models.ApplicationStatusAllocated:          "allocate",
	models.ApplicationStatusCancelled:          "cancel",
}

// nonTerminalStatuses lists every state cancellation is legal from
var nonTerminalStatuses = []string{
	models.ApplicationStatusSubmitted,
	models.ApplicationStatusUnderReview,
	models.ApplicationStatusSiteVisitScheduled,
	models.ApplicationStatusSiteVisitCompleted,
	models.ApplicationStatusVerified,
	models.ApplicationStatusEligible,
	models.ApplicationStatusApproved,
	models.ApplicationStatusWaitlisted,
}

// NewApplicationFSM creates a state machine seeded at the application's current status
func NewApplicationFSM(application *models.BeneficiaryApplication) *ApplicationFSM {
	afsm := &ApplicationFSM{
		application: application,
	}

	afsm.fsm = fsm.NewFSM(
		application.ApplicationStatus,
		fsm.Events{
			// submitted → under_review
			{Name: "review", Src: []string{models.ApplicationStatusSubmitted}, Dst: models.ApplicationStatusUnderReview},

			// under_review → site_visit_scheduled
			{Name: "schedule_site_visit", Src: []string{models.ApplicationStatusUnderReview}, Dst: models.ApplicationStatusSiteVisitScheduled},

			// site_visit_scheduled → site_visit_completed
			{Name: "complete_site_visit", Src: []string{models.ApplicationStatusSiteVisitScheduled}, Dst: models.ApplicationStatusSiteVisitCompleted},

			// site_visit_completed → verified
			{Name: "verify", Src: []string{models.ApplicationStatusSiteVisitCompleted}, Dst: models.ApplicationStatusVerified},

			// under_review/verified → eligible
			{Name: "mark_eligible", Src: []string{models.ApplicationStatusUnderReview, models.ApplicationStatusVerified}, Dst: models.ApplicationStatusEligible},

			// under_review/verified/waitlisted → not_eligible
			{Name: "mark_not_eligible", Src: []string{models.ApplicationStatusUnderReview, models.ApplicationStatusVerified, models.ApplicationStatusWaitlisted}, Dst: models.ApplicationStatusNotEligible},

			// eligible/waitlisted → approved
			{Name: "approve", Src: []string{models.ApplicationStatusEligible, models.ApplicationStatusWaitlisted}, Dst: models.ApplicationStatusApproved},

			// eligible → waitlisted
			{Name: "waitlist", Src: []string{models.ApplicationStatusEligible}, Dst: models.ApplicationStatusWaitlisted},

			// approved → allocated
			{Name: "allocate", Src: []string{models.ApplicationStatusApproved}, Dst: models.ApplicationStatusAllocated},

			// any non-terminal → cancelled
			{Name: "cancel", Src: nonTerminalStatuses, Dst: models.ApplicationStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return afsm
}

// CanTransitionTo reports whether moving to the target status is legal from
// the current status.
func (a *ApplicationFSM) CanTransitionTo(status string) bool {
	event, ok := eventForStatus[status]
	if !ok {
		return false
	}
	return a.fsm.Can(event)
}

// TransitionTo moves the application to the target status, or fails without
// touching it when the edge is not in the adjacency table.
func (a *ApplicationFSM) TransitionTo(ctx context.Context, status string) error {
	event, ok := eventForStatus[status]
	if !ok {
		return fmt.Errorf("unknown target status: %s", status)
	}

	if err := a.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("cannot move application from %s to %s: %w", a.application.ApplicationStatus, status, err)
	}

	a.application.ApplicationStatus = a.fsm.Current()
	return nil
}

// Current returns the current state
func (a *ApplicationFSM) Current() string {
	return a.fsm.Current()
}
