package request_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
)

func TestNew_AlwaysStartsPending(t *testing.T) {
	r := request.New(uuid.New(), "grade_appeal", "ערעור ציון", "details")
	assert.Equal(t, request.StatusPending, r.Status())
	assert.Empty(t, r.Feedback())
}

func TestWithStatus_ReplacesFeedback(t *testing.T) {
	r := request.New(uuid.New(), "grade_appeal", "subj", "desc")
	r = r.WithStatus(request.StatusInProgress, "first pass")
	r = r.WithStatus(request.StatusApproved, "approved")
	assert.Equal(t, request.StatusApproved, r.Status())
	assert.Equal(t, "approved", r.Feedback())
}

func TestIsParticipant(t *testing.T) {
	requester := uuid.New()
	reviewer := uuid.New()
	outsider := uuid.New()

	r := request.New(requester, "t", "s", "d", request.WithAssignedReviewer(reviewer))
	assert.True(t, r.IsParticipant(requester))
	assert.True(t, r.IsParticipant(reviewer))
	assert.False(t, r.IsParticipant(outsider))

	unassigned := request.New(requester, "t", "s", "d")
	assert.True(t, unassigned.IsParticipant(requester))
	assert.False(t, unassigned.IsParticipant(reviewer))
}

func TestOtherParty(t *testing.T) {
	requester := uuid.New()
	reviewer := uuid.New()
	admin := uuid.New()

	r := request.New(requester, "t", "s", "d", request.WithAssignedReviewer(reviewer))

	other, ok := r.OtherParty(reviewer)
	require.True(t, ok)
	assert.Equal(t, requester, other, "reviewer's counterpart is the requester")

	other, ok = r.OtherParty(requester)
	require.True(t, ok)
	assert.Equal(t, reviewer, other, "requester's counterpart is the reviewer")

	other, ok = r.OtherParty(admin)
	require.True(t, ok)
	assert.Equal(t, reviewer, other, "third parties notify the reviewer side")
}

func TestOtherParty_NoReviewerAssigned(t *testing.T) {
	requester := uuid.New()
	r := request.New(requester, "t", "s", "d")
	_, ok := r.OtherParty(requester)
	assert.False(t, ok)
}
