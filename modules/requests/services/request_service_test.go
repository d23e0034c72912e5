package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/services"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

func createRequest(t *testing.T, f *fixture, dto *request.CreateDTO) request.Request {
	t.Helper()
	created, err := f.requestService.Create(ctxAs(f.student), dto)
	require.NoError(t, err)
	return created
}

func TestRequestService_Create_StartsPending(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "ערעור על ציון",
		Description: "פרטים",
	})
	assert.Equal(t, request.StatusPending, created.Status())
	assert.Equal(t, f.student.ID(), created.RequesterID())
	assert.Empty(t, created.Feedback())
	assert.Empty(t, f.notifications.all(), "creation itself sends no notification")
}

func TestRequestService_Create_AttachesValidReviewerHint(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	assert.Equal(t, f.reviewer.ID(), created.AssignedReviewer())
}

func TestRequestService_Create_DropsBadReviewerHint(t *testing.T) {
	f := newFixture(t)

	t.Run("unknown id", func(t *testing.T) {
		created := createRequest(t, f, &request.CreateDTO{
			RequestType:        "grade_appeal",
			Subject:            "s",
			Description:        "d",
			AssignedReviewerID: uuid.New(),
		})
		assert.False(t, created.HasAssignedReviewer())
	})

	t.Run("not a reviewing role", func(t *testing.T) {
		created := createRequest(t, f, &request.CreateDTO{
			RequestType:        "grade_appeal",
			Subject:            "s",
			Description:        "d",
			AssignedReviewerID: f.outsider.ID(),
		})
		assert.False(t, created.HasAssignedReviewer())
	})
}

func TestRequestService_Create_UnknownRequester(t *testing.T) {
	f := newFixture(t)
	ghost := f.student
	require.NoError(t, f.users.Delete(ctxAs(f.admin), f.student.ID()))
	_, err := f.requestService.Create(ctxAs(ghost), &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})
	assert.ErrorIs(t, err, services.ErrStudentNotFound)
}

func TestRequestService_UpdateStatus_ByAssignedReviewer(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})

	for _, raw := range []string{"in_progress", "approved", "rejected", "pending"} {
		updated, err := f.requestService.UpdateStatus(ctxAs(f.reviewer), created.ID(), raw, "note")
		require.NoError(t, err, raw)
		assert.Equal(t, request.Status(raw), updated.Status())
	}
}

func TestRequestService_UpdateStatus_AcceptsDisplayLabel(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	updated, err := f.requestService.UpdateStatus(ctxAs(f.reviewer), created.ID(), "אושר", "Approved")
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status())
	assert.Equal(t, "Approved", updated.Feedback())
}

func TestRequestService_UpdateStatus_NotifiesRequester(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	_, err := f.requestService.UpdateStatus(ctxAs(f.reviewer), created.ID(), "אושר", "Approved")
	require.NoError(t, err)

	got := f.notifications.forRecipient(f.student.ID())
	require.Len(t, got, 1, "exactly one notification per status change")
	assert.Contains(t, got[0].Message, "grade_appeal")
	assert.Contains(t, got[0].Message, "אושר")
	assert.False(t, got[0].IsRead)
}

func TestRequestService_UpdateStatus_RequesterForbidden(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	_, err := f.requestService.UpdateStatus(ctxAs(f.student), created.ID(), "approved", "")
	assert.ErrorIs(t, err, composables.ErrForbidden)
	assert.Empty(t, f.notifications.all())
}

func TestRequestService_UpdateStatus_UnassignedReviewerForbidden(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})
	_, err := f.requestService.UpdateStatus(ctxAs(f.reviewer), created.ID(), "approved", "")
	assert.ErrorIs(t, err, composables.ErrForbidden)
}

func TestRequestService_UpdateStatus_AdminAllowed(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})
	updated, err := f.requestService.UpdateStatus(ctxAs(f.admin), created.ID(), "rejected", "no")
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, updated.Status())
}

func TestRequestService_UpdateStatus_InvalidStatusLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	_, err := f.requestService.UpdateStatus(ctxAs(f.reviewer), created.ID(), "done", "")
	assert.ErrorIs(t, err, request.ErrInvalidStatus)

	unchanged, err := f.requests.GetByID(ctxAs(f.reviewer), created.ID())
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, unchanged.Status())
	assert.Empty(t, f.notifications.all())
}

func TestRequestService_UpdateStatus_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.requestService.UpdateStatus(ctxAs(f.admin), uuid.New(), "approved", "")
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestRequestService_ListOwn_RoundTrip(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})
	own, err := f.requestService.ListOwn(ctxAs(f.student), 10, 0)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, created.ID(), own[0].ID())
	assert.Equal(t, request.StatusPending, own[0].Status())
	assert.Empty(t, own[0].Feedback())
}

func TestRequestService_List_ReviewerSeesAssignedSubsetOnly(t *testing.T) {
	f := newFixture(t)
	assigned := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	createRequest(t, f, &request.CreateDTO{
		RequestType: "extension",
		Subject:     "s2",
		Description: "d2",
	})

	got, err := f.requestService.List(ctxAs(f.reviewer), &request.FindParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, assigned.ID(), got[0].ID())

	all, err := f.requestService.List(ctxAs(f.admin), &request.FindParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.requestService.List(ctxAs(f.student), &request.FindParams{Limit: 10})
	assert.ErrorIs(t, err, composables.ErrForbidden)
}

func TestRequestService_Count_ScopedLikeList(t *testing.T) {
	f := newFixture(t)
	createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	createRequest(t, f, &request.CreateDTO{
		RequestType: "extension",
		Subject:     "s2",
		Description: "d2",
	})

	mine, err := f.requestService.Count(ctxAs(f.reviewer), &request.FindParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine)

	all, err := f.requestService.Count(ctxAs(f.admin), &request.FindParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	_, err = f.requestService.Count(ctxAs(f.student), &request.FindParams{})
	assert.ErrorIs(t, err, composables.ErrForbidden)
}

func TestRequestService_GetByID_Authorization(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})

	_, err := f.requestService.GetByID(ctxAs(f.student), created.ID())
	assert.NoError(t, err)
	_, err = f.requestService.GetByID(ctxAs(f.reviewer), created.ID())
	assert.NoError(t, err)
	_, err = f.requestService.GetByID(ctxAs(f.admin), created.ID())
	assert.NoError(t, err)
	_, err = f.requestService.GetByID(ctxAs(f.outsider), created.ID())
	assert.ErrorIs(t, err, composables.ErrForbidden)
}

func TestRequestService_Reassign(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})

	_, err := f.requestService.Reassign(ctxAs(f.reviewer), created.ID(), f.reviewer.ID())
	assert.ErrorIs(t, err, composables.ErrForbidden)

	updated, err := f.requestService.Reassign(ctxAs(f.admin), created.ID(), f.reviewer.ID())
	require.NoError(t, err)
	assert.Equal(t, f.reviewer.ID(), updated.AssignedReviewer())
}
