package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/comment"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

func TestCommentService_Post_ByReviewerNotifiesRequester(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "ערעור ציון",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})

	posted, err := f.commentService.Post(ctxAs(f.reviewer), created.ID(), "נא לצרף מסמכים")
	require.NoError(t, err)
	assert.Equal(t, f.reviewer.ID(), posted.AuthorID)
	assert.False(t, posted.IsRead)

	got := f.notifications.forRecipient(f.student.ID())
	require.Len(t, got, 1)
	assert.Equal(t, `התקבלה תגובה חדשה לבקשה "grade_appeal"`, got[0].Message)
	assert.Empty(t, f.notifications.forRecipient(f.reviewer.ID()))
}

func TestCommentService_Post_ByRequesterNotifiesReviewer(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})

	_, err := f.commentService.Post(ctxAs(f.student), created.ID(), "צירפתי")
	require.NoError(t, err)

	require.Len(t, f.notifications.forRecipient(f.reviewer.ID()), 1)
	assert.Empty(t, f.notifications.forRecipient(f.student.ID()))
}

func TestCommentService_Post_NoReviewerAssigned_NoNotification(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})

	_, err := f.commentService.Post(ctxAs(f.student), created.ID(), "שאלה")
	require.NoError(t, err, "missing counterpart is not an error")
	assert.Empty(t, f.notifications.all())

	thread, err := f.commentService.List(ctxAs(f.student), created.ID())
	require.NoError(t, err)
	assert.Len(t, thread, 1)
}

func TestCommentService_Post_OutsiderForbidden(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})

	_, err := f.commentService.Post(ctxAs(f.outsider), created.ID(), "אני לא קשור")
	assert.ErrorIs(t, err, composables.ErrForbidden)

	thread, err := f.commentService.List(ctxAs(f.student), created.ID())
	require.NoError(t, err)
	assert.Empty(t, thread, "forbidden post leaves no comment behind")
	assert.Empty(t, f.notifications.all(), "and no notification")
}

func TestCommentService_Post_EmptyContent(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})
	_, err := f.commentService.Post(ctxAs(f.student), created.ID(), "")
	assert.ErrorIs(t, err, comment.ErrEmptyContent)
}

func TestCommentService_List_OrderedAscending(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})

	first, err := f.commentService.Post(ctxAs(f.student), created.ID(), "ראשון")
	require.NoError(t, err)
	second, err := f.commentService.Post(ctxAs(f.reviewer), created.ID(), "שני")
	require.NoError(t, err)

	thread, err := f.commentService.List(ctxAs(f.admin), created.ID())
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, first.ID, thread[0].ID)
	assert.Equal(t, second.ID, thread[1].ID)
}

func TestCommentService_MarkRead_Idempotent(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType:        "grade_appeal",
		Subject:            "s",
		Description:        "d",
		AssignedReviewerID: f.reviewer.ID(),
	})
	_, err := f.commentService.Post(ctxAs(f.reviewer), created.ID(), "a")
	require.NoError(t, err)
	_, err = f.commentService.Post(ctxAs(f.student), created.ID(), "b")
	require.NoError(t, err)

	count, err := f.commentService.MarkRead(ctxAs(f.student), created.ID())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = f.commentService.MarkRead(ctxAs(f.student), created.ID())
	require.NoError(t, err, "second invocation is a no-op success")
	assert.Zero(t, count)

	thread, err := f.commentService.List(ctxAs(f.student), created.ID())
	require.NoError(t, err)
	for _, c := range thread {
		assert.True(t, c.IsRead)
	}
}

func TestCommentService_MarkRead_OutsiderForbidden(t *testing.T) {
	f := newFixture(t)
	created := createRequest(t, f, &request.CreateDTO{
		RequestType: "grade_appeal",
		Subject:     "s",
		Description: "d",
	})
	_, err := f.commentService.MarkRead(ctxAs(f.outsider), created.ID())
	assert.ErrorIs(t, err, composables.ErrForbidden)
}
