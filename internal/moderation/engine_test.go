package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	comments []HistoryComment
	calls    int
	err      error
}

func (f *fakeHistory) ListComments(_ context.Context, _, _ string) ([]HistoryComment, error) {
	f.calls++
	return f.comments, f.err
}

type fakePersister struct {
	saved   []CommentDraft
	hidden  [][]string
	ops     []string
	saveErr error
	hideErr error
}

func (f *fakePersister) Save(_ context.Context, draft CommentDraft) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, draft)
	f.ops = append(f.ops, "save")
	return "new-id", nil
}

func (f *fakePersister) BulkHide(_ context.Context, ids []string) error {
	if f.hideErr != nil {
		return f.hideErr
	}
	f.hidden = append(f.hidden, ids)
	f.ops = append(f.ops, "bulk_hide")
	return nil
}

func TestModerateValidation(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	history := &fakeHistory{}
	persist := &fakePersister{}

	_, err := eng.Moderate(context.Background(), Submission{Text: "   "}, history, persist)
	assert.ErrorIs(t, err, ErrEmptyText)

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	_, err = eng.Moderate(context.Background(), Submission{Text: string(long)}, history, persist)
	assert.ErrorIs(t, err, ErrTextTooLong)

	assert.Empty(t, persist.saved)
	assert.Zero(t, history.calls)
}

func TestModerateAbusePreemptsSpam(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	history := &fakeHistory{}
	persist := &fakePersister{}

	var flagged []string
	eng.OnAbusive = func(userID string) { flagged = append(flagged, userID) }

	out, err := eng.Moderate(context.Background(),
		Submission{Text: "you are an idiot", UserID: "u1", PostID: "p1"},
		history, persist)
	require.NoError(t, err)

	assert.Equal(t, StatusHidden, out.Status)
	assert.Equal(t, 1, out.Abuse.IsAbusive)
	assert.Nil(t, out.Spam)
	// Spam detection is never consulted for abusive comments.
	assert.Zero(t, history.calls)
	// The hook belongs to the caller, to fire after its transaction commits;
	// Moderate itself must leave it alone.
	assert.Empty(t, flagged)

	require.Len(t, persist.saved, 1)
	draft := persist.saved[0]
	assert.Equal(t, StatusHidden, draft.Status)
	assert.Equal(t, 1, draft.IsAbusive)
	assert.False(t, draft.IsSpam)
}

func TestModeratePendingReview(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	persist := &fakePersister{}

	out, err := eng.Moderate(context.Background(),
		Submission{Text: "This is stupid", UserID: "u1", PostID: "p1"},
		&fakeHistory{}, persist)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingReview, out.Status)
	assert.Equal(t, ActionHumanReview, out.Abuse.Action)
}

func TestModerateCleanComment(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	history := &fakeHistory{}
	persist := &fakePersister{}

	out, err := eng.Moderate(context.Background(),
		Submission{Text: "Great article, thanks for sharing", UserID: "u1", PostID: "p1"},
		history, persist)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, out.Status)
	assert.Zero(t, out.Abuse.IsAbusive)
	require.NotNil(t, out.Spam)
	assert.False(t, out.Spam.IsSpam)
	assert.Empty(t, out.Message)
	assert.Equal(t, 1, history.calls)
}

func TestModerateSpamWarningKeepsCommentVisible(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	text := "really enjoyed this post"
	history := &fakeHistory{comments: repeated(text, 5)}
	persist := &fakePersister{}

	out, err := eng.Moderate(context.Background(),
		Submission{Text: text, UserID: "u1", PostID: "p1"}, history, persist)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, out.Status)
	assert.NotEmpty(t, out.Message)
	require.Len(t, persist.saved, 1)
	assert.False(t, persist.saved[0].IsSpam)
	assert.Equal(t, []string{SpamReasonRepetitionWarning}, persist.saved[0].SpamReasons)
	assert.Empty(t, persist.hidden)
}

func TestModeratePromotionalSpamBulkHidesBeforeSave(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	promo := "Check out my channel for more"
	history := &fakeHistory{comments: repeated(promo, 4)}
	persist := &fakePersister{}

	out, err := eng.Moderate(context.Background(),
		Submission{Text: promo, UserID: "u1", PostID: "p1"}, history, persist)
	require.NoError(t, err)

	assert.Equal(t, StatusHidden, out.Status)
	require.NotNil(t, out.Spam)
	assert.True(t, out.Spam.HideAll)

	require.Len(t, persist.hidden, 1)
	assert.Len(t, persist.hidden[0], 4)
	assert.Equal(t, []string{"bulk_hide", "save"}, persist.ops)

	require.Len(t, persist.saved, 1)
	assert.True(t, persist.saved[0].IsSpam)
	assert.Equal(t, StatusHidden, persist.saved[0].Status)
}

func TestModeratePlainSpamHidesOnlyItself(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	text := "really enjoyed this post"
	history := &fakeHistory{comments: repeated(text, 6)}
	persist := &fakePersister{}

	out, err := eng.Moderate(context.Background(),
		Submission{Text: text, UserID: "u1", PostID: "p1"}, history, persist)
	require.NoError(t, err)

	assert.Equal(t, StatusHidden, out.Status)
	assert.Empty(t, persist.hidden)
	require.Len(t, persist.saved, 1)
	assert.Equal(t, 100, persist.saved[0].SpamConfidence)
}

func TestModerateHistoryFailureSurfaces(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	history := &fakeHistory{err: errors.New("db gone")}
	persist := &fakePersister{}

	_, err := eng.Moderate(context.Background(),
		Submission{Text: "fine comment", UserID: "u1", PostID: "p1"}, history, persist)
	assert.Error(t, err)
	assert.Empty(t, persist.saved)
}

func TestModerateSaveFailureSurfaces(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	persist := &fakePersister{saveErr: errors.New("insert failed")}

	_, err := eng.Moderate(context.Background(),
		Submission{Text: "fine comment", UserID: "u1", PostID: "p1"},
		&fakeHistory{}, persist)
	assert.Error(t, err)
}
