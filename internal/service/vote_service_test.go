package service

import (
	"IronProof/internal/pkg/mongo"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVoteService(items mongo.SharedItemRepo, producer *fakeProducer, validation *fakeValidation) VoteService {
	return NewVoteService(items, allowAllLimiter{}, validation, producer)
}

func TestCastVoteApplied(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 0, 0))
	producer := &fakeProducer{}
	svc := newTestVoteService(items, producer, &fakeValidation{})

	outcome, err := svc.CastVote(context.Background(), "s1", "judge-1", true)
	require.NoError(t, err)
	assert.Equal(t, VoteApplied, outcome)

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteLedger.TotalVotes)
	assert.Equal(t, 1, got.VoteLedger.ApproveVotes)
	assert.Equal(t, 0, got.VoteLedger.RejectVotes)
	assert.True(t, got.VoteLedger.HasVoted("judge-1"))

	require.Len(t, producer.published, 1)
	assert.Equal(t, "s1", producer.published[0].ShareID)
	assert.Equal(t, "judge-1", producer.published[0].VoterID)
}

func TestCastVoteDuplicateIsIdentityOp(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 0, 0))
	producer := &fakeProducer{}
	svc := newTestVoteService(items, producer, &fakeValidation{})
	ctx := context.Background()

	_, err := svc.CastVote(ctx, "s1", "judge-1", true)
	require.NoError(t, err)

	// 第二票换方向也不改变账本
	outcome, err := svc.CastVote(ctx, "s1", "judge-1", false)
	require.NoError(t, err)
	assert.Equal(t, VoteAlreadyVoted, outcome)

	got, err := items.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteLedger.TotalVotes)
	assert.Equal(t, 1, got.VoteLedger.ApproveVotes)
	assert.Len(t, producer.published, 1)
}

func TestCastVoteSelfForbidden(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 0, 0))
	svc := newTestVoteService(items, &fakeProducer{}, &fakeValidation{})

	_, err := svc.CastVote(context.Background(), "s1", "athlete-1", true)
	assert.ErrorIs(t, err, ErrVoteSelf)
}

func TestCastVoteFinalizedNoop(t *testing.T) {
	item := pendingItem("s1", 4, 1)
	item.Status = mongo.StatusApproved
	items := newFakeSharedItemRepo(item)
	producer := &fakeProducer{}
	svc := newTestVoteService(items, producer, &fakeValidation{})

	outcome, err := svc.CastVote(context.Background(), "s1", "late-judge", true)
	require.NoError(t, err)
	assert.Equal(t, VoteAlreadyFinalized, outcome)

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.VoteLedger.TotalVotes)
	assert.Empty(t, producer.published)
}

func TestCastVoteShareNotFound(t *testing.T) {
	svc := newTestVoteService(newFakeSharedItemRepo(), &fakeProducer{}, &fakeValidation{})

	_, err := svc.CastVote(context.Background(), "ghost", "judge-1", true)
	assert.ErrorIs(t, err, ErrShareNotFound)
}

func TestCastVoteRateLimited(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 0, 0))
	svc := NewVoteService(items, denyAllLimiter{}, &fakeValidation{}, &fakeProducer{})

	_, err := svc.CastVote(context.Background(), "s1", "judge-1", true)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCastVotePublishFailureFinalizesInline(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 0, 0))
	producer := &fakeProducer{err: errors.New("broker down")}
	validation := &fakeValidation{}
	svc := newTestVoteService(items, producer, validation)

	outcome, err := svc.CastVote(context.Background(), "s1", "judge-1", true)
	require.NoError(t, err)
	assert.Equal(t, VoteApplied, outcome)
	assert.Equal(t, []string{"s1"}, validation.finalized)
}

func TestCastVoteConcurrentDistinctVoters(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 0, 0))
	svc := newTestVoteService(items, &fakeProducer{}, &fakeValidation{})

	const voters = 16
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.CastVote(context.Background(), "s1", fmt.Sprintf("judge-%d", n), n%2 == 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, voters, got.VoteLedger.TotalVotes)
	assert.Equal(t, voters, got.VoteLedger.ApproveVotes+got.VoteLedger.RejectVotes)
	assert.Len(t, got.VoteLedger.Voters, voters)
}
