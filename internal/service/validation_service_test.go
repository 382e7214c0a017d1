package service

import (
	"IronProof/internal/api/config"
	"IronProof/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingItem(id string, approve, reject int) *mongo.SharedItem {
	voters := make([]string, 0, approve+reject)
	for i := 0; i < approve+reject; i++ {
		voters = append(voters, string(rune('a'+i)))
	}
	return &mongo.SharedItem{
		ID:            id,
		SubmitterID:   "athlete-1",
		SubmitterName: "Kira",
		Exercise:      "deadlift",
		WeightKg:      180,
		Reps:          3,
		ComputedScore: 198,
		Status:        mongo.StatusPending,
		VoteLedger: mongo.VoteLedger{
			TotalVotes:   approve + reject,
			ApproveVotes: approve,
			RejectVotes:  reject,
			Voters:       voters,
		},
		CreatedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
}

func newTestValidation(items mongo.SharedItemRepo, ranking RankingService) ValidationService {
	return NewValidationService(items, ranking, config.CommunityConfig{
		Quorum:        5,
		ApprovalRatio: 0.6,
	})
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		approve int
		reject  int
		want    string
	}{
		{"below quorum stays pending", 3, 1, ""},
		{"unanimous rejection below quorum stays pending", 0, 4, ""},
		{"majority approval", 4, 1, mongo.StatusApproved},
		{"exact ratio boundary approves", 3, 2, mongo.StatusApproved},
		{"below ratio rejects", 2, 3, mongo.StatusRejected},
		{"unanimous rejection", 0, 5, mongo.StatusRejected},
		{"large ledger boundary", 6, 4, mongo.StatusApproved},
		{"large ledger just below", 5, 4, mongo.StatusRejected},
	}

	svc := newTestValidation(newFakeSharedItemRepo(), &fakeRanking{}).(*validationServiceImpl)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := mongo.VoteLedger{
				TotalVotes:   tc.approve + tc.reject,
				ApproveVotes: tc.approve,
				RejectVotes:  tc.reject,
			}
			assert.Equal(t, tc.want, svc.decide(l))
		})
	}
}

func TestTryFinalizeBelowQuorumNoop(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 3, 1))
	ranking := &fakeRanking{}
	svc := newTestValidation(items, ranking)

	require.NoError(t, svc.TryFinalize(context.Background(), "s1"))

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, mongo.StatusPending, got.Status)
	assert.Nil(t, got.FinalizedAt)
	assert.Empty(t, ranking.ingested)
}

func TestTryFinalizeApprovedIngests(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 4, 1))
	ranking := &fakeRanking{}
	svc := newTestValidation(items, ranking)

	require.NoError(t, svc.TryFinalize(context.Background(), "s1"))

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, mongo.StatusApproved, got.Status)
	assert.NotNil(t, got.FinalizedAt)
	assert.Equal(t, []string{"s1"}, ranking.ingested)
}

func TestTryFinalizeRejectedSkipsRanking(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 2, 3))
	ranking := &fakeRanking{}
	svc := newTestValidation(items, ranking)

	require.NoError(t, svc.TryFinalize(context.Background(), "s1"))

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, mongo.StatusRejected, got.Status)
	assert.Empty(t, ranking.ingested)
}

func TestTryFinalizeIdempotent(t *testing.T) {
	items := newFakeSharedItemRepo(pendingItem("s1", 4, 1))
	ranking := &fakeRanking{}
	svc := newTestValidation(items, ranking)

	// 消费者 at-least-once 语义下同一事件可能被处理多次
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.TryFinalize(context.Background(), "s1"))
	}

	got, err := items.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, mongo.StatusApproved, got.Status)
	assert.Equal(t, []string{"s1"}, ranking.ingested)
}

func TestTryFinalizeMissingShare(t *testing.T) {
	svc := newTestValidation(newFakeSharedItemRepo(), &fakeRanking{})
	assert.NoError(t, svc.TryFinalize(context.Background(), "ghost"))
}
