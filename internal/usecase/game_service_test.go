package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/platform/logging"
)

func startedStatus(checkedIn ...string) game.Status {
	status := game.Status{
		GameID:           "g1",
		LeagueID:         "l1",
		GameStarted:      true,
		InitialPlayers:   len(checkedIn),
		CheckedInPlayers: len(checkedIn),
	}
	for i, id := range checkedIn {
		status.SeatAssignments = append(status.SeatAssignments, game.SeatAssignment{
			UserID:      id,
			TableNumber: 1,
			SeatNumber:  i + 1,
		})
	}
	return status
}

func TestGameService_CheckOutBeforeStartIsDirect(t *testing.T) {
	t.Parallel()

	var gotPos *int
	called := false
	client := &stubClient{
		checkOutFn: func(_ context.Context, _ string, _ string, finishPosition *int) (CheckInOutcome, error) {
			called = true
			gotPos = finishPosition
			return CheckInOutcome{Message: "Checked out"}, nil
		},
	}
	svc := NewGameService(client, logging.NewNop())

	snapshot := game.Status{
		SeatAssignments: []game.SeatAssignment{{UserID: "u1", TableNumber: 1, SeatNumber: 1}},
	}
	outcome, err := svc.CheckOut(context.Background(), testSession(), "l1", snapshot)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Nil(t, gotPos, "pre-game check-out carries no finish position")
	assert.Equal(t, "Checked out", outcome.Message)
}

func TestGameService_CheckOutWhileSeatedInStartedGameNeedsPicker(t *testing.T) {
	t.Parallel()

	called := false
	client := &stubClient{
		checkOutFn: func(context.Context, string, string, *int) (CheckInOutcome, error) {
			called = true
			return CheckInOutcome{}, nil
		},
	}
	svc := NewGameService(client, logging.NewNop())

	_, err := svc.CheckOut(context.Background(), testSession(), "l1", startedStatus("u1", "u2", "u3"))
	require.ErrorIs(t, err, ErrEliminationRequired)
	assert.False(t, called, "nothing is sent until a position is picked")
}

func TestGameService_SubmitEliminationSendsPosition(t *testing.T) {
	t.Parallel()

	var gotPos *int
	client := &stubClient{
		checkOutFn: func(_ context.Context, _ string, _ string, finishPosition *int) (CheckInOutcome, error) {
			gotPos = finishPosition
			return CheckInOutcome{Message: "Eliminated in 3rd place", PointsEarned: 20}, nil
		},
	}
	svc := NewGameService(client, logging.NewNop())

	outcome, err := svc.SubmitElimination(context.Background(), testSession(), "l1", startedStatus("u1", "u2", "u3"), 3)
	require.NoError(t, err)
	require.NotNil(t, gotPos)
	assert.Equal(t, 3, *gotPos)
	assert.Equal(t, 20, outcome.PointsEarned)
}

func TestGameService_SubmitEliminationRejectsTakenPosition(t *testing.T) {
	t.Parallel()

	snapshot := startedStatus("u1", "u2", "u3")
	snapshot.LiveEliminations = []game.Elimination{{UserID: "u3", FinishPosition: 3}}

	svc := NewGameService(&stubClient{}, logging.NewNop())

	_, err := svc.SubmitElimination(context.Background(), testSession(), "l1", snapshot, 3)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SubmitElimination(context.Background(), testSession(), "l1", snapshot, 9)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameService_StartNeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	called := false
	client := &stubClient{
		startGameFn: func(context.Context, string, string) (ActionOutcome, error) {
			called = true
			return ActionOutcome{GameID: "g1"}, nil
		},
	}
	svc := NewGameService(client, logging.NewNop())

	_, err := svc.Start(context.Background(), testSession(), "l1", game.Status{CheckedInPlayers: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, called)

	outcome, err := svc.Start(context.Background(), testSession(), "l1", game.Status{CheckedInPlayers: 2})
	require.NoError(t, err)
	assert.Equal(t, "g1", outcome.GameID)
}

func TestGameService_CompleteValidatesDraft(t *testing.T) {
	t.Parallel()

	var got []game.Result
	client := &stubClient{
		completeGameFn: func(_ context.Context, _ string, _ string, results []game.Result) (ActionOutcome, error) {
			got = results
			return ActionOutcome{Message: "Game completed"}, nil
		},
	}
	svc := NewGameService(client, logging.NewNop())

	_, err := svc.Complete(context.Background(), testSession(), "l1", nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	draft := game.NewResultsDraft([]game.Member{
		{UserID: "u1", Name: "Alex"},
		{UserID: "u2", Name: "Brook"},
		{UserID: "u3", Name: "Casey"},
	})
	require.NoError(t, draft.Reposition("u3", 1))

	outcome, err := svc.Complete(context.Background(), testSession(), "l1", draft)
	require.NoError(t, err)
	assert.Equal(t, "Game completed", outcome.Message)
	require.Len(t, got, 3)
	assert.Equal(t, "u3", got[0].UserID)
	assert.Equal(t, 1, got[0].FinishPosition)
}

func TestStatusPoller_ReplacesSnapshotsAndSwallowsErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := &stubClient{
		gameStatusFn: func(context.Context, string, string) (game.Status, error) {
			switch n := calls.Add(1); n {
			case 1:
				return game.Status{LeagueID: "l1", CheckedInPlayers: 2}, nil
			case 2:
				return game.Status{}, ErrDependencyUnavailable
			default:
				return game.Status{LeagueID: "l1", CheckedInPlayers: 5, GameStarted: true}, nil
			}
		},
	}
	svc := NewGameService(client, logging.NewNop())

	snapshots := make(chan game.Status, 16)
	poller := NewStatusPoller(svc, testSession(), "l1", 10*time.Millisecond, func(s game.Status) {
		snapshots <- s
	})

	poller.Start(context.Background())
	defer poller.Stop()

	first := <-snapshots
	assert.Equal(t, 2, first.CheckedInPlayers)

	// The failed tick delivers no snapshot; a held snapshot is never replaced
	// by the zero value.
	latest, ok := poller.Latest()
	require.True(t, ok)
	assert.NotZero(t, latest.CheckedInPlayers)

	for s := range snapshots {
		if s.GameStarted {
			assert.Equal(t, 5, s.CheckedInPlayers)
			break
		}
	}

	latest, ok = poller.Latest()
	require.True(t, ok)
	assert.True(t, latest.GameStarted, "successful tick replaces the snapshot wholesale")
}

func TestStatusPoller_StopHaltsPolling(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := &stubClient{
		gameStatusFn: func(context.Context, string, string) (game.Status, error) {
			calls.Add(1)
			return game.Status{LeagueID: "l1"}, nil
		},
	}
	svc := NewGameService(client, logging.NewNop())

	poller := NewStatusPoller(svc, testSession(), "l1", 5*time.Millisecond, nil)
	poller.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	poller.Stop()

	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, calls.Load(), "no ticks after Stop")
}
