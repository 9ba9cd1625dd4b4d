package pokerleague

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/user"
	"github.com/anthonyrs06/poker-league/internal/usecase"
)

const (
	actionCheckIn  = "check_in"
	actionCheckOut = "check_out"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

type authResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        user.User `json:"user"`
}

func (r authResponse) toSession() (usecase.AuthSession, error) {
	token := strings.TrimSpace(r.AccessToken)
	if token == "" {
		return usecase.AuthSession{}, crerr.New("auth response has empty access_token")
	}
	if strings.TrimSpace(r.User.ID) == "" {
		return usecase.AuthSession{}, crerr.New("auth response has empty user id")
	}
	return usecase.AuthSession{Token: token, User: r.User}, nil
}

type joinLeagueRequest struct {
	LeagueID string `json:"league_id"`
}

type checkinRequest struct {
	Action         string `json:"action"`
	FinishPosition *int   `json:"finish_position,omitempty"`
}

type checkinResponse struct {
	Success         bool                  `json:"success"`
	Message         string                `json:"message"`
	CheckedInCount  int                   `json:"checked_in_count"`
	SeatAssignments []game.SeatAssignment `json:"seat_assignments"`
	PointsEarned    int                   `json:"points_earned"`
	Winnings        int                   `json:"winnings"`
}

func (r checkinResponse) toOutcome() usecase.CheckInOutcome {
	return usecase.CheckInOutcome{
		Message:         r.Message,
		CheckedInCount:  r.CheckedInCount,
		SeatAssignments: r.SeatAssignments,
		PointsEarned:    r.PointsEarned,
		Winnings:        r.Winnings,
	}
}

type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	GameID  string `json:"game_id"`
}

func (r actionResponse) toOutcome() usecase.ActionOutcome {
	return usecase.ActionOutcome{Message: r.Message, GameID: r.GameID}
}

type completeRequest struct {
	Results []game.Result `json:"results"`
}
