package league

import "fmt"

// League mirrors the backend's league resource.
type League struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BuyIn       int    `json:"buy_in"`
	MaxPlayers  int    `json:"max_players"`
	GameFormat  string `json:"game_format"`
	Description string `json:"description"`
	AdminID     string `json:"admin_id"`
	MemberCount int    `json:"member_count"`
}

// MaxTablePlayers is the hard cap the backend seats across three 9-handed
// tables.
const MaxTablePlayers = 27

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.MaxPlayers < 2 || l.MaxPlayers > MaxTablePlayers {
		return fmt.Errorf("league max players must be between 2 and %d", MaxTablePlayers)
	}

	return nil
}

func (l League) IsAdmin(userID string) bool {
	return userID != "" && l.AdminID == userID
}

// CreateInput carries the create-league form. Tags drive validator before the
// request leaves the client; the server revalidates.
type CreateInput struct {
	Name        string `json:"name" validate:"required,min=3,max=60"`
	BuyIn       int    `json:"buy_in" validate:"gte=0"`
	MaxPlayers  int    `json:"max_players" validate:"gte=2,lte=27"`
	GameFormat  string `json:"game_format" validate:"required,oneof=tournament cash sit_n_go"`
	Description string `json:"description" validate:"max=500"`
}
