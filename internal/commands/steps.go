package commands

import (
	"net/http"
	"strconv"
)

const (
	MoveAction         = "move"
	GatherAction       = "gathering"
	FightAction        = "fight"
	RestAction         = "rest"
	AcceptTaskAction   = "task/new"
	CompleteTaskAction = "task/complete"
	DepositAction      = "bank/deposit"
)

// DataKey wraps the payload of every successful API response.
const DataKey = "data"

// NewPositionQuery reads the character and reports only its x and y.
func NewPositionQuery(character string) *Action {
	return NewAction(http.MethodGet, character, "", nil, WithEnvelope(DataKey), WithNarrower(Fields("x", "y")))
}

func NewMove(character string, x, y int) *Action {
	return NewAction(http.MethodPost, character, MoveAction, map[string]string{
		"x": strconv.Itoa(x),
		"y": strconv.Itoa(y),
	}, WithPinned("x", "y"))
}

func NewGather(character string) *Action {
	return NewAction(http.MethodPost, character, GatherAction, nil)
}

func NewFight(character string) *Action {
	return NewAction(http.MethodPost, character, FightAction, nil)
}

func NewRest(character string) *Action {
	return NewAction(http.MethodPost, character, RestAction, nil)
}

func NewAcceptTask(character string) *Action {
	return NewAction(http.MethodPost, character, AcceptTaskAction, nil)
}

func NewCompleteTask(character string) *Action {
	return NewAction(http.MethodPost, character, CompleteTaskAction, nil)
}

// NewDeposit stores qty of the item code in the bank. The character has to be on a bank tile.
func NewDeposit(character, code string, qty int) *Action {
	return NewAction(http.MethodPost, character, DepositAction, map[string]string{
		"code":     code,
		"quantity": strconv.Itoa(qty),
	}, WithPinned("code", "quantity"))
}
