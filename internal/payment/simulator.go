package payment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

type GetChargeStatus interface {
	GetStatus() (approved bool, reason string)
}

type RandomStatus struct{}

func (RandomStatus) GetStatus() (bool, string) {
	randomInt := rand.Intn(101) // 101 because Intn is exclusive of the upper bound
	return calcStatus(randomInt)
}

func calcStatus(randomInt int) (bool, string) {
	if randomInt < 95 {
		return true, ""
	}
	switch randomInt {
	case 95:
		return false, "insufficient funds"
	case 96:
		return false, "card expired"
	case 97:
		return false, "issuer refused"
	default:
		return false, "unknown reason"
	}
}

// AlwaysApprove is handy for local development.
type AlwaysApprove struct{}

func (AlwaysApprove) GetStatus() (bool, string) {
	return true, ""
}

// Simulator stands in for a real gateway in development and tests.
type Simulator struct {
	status GetChargeStatus
}

func NewSimulator(status GetChargeStatus) *Simulator {
	return &Simulator{status: status}
}

func (s *Simulator) Collect(_ context.Context, _ Request) (*Result, error) {
	approved, reason := s.status.GetStatus()
	if !approved {
		return &Result{Approved: false, Reason: reason}, nil
	}
	return &Result{
		Approved:  true,
		Reference: fmt.Sprintf("SIM-%s", uuid.New()),
	}, nil
}
