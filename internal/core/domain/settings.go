package domain

import (
	"errors"
	"time"
)

var ErrInvalidPassPercentage = errors.New("pass percentage must be 0-100")

// DefaultPassPercentage applies when a user never saved a threshold.
const DefaultPassPercentage = 80

type Settings struct {
	UserID         string    `json:"user_id" db:"user_id"`
	PassPercentage int       `json:"pass_percentage" db:"pass_percentage"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func NewSettings(userID string, passPercentage int) (*Settings, error) {
	if err := ValidatePassPercentage(passPercentage); err != nil {
		return nil, err
	}
	return &Settings{
		UserID:         userID,
		PassPercentage: passPercentage,
		UpdatedAt:      time.Now().UTC(),
	}, nil
}

func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:         userID,
		PassPercentage: DefaultPassPercentage,
		UpdatedAt:      time.Now().UTC(),
	}
}

func ValidatePassPercentage(p int) error {
	if p < 0 || p > 100 {
		return ErrInvalidPassPercentage
	}
	return nil
}
