package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Alert      AlertRepository
	User       UserRepository
	Team       TeamRepository
	Preference PreferenceRepository
	Delivery   DeliveryRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Alert:      NewAlertRepository(db),
		User:       NewUserRepository(db),
		Team:       NewTeamRepository(db),
		Preference: NewPreferenceRepository(db),
		Delivery:   NewDeliveryRepository(db),
	}
}
