package models

import "time"

type User struct {
	ID               int64     `json:"id,omitempty"`
	Username         string    `json:"username,omitempty"`
	PassHash         []byte    `json:"-"`
	IsStaff          bool      `json:"is_staff,omitempty"`
	RegistrationDate time.Time `json:"registration_date,omitempty"`
}
