package model

import "time"

type Registration struct {
	DTO
	ExhibitionId    uint       `gorm:"not null;index" json:"exhibitionId"`
	UserId          uint       `gorm:"not null;index" json:"userId"`
	TicketCount     int        `gorm:"not null" json:"ticketCount"`
	RedemptionToken string     `gorm:"size:64;uniqueIndex" json:"redemptionToken"`
	Validated       bool       `gorm:"not null;default:false" json:"validated"`
	ValidatedAt     *time.Time `json:"validatedAt,omitempty"`
	EmailSent       bool       `gorm:"not null;default:false" json:"emailSent"`
	EmailSentAt     *time.Time `json:"emailSentAt,omitempty"`

	Exhibition Exhibition `gorm:"foreignKey:ExhibitionId" json:"exhibition"`
	User       User       `gorm:"foreignKey:UserId" json:"-"`
}

type CreateRegistrationInput struct {
	ExhibitionId uint `json:"exhibitionId" validate:"required"`
	TicketCount  int  `json:"ticketCount" validate:"required,gte=1"`
}

type FilterRegistrationInput struct {
	Pagination
	ExhibitionId uint  `json:"exhibitionId" validate:"omitempty,gt=0"`
	Validated    *bool `json:"validated"`
}
