package model

import "exhibition_manager/utils"

type Exhibition struct {
	DTO
	Title            string            `gorm:"not null" validate:"required" json:"title"`
	Slug             string            `gorm:"uniqueIndex" json:"slug"`
	Description      *string           `json:"description"`
	ShortDescription *string           `json:"shortDescription"`
	StartDate        utils.CustomDate  `gorm:"type:date;not null" validate:"required" json:"startDate"`
	EndDate          utils.CustomDate  `gorm:"type:date;not null" validate:"required" json:"endDate"`
	Capacity         int               `gorm:"not null" validate:"required,gte=1" json:"capacity"`
	Curator          string            `json:"curator"`
	Published        *bool             `gorm:"not null;default:false" json:"published"`
	Active           *bool             `gorm:"not null;default:true" json:"isActive"`
	LocationId       uint              `gorm:"not null" json:"locationId"`
	Location         Location          `gorm:"foreignKey:LocationId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"location"`
	Media            []ExhibitionMedia `gorm:"foreignKey:ExhibitionId" json:"media"`

	// Computed, never persisted.
	RemainingSeats int `gorm:"-" json:"remainingSeats"`
}

type ExhibitionMedia struct {
	DTO
	ExhibitionId uint   `gorm:"not null" json:"exhibitionId"`
	Url          string `gorm:"not null" json:"url"`
	Title        string `json:"title"`
	Cover        bool   `gorm:"not null;default:false" json:"isCover"`
}

// Availability is the structured result of the availability lookup.
type Availability struct {
	State          string `json:"state"`
	Bookable       bool   `json:"bookable"`
	RemainingSeats int    `json:"remainingSeats"`
}

type CreateExhibitionInput struct {
	Title            string           `json:"title" validate:"required"`
	Slug             string           `json:"slug" validate:"omitempty"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription"`
	StartDate        utils.CustomDate `json:"startDate" validate:"required"`
	EndDate          utils.CustomDate `json:"endDate" validate:"required"`
	Capacity         int              `json:"capacity" validate:"required,gte=1"`
	Curator          string           `json:"curator"`
	Published        *bool            `json:"published"`
	Active           *bool            `json:"isActive"`
	LocationId       uint             `json:"locationId" validate:"required"`
}

type EditExhibitionInput struct {
	Title            *string           `json:"title"`
	Description      *string           `json:"description"`
	ShortDescription *string           `json:"shortDescription"`
	StartDate        *utils.CustomDate `json:"startDate"`
	EndDate          *utils.CustomDate `json:"endDate"`
	Capacity         *int              `json:"capacity" validate:"omitempty,gte=1"`
	Curator          *string           `json:"curator"`
	Published        *bool             `json:"published"`
	Active           *bool             `json:"isActive"`
	LocationId       *uint             `json:"locationId"`
}

type FilterExhibition struct {
	Pagination
	SearchKey string            `json:"searchKey"`
	City      string            `json:"city"`
	Active    *bool             `json:"isActive"`
	Published *bool             `json:"published"`
	FromDate  *utils.CustomDate `json:"fromDate"`
	ToDate    *utils.CustomDate `json:"toDate"`
}
