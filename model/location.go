package model

type Location struct {
	DTO
	Name        string       `gorm:"not null" validate:"required" json:"name"`
	City        string       `gorm:"not null" validate:"required" json:"city"`
	Address     string       `json:"address"`
	Description *string      `json:"description"`
	Exhibitions []Exhibition `gorm:"foreignKey:LocationId" json:"exhibitions,omitempty"`
}

type CreateLocationInput struct {
	Name        string  `json:"name" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Address     string  `json:"address" validate:"omitempty"`
	Description *string `json:"description"`
}

type EditLocationInput struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

type FilterLocation struct {
	Pagination
	SearchKey string `json:"searchKey"`
	City      string `json:"city"`
}
