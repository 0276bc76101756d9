package model

type User struct {
	DTO
	Email    string `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"not null" validate:"required" json:"fullName"`
	Phone    string `json:"phone"`
	Admin    bool   `gorm:"not null;default:false" json:"isAdmin"`
	Active   *bool  `gorm:"not null;default:true" json:"isActive"`
}

type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty"`
}

type EditUserInput struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Active   *bool   `json:"isActive"`
	Admin    *bool   `json:"isAdmin"`
}

type FilterUser struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Active    *bool  `json:"isActive"`
}
