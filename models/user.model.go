package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name          string `json:"name" gorm:"default:''"`
	Email         string `json:"email" gorm:"unique;not null"`
	Password      string `json:"-" gorm:"not null"`
	Role          string `json:"role" gorm:"default:'student'"` // student, instructor
	PhotoURL      string `json:"photoUrl" gorm:"default:''"`
	PhotoPublicID string `json:"-" gorm:"default:''"` // media store handle for the profile photo
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}
