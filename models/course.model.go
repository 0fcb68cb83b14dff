package models

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string    `json:"title" gorm:"not null"`
	SubTitle     string    `json:"subTitle"`
	Description  string    `json:"description"`
	Category     string    `json:"category" gorm:"not null"`
	Level        string    `json:"level" gorm:"default:'Beginner'"` // Beginner, Medium, Advance
	Price        uint      `json:"price" gorm:"default:0"`          // whole currency units
	ThumbnailURL string    `json:"thumbnailUrl"`
	IsPublished  bool      `json:"isPublished" gorm:"default:false"`
	CreatorID    uint      `json:"creatorId" gorm:"index;not null"`
	Creator      *User     `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Lectures     []Lecture `json:"lectures,omitempty" gorm:"foreignKey:CourseID"`
	IsDeleted    bool      `json:"-" gorm:"default:false"`
}
