package models

import "gorm.io/gorm"

// Lecture belongs to exactly one course. IsPreviewFree controls whether the
// video is viewable without purchase.
type Lecture struct {
	gorm.Model
	CourseID      uint   `json:"courseId" gorm:"index;not null"`
	Title         string `json:"title" gorm:"not null"`
	VideoURL      string `json:"videoUrl"`
	PublicID      string `json:"publicId"` // media store handle for the video
	IsPreviewFree bool   `json:"isPreviewFree" gorm:"default:false"`
	Position      int    `json:"position" gorm:"default:0"`
}
