package models

import "gorm.io/gorm"

// Enrollment is the membership between a user and a course, granted on a
// completed purchase. One row serves both directions: a user's enrolled
// courses and a course's enrolled students are queries over the same table.
type Enrollment struct {
	gorm.Model
	UserID   uint    `json:"userId" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID uint    `json:"courseId" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	User     *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
