package models

import "time"

// Patient is the consumer-side account document.
type Patient struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender       string     `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth  *time.Time `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	ProfilePhoto string     `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	FCMToken     string     `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
}
