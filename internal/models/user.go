package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecommendationUnread = "unread"
	RecommendationRead   = "read"
)

type User struct {
	ID                      primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name                    string               `json:"name" bson:"name"`
	Email                   string               `json:"email" bson:"email"`
	Password                string               `json:"-" bson:"password"`
	Favorites               []primitive.ObjectID `json:"favorites" bson:"favorites"`
	RecommendationsReceived []Recommendation     `json:"recommendationsReceived" bson:"recommendationsReceived"`
	CreatedAt               time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt               time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// HasFavorite reports whether id is already in the user's favorites.
func (u *User) HasFavorite(id primitive.ObjectID) bool {
	for _, f := range u.Favorites {
		if f == id {
			return true
		}
	}
	return false
}

// UserSummary is the public identity of a user.
type UserSummary struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
}

// Recommendation is one inbox entry, embedded in the recipient's user document.
// Its ID is only meaningful within that inbox.
type Recommendation struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	From          primitive.ObjectID `json:"from" bson:"from"`
	Property      primitive.ObjectID `json:"property" bson:"property"`
	Message       string             `json:"message" bson:"message"`
	Status        string             `json:"status" bson:"status"`
	RecommendedAt time.Time          `json:"recommendedAt" bson:"recommendedAt"`
}

// FavoritesSet is a user's favorites in insertion order.
type FavoritesSet struct {
	UserID    primitive.ObjectID   `json:"userId"`
	Favorites []primitive.ObjectID `json:"favorites"`
}

// ReceivedRecommendation is an inbox entry resolved for display to its recipient.
// From and Property are nil when the sender or property no longer exists.
type ReceivedRecommendation struct {
	ID            primitive.ObjectID `json:"_id"`
	From          *UserSummary       `json:"from"`
	Property      *PropertySummary   `json:"property"`
	Message       string             `json:"message"`
	Status        string             `json:"status"`
	RecommendedAt time.Time          `json:"recommendedAt"`
}

// SentRecommendation is an entry seen from the sender's side, annotated with the
// inbox owner it was delivered to.
type SentRecommendation struct {
	ID             primitive.ObjectID `json:"_id"`
	RecipientID    primitive.ObjectID `json:"recipientId"`
	RecipientName  string             `json:"recipientName"`
	RecipientEmail string             `json:"recipientEmail"`
	Property       *PropertySummary   `json:"property"`
	Message        string             `json:"message"`
	Status         string             `json:"status"`
	RecommendedAt  time.Time          `json:"recommendedAt"`
}
