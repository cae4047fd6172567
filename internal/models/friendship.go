package models

import "time"

// FriendshipStatus defines the state of a directed friendship edge.
type FriendshipStatus string

const (
	// FriendshipPending means a friend request has been sent but not yet accepted.
	FriendshipPending FriendshipStatus = "pending"

	// FriendshipAccepted means the request was accepted. An accepted friendship
	// is stored as two directed rows, one per direction, both accepted.
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed edge from UserID to FriendID. The unique index on
// (user_id, friend_id) guarantees at most one row per direction.
type Friendship struct {
	ID        uint             `gorm:"primaryKey"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_friendships_pair"`
	FriendID  uint             `gorm:"not null;uniqueIndex:idx_friendships_pair"`
	Status    FriendshipStatus `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
