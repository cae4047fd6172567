package models

import "time"

// MemberStatus defines the state of a group invite/membership.
type MemberStatus string

const (
	// MemberPending means the user has been invited but has not responded.
	MemberPending MemberStatus = "pending"

	// MemberAccepted means the user accepted the invite and is a full member.
	MemberAccepted MemberStatus = "accepted"

	// MemberDeclined means the user declined the invite. The row is kept, not
	// deleted; a fresh invite resets it to pending.
	MemberDeclined MemberStatus = "declined"
)

// GroupMember is the per-(group, user) membership row. The unique index on
// (group_id, user_id) guarantees a single row per pair across the whole
// pending/accepted/declined lifecycle.
type GroupMember struct {
	ID       uint         `gorm:"primaryKey"`
	GroupID  uint         `gorm:"not null;uniqueIndex:idx_group_members_pair"`
	UserID   uint         `gorm:"not null;uniqueIndex:idx_group_members_pair"`
	CanEdit  bool         `gorm:"not null;default:false"`
	Status   MemberStatus `gorm:"type:varchar(20);not null"`
	JoinedAt time.Time    `gorm:"autoCreateTime"`

	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
