// Package policy centralizes the authorization predicates consulted by the
// request handlers: ownership, friendship, group membership, creator and edit
// rights. Every mutating handler goes through these instead of re-querying ad
// hoc so the rules cannot drift between endpoints.
package policy

import (
	"errors"

	"forknfriends/backend/internal/models"

	"gorm.io/gorm"
)

// IsCreator reports whether userID created the group.
func IsCreator(db *gorm.DB, userID, groupID uint) (bool, error) {
	var group models.Group
	err := db.Where("id = ? AND created_by = ?", groupID, userID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsAcceptedMember reports whether userID holds an accepted membership row in
// the group. Pending and declined rows do not count.
func IsAcceptedMember(db *gorm.DB, userID, groupID uint) (bool, error) {
	var member models.GroupMember
	err := db.Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, models.MemberAccepted).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CanEditGroup reports whether userID is an accepted member with the edit
// flag set. Edit permission gates adding and removing group restaurants;
// rating only requires accepted membership.
func CanEditGroup(db *gorm.DB, userID, groupID uint) (bool, error) {
	var member models.GroupMember
	err := db.Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, models.MemberAccepted).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return member.CanEdit, nil
}

// AreFriends reports whether an accepted friendship edge exists from userID to
// otherID. With the bidirectionality invariant maintained, one direction is
// enough to answer for both.
func AreFriends(db *gorm.DB, userID, otherID uint) (bool, error) {
	var friendship models.Friendship
	err := db.Where("user_id = ? AND friend_id = ? AND status = ?", userID, otherID, models.FriendshipAccepted).First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AcceptedFriendIDs returns the ids of every accepted friend of userID.
func AcceptedFriendIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Friendship{}).
		Where("user_id = ? AND status = ?", userID, models.FriendshipAccepted).
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// IsOwner reports whether userID owns the restaurant.
func IsOwner(r models.Restaurant, userID uint) bool {
	return r.OwnerID == userID
}
