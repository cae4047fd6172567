package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"forknfriends/backend/internal/database"
	"forknfriends/backend/internal/logger"
	"forknfriends/backend/internal/models"
	"forknfriends/backend/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// region --- DTOs ---

// GroupInput defines the structure for creating or renaming a group.
type GroupInput struct {
	Name string `json:"name" binding:"required"`
}

// InviteMemberInput defines the structure for inviting a user to a group.
type InviteMemberInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// MemberPermissionInput defines the structure for toggling a member's edit flag.
type MemberPermissionInput struct {
	CanEdit *bool `json:"can_edit" binding:"required"`
}

// GroupResponse is the group's own metadata.
type GroupResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	CreatedBy       uint      `json:"created_by"`
	CreatorUsername string    `json:"creator_username,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// GroupListItem is one entry of the caller's group list.
type GroupListItem struct {
	GroupResponse
	CanEdit     bool  `json:"can_edit"`
	MemberCount int64 `json:"member_count"`
}

// MemberResponse is one accepted roster entry.
type MemberResponse struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	CanEdit  bool      `json:"can_edit"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// InviteResponse is one pending invite of the caller.
type InviteResponse struct {
	ID              uint      `json:"id"`
	GroupID         uint      `json:"group_id"`
	GroupName       string    `json:"group_name"`
	CreatorUsername string    `json:"creator_username"`
	JoinedAt        time.Time `json:"joined_at"`
}

// GroupDetailResponse bundles the group, its accepted roster and its restaurants.
type GroupDetailResponse struct {
	Group       GroupResponse        `json:"group"`
	Members     []MemberResponse     `json:"members"`
	Restaurants []RestaurantResponse `json:"restaurants"`
}

func newGroupResponse(group models.Group) GroupResponse {
	resp := GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
	}
	if group.Creator.ID != 0 {
		resp.CreatorUsername = group.Creator.Username
	}
	return resp
}

// endregion

// requireCreator answers the creator check shared by all administrative group
// operations: 404 when the group does not exist, 403 when the caller is not
// its creator.
func requireCreator(c *gin.Context, groupID uint) (models.Group, bool) {
	userID, _ := c.Get("userID")

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return group, false
	}

	ok, err := policy.IsCreator(database.DB, userID.(uint), groupID)
	if err != nil {
		logger.Log.Error("Failed to check group creator", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return group, false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group creator can perform this action"})
		return group, false
	}

	return group, true
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Creates a group and inserts the creator as an accepted member with edit rights. Both writes are atomic.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GroupInput true "Group Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Blank name"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /groups [post]
func CreateGroup(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	group := models.Group{
		Name:      strings.TrimSpace(input.Name),
		CreatedBy: userID.(uint),
	}

	tx := database.DB.Begin()

	if err := tx.Create(&group).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to create group", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error creating group"})
		return
	}

	creatorMember := models.GroupMember{
		GroupID: group.ID,
		UserID:  userID.(uint),
		CanEdit: true,
		Status:  models.MemberAccepted,
	}
	if err := tx.Create(&creatorMember).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to add creator membership", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error creating group"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"group":   newGroupResponse(group),
	})
}

// GetGroups godoc
// @Summary      List the caller's groups
// @Description  Lists every group where the caller holds an accepted membership, with edit flag and accepted-member count.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]GroupListItem
// @Failure      401  {object}  ErrorResponse
// @Router       /groups [get]
func GetGroups(c *gin.Context) {
	userID, _ := c.Get("userID")

	var memberships []models.GroupMember
	err := database.DB.
		Preload("Group").
		Preload("Group.Creator").
		Where("user_id = ? AND status = ?", userID, models.MemberAccepted).
		Find(&memberships).Error
	if err != nil {
		logger.Log.Error("Failed to fetch groups", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching groups"})
		return
	}

	groups := make([]GroupListItem, 0, len(memberships))
	for _, m := range memberships {
		var memberCount int64
		database.DB.Model(&models.GroupMember{}).
			Where("group_id = ? AND status = ?", m.GroupID, models.MemberAccepted).
			Count(&memberCount)

		groups = append(groups, GroupListItem{
			GroupResponse: newGroupResponse(m.Group),
			CanEdit:       m.CanEdit,
			MemberCount:   memberCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup godoc
// @Summary      Get group detail
// @Description  Returns group metadata, the accepted roster and all group restaurants. Accepted members only.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  GroupDetailResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not an accepted member"
// @Failure      404  {object}  ErrorResponse "Group not found"
// @Router       /groups/{id} [get]
func GetGroup(c *gin.Context) {
	userID, _ := c.Get("userID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := database.DB.Preload("Creator").First(&group, uint(groupID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	ok, err := policy.IsAcceptedMember(database.DB, userID.(uint), uint(groupID))
	if err != nil {
		logger.Log.Error("Failed to check group membership", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching group"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var members []models.GroupMember
	err = database.DB.
		Preload("User").
		Where("group_id = ? AND status = ?", groupID, models.MemberAccepted).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		logger.Log.Error("Failed to fetch group members", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching group"})
		return
	}

	var restaurants []models.Restaurant
	err = database.DB.
		Preload("Owner").
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		logger.Log.Error("Failed to fetch group restaurants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching group"})
		return
	}

	memberResponses := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		memberResponses = append(memberResponses, MemberResponse{
			ID:       m.ID,
			UserID:   m.UserID,
			Username: m.User.Username,
			Email:    m.User.Email,
			CanEdit:  m.CanEdit,
			Status:   string(m.Status),
			JoinedAt: m.JoinedAt,
		})
	}

	restaurantResponses := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		restaurantResponses = append(restaurantResponses, newRestaurantResponse(r))
	}

	c.JSON(http.StatusOK, GroupDetailResponse{
		Group:       newGroupResponse(group),
		Members:     memberResponses,
		Restaurants: restaurantResponses,
	})
}

// UpdateGroup godoc
// @Summary      Rename a group (creator only)
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int        true "Group ID"
// @Param        input body GroupInput true "New name"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Blank name"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /groups/{id} [put]
func UpdateGroup(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	group, ok := requireCreator(c, uint(groupID))
	if !ok {
		return
	}

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	if err := database.DB.Model(&group).Update("name", strings.TrimSpace(input.Name)).Error; err != nil {
		logger.Log.Error("Failed to update group", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group updated successfully",
		"group":   newGroupResponse(group),
	})
}

// DeleteGroup godoc
// @Summary      Delete a group (creator only)
// @Description  Cascades to all memberships and group restaurants. All deletes are atomic.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  map[string]string "{"message": "Group deleted successfully"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	group, ok := requireCreator(c, uint(groupID))
	if !ok {
		return
	}

	tx := database.DB.Begin()

	if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to delete group members", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting group"})
		return
	}
	if err := tx.Where("group_id = ?", group.ID).Delete(&models.Restaurant{}).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to delete group restaurants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting group"})
		return
	}
	if err := tx.Delete(&group).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to delete group", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting group"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

// InviteMember godoc
// @Summary      Invite a user to a group (creator only)
// @Description  Inserts a pending membership without edit rights. A previously declined invite is reset to pending in place.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int               true "Group ID"
// @Param        input body InviteMemberInput true "Target user"
// @Success      201  {object}  map[string]string "{"message": "Invite sent successfully"}"
// @Failure      400  {object}  ErrorResponse "Duplicate invite"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Group or user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /groups/{id}/members [post]
func InviteMember(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if _, ok := requireCreator(c, uint(groupID)); !ok {
		return
	}

	var input InviteMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.GroupMember
	err = database.DB.
		Where("group_id = ? AND user_id = ?", groupID, input.UserID).
		First(&existing).Error
	if err == nil {
		switch existing.Status {
		case models.MemberPending:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invite already sent to this user"})
			return
		case models.MemberAccepted:
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this group"})
			return
		case models.MemberDeclined:
			// Re-invite: reset the declined row in place so (group, user)
			// stays unique.
			updates := map[string]interface{}{"status": models.MemberPending, "can_edit": false}
			if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
				logger.Log.Error("Failed to re-invite member", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sending invite"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"message": "Invite sent successfully"})
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Error("Failed to check existing membership", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sending invite"})
		return
	}

	member := models.GroupMember{
		GroupID: uint(groupID),
		UserID:  input.UserID,
		CanEdit: false,
		Status:  models.MemberPending,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		logger.Log.Error("Failed to create invite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sending invite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Invite sent successfully"})
}

// AcceptInvite godoc
// @Summary      Accept a group invite
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  map[string]string "{"message": "Group invite accepted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Invite not found"
// @Router       /groups/{id}/members/accept [put]
func AcceptInvite(c *gin.Context) {
	respondToInvite(c, models.MemberAccepted, "Group invite accepted")
}

// DeclineInvite godoc
// @Summary      Decline a group invite
// @Description  The membership row is kept with declined status, not deleted.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  map[string]string "{"message": "Group invite declined"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Invite not found"
// @Router       /groups/{id}/members/decline [put]
func DeclineInvite(c *gin.Context) {
	respondToInvite(c, models.MemberDeclined, "Group invite declined")
}

func respondToInvite(c *gin.Context, status models.MemberStatus, message string) {
	userID, _ := c.Get("userID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	result := database.DB.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, models.MemberPending).
		Update("status", status)
	if result.Error != nil {
		logger.Log.Error("Failed to respond to invite", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error responding to invite"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GetInvites godoc
// @Summary      List pending group invites
// @Description  Lists all pending invites of the caller with group name and creator username.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]InviteResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /groups/invites [get]
func GetInvites(c *gin.Context) {
	userID, _ := c.Get("userID")

	var invites []models.GroupMember
	err := database.DB.
		Preload("Group").
		Preload("Group.Creator").
		Where("user_id = ? AND status = ?", userID, models.MemberPending).
		Order("joined_at DESC").
		Find(&invites).Error
	if err != nil {
		logger.Log.Error("Failed to fetch invites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching invites"})
		return
	}

	responses := make([]InviteResponse, 0, len(invites))
	for _, invite := range invites {
		responses = append(responses, InviteResponse{
			ID:              invite.ID,
			GroupID:         invite.GroupID,
			GroupName:       invite.Group.Name,
			CreatorUsername: invite.Group.Creator.Username,
			JoinedAt:        invite.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"invites": responses})
}

// RemoveMember godoc
// @Summary      Remove a group member (creator only)
// @Description  The creator's own membership row can never be removed.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Group ID"
// @Param        memberId  path int true "Membership row ID"
// @Success      200  {object}  map[string]string "{"message": "Member removed successfully"}"
// @Failure      400  {object}  ErrorResponse "Target is the creator"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /groups/{id}/members/{memberId} [delete]
func RemoveMember(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	group, ok := requireCreator(c, uint(groupID))
	if !ok {
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("id = ? AND group_id = ?", memberID, groupID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	if member.UserID == group.CreatedBy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can't remove the group creator"})
		return
	}

	if err := database.DB.Delete(&member).Error; err != nil {
		logger.Log.Error("Failed to remove member", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error removing member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// UpdateMemberPermissions godoc
// @Summary      Toggle a member's edit permission (creator only)
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int                   true "Group ID"
// @Param        memberId  path int                   true "Membership row ID"
// @Param        input     body MemberPermissionInput true "Edit flag"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Member not found"
// @Router       /groups/{id}/members/{memberId} [put]
func UpdateMemberPermissions(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if _, ok := requireCreator(c, uint(groupID)); !ok {
		return
	}

	var input MemberPermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "can_edit field is required"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("id = ? AND group_id = ?", memberID, groupID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	if err := database.DB.Model(&member).Update("can_edit", *input.CanEdit).Error; err != nil {
		logger.Log.Error("Failed to update member permissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permissions updated successfully"})
}

// AddGroupRestaurant godoc
// @Summary      Add a restaurant to a group
// @Description  Requires accepted membership with edit permission.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int             true "Group ID"
// @Param        input body RestaurantInput true "Restaurant Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member or no edit permission"
// @Failure      500  {object}  ErrorResponse
// @Router       /groups/{id}/restaurants [post]
func AddGroupRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	isMember, err := policy.IsAcceptedMember(database.DB, userID.(uint), uint(groupID))
	if err != nil {
		logger.Log.Error("Failed to check group membership", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error adding restaurant"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	canEdit, err := policy.CanEditGroup(database.DB, userID.(uint), uint(groupID))
	if err != nil {
		logger.Log.Error("Failed to check edit permission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error adding restaurant"})
		return
	}
	if !canEdit {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to add restaurants to this group"})
		return
	}

	var input RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, cuisine, and location are required"})
		return
	}
	if input.Rating < 0 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	gid := uint(groupID)
	restaurant := models.Restaurant{
		OwnerID:    userID.(uint),
		GroupID:    &gid,
		Name:       input.Name,
		Cuisine:    input.Cuisine,
		Location:   input.Location,
		Rating:     input.Rating,
		IsWishlist: input.IsWishlist,
		IsHidden:   false,
	}
	if err := database.DB.Create(&restaurant).Error; err != nil {
		logger.Log.Error("Failed to add group restaurant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error adding restaurant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant added to group",
		"restaurant": newRestaurantResponse(restaurant),
	})
}

// RateGroupRestaurant godoc
// @Summary      Rate a group restaurant
// @Description  Any accepted member may rate; edit permission is not required for rating.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id            path int         true "Group ID"
// @Param        restaurantId  path int         true "Restaurant ID"
// @Param        input         body RatingInput true "New rating"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Rating out of range"
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Failure      404  {object}  ErrorResponse "Restaurant not in this group"
// @Router       /groups/{id}/restaurants/{restaurantId} [put]
func RateGroupRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	restaurantID, err := strconv.ParseUint(c.Param("restaurantId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	isMember, err := policy.IsAcceptedMember(database.DB, userID.(uint), uint(groupID))
	if err != nil {
		logger.Log.Error("Failed to check group membership", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating rating"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil || *input.Rating < 0 || *input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.Where("id = ? AND group_id = ?", restaurantID, groupID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found in this group"})
		return
	}

	if err := database.DB.Model(&restaurant).Update("rating", *input.Rating).Error; err != nil {
		logger.Log.Error("Failed to update group restaurant rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Rating updated successfully",
		"restaurant": newRestaurantResponse(restaurant),
	})
}

// RemoveGroupRestaurant godoc
// @Summary      Remove a restaurant from a group
// @Description  Requires accepted membership with edit permission.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id            path int true "Group ID"
// @Param        restaurantId  path int true "Restaurant ID"
// @Success      200  {object}  map[string]string "{"message": "Restaurant removed from group"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Restaurant not in this group"
// @Router       /groups/{id}/restaurants/{restaurantId} [delete]
func RemoveGroupRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	restaurantID, err := strconv.ParseUint(c.Param("restaurantId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	isMember, err := policy.IsAcceptedMember(database.DB, userID.(uint), uint(groupID))
	if err != nil {
		logger.Log.Error("Failed to check group membership", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error removing restaurant"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	canEdit, err := policy.CanEditGroup(database.DB, userID.(uint), uint(groupID))
	if err != nil {
		logger.Log.Error("Failed to check edit permission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error removing restaurant"})
		return
	}
	if !canEdit {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to remove restaurants from this group"})
		return
	}

	result := database.DB.Where("id = ? AND group_id = ?", restaurantID, groupID).Delete(&models.Restaurant{})
	if result.Error != nil {
		logger.Log.Error("Failed to remove group restaurant", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error removing restaurant"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found in this group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant removed from group"})
}
