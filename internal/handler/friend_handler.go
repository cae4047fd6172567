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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// region --- DTOs ---

// SendFriendRequestInput defines the structure for sending a friend request.
type SendFriendRequestInput struct {
	FriendID uint `json:"friend_id" binding:"required"`
}

// FriendResponse is one accepted friendship row joined with the peer's profile.
type FriendResponse struct {
	ID        uint      `json:"id"`
	FriendID  uint      `json:"friend_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequestResponse is one pending incoming request joined with the
// requester's profile.
type FriendRequestResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches users by username (case-insensitive contains), excluding the caller, capped at 10 results.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        query query string true "Username fragment"
// @Success      200  {object}  map[string][]UserResponse
// @Failure      400  {object}  ErrorResponse "Missing query"
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/search [get]
func SearchUsers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	query := strings.TrimSpace(c.Query("query"))

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	var users []models.User
	err := database.DB.
		Where("LOWER(username) LIKE ? AND id != ?", "%"+strings.ToLower(query)+"%", viewerID).
		Limit(10).
		Find(&users).Error
	if err != nil {
		logger.Log.Error("Failed to search users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error searching users"})
		return
	}

	results := make([]UserResponse, 0, len(users))
	for _, user := range users {
		results = append(results, newUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{"users": results})
}

// GetFriends godoc
// @Summary      List friends
// @Description  Lists all accepted friendships of the caller with peer profile data.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]FriendResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func GetFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var friendships []models.Friendship
	err := database.DB.
		Preload("Friend").
		Where("user_id = ? AND status = ?", viewerID, models.FriendshipAccepted).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		logger.Log.Error("Failed to fetch friends", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching friends"})
		return
	}

	friends := make([]FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		friends = append(friends, FriendResponse{
			ID:        f.ID,
			FriendID:  f.FriendID,
			Username:  f.Friend.Username,
			Email:     f.Friend.Email,
			CreatedAt: f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetPendingRequests godoc
// @Summary      List incoming friend requests
// @Description  Lists pending friend requests received by the caller.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]FriendRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/requests [get]
func GetPendingRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var friendships []models.Friendship
	err := database.DB.
		Preload("User").
		Where("friend_id = ? AND status = ?", viewerID, models.FriendshipPending).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		logger.Log.Error("Failed to fetch pending requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching pending requests"})
		return
	}

	requests := make([]FriendRequestResponse, 0, len(friendships))
	for _, f := range friendships {
		requests = append(requests, FriendRequestResponse{
			ID:        f.ID,
			UserID:    f.UserID,
			Username:  f.User.Username,
			Email:     f.User.Email,
			CreatedAt: f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// SendFriendRequest godoc
// @Summary      Send a friend request
// @Description  Creates a pending friendship edge from the caller to the target user.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestInput true "Target user"
// @Success      201  {object}  map[string]string "{"message": "Friend request sent"}"
// @Failure      400  {object}  ErrorResponse "Self-request or duplicate"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/request [post]
func SendFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Friend ID is required"})
		return
	}

	if input.FriendID == viewerID.(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send friend request to yourself"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, input.FriendID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Any existing row between the unordered pair blocks a new request.
	var existing models.Friendship
	err := database.DB.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			viewerID, input.FriendID, input.FriendID, viewerID).
		First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request already sent"})
		return
	}

	friendship := models.Friendship{
		UserID:   viewerID.(uint),
		FriendID: input.FriendID,
		Status:   models.FriendshipPending,
	}
	if err := database.DB.Create(&friendship).Error; err != nil {
		logger.Log.Error("Failed to create friend request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error sending friend request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent"})
}

// AcceptFriendRequest godoc
// @Summary      Accept a friend request
// @Description  Promotes the pending request to accepted and inserts the reciprocal edge. Both writes are atomic.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friendship row ID"
// @Success      200  {object}  map[string]string "{"message": "Friend request accepted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/accept/{id} [put]
func AcceptFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var request models.Friendship
	err = database.DB.
		Where("id = ? AND friend_id = ? AND status = ?", requestID, viewerID, models.FriendshipPending).
		First(&request).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	// Promote the original edge and insert the reciprocal one atomically, or
	// the relationship ends up asymmetric.
	tx := database.DB.Begin()

	if err := tx.Model(&request).Update("status", models.FriendshipAccepted).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to accept friend request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error accepting friend request"})
		return
	}

	reciprocal := models.Friendship{
		UserID:   viewerID.(uint),
		FriendID: request.UserID,
		Status:   models.FriendshipAccepted,
	}
	if err := tx.Create(&reciprocal).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to create reciprocal friendship", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error accepting friend request"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// DeclineFriendRequest godoc
// @Summary      Decline a friend request
// @Description  Deletes the pending request outright; no trace is retained.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friendship row ID"
// @Success      200  {object}  map[string]string "{"message": "Friend request declined"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/decline/{id} [delete]
func DeclineFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	result := database.DB.
		Where("id = ? AND friend_id = ? AND status = ?", requestID, viewerID, models.FriendshipPending).
		Delete(&models.Friendship{})
	if result.Error != nil {
		logger.Log.Error("Failed to decline friend request", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error declining friend request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
}

// UnfriendUser godoc
// @Summary      Remove a friend
// @Description  Deletes both directed rows of the friendship atomically.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friendship row ID (caller's side)"
// @Success      200  {object}  map[string]string "{"message": "Friend removed successfully"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Friendship not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/{id} [delete]
func UnfriendUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	friendshipID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friendship ID"})
		return
	}

	var friendship models.Friendship
	err = database.DB.
		Where("id = ? AND user_id = ?", friendshipID, viewerID).
		First(&friendship).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}

	tx := database.DB.Begin()

	if err := tx.Delete(&friendship).Error; err != nil {
		tx.Rollback()
		logger.Log.Error("Failed to remove friendship", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error removing friend"})
		return
	}

	reciprocal := tx.
		Where("user_id = ? AND friend_id = ?", friendship.FriendID, viewerID).
		Delete(&models.Friendship{})
	if reciprocal.Error != nil {
		tx.Rollback()
		logger.Log.Error("Failed to remove reciprocal friendship", zap.Error(reciprocal.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error removing friend"})
		return
	}
	if reciprocal.RowsAffected == 0 {
		// Tolerated, but it means the bidirectionality invariant was already
		// broken before this request.
		logger.Log.Warn("Missing reciprocal friendship row on unfriend",
			zap.Uint("user_id", viewerID.(uint)),
			zap.Uint("friend_id", friendship.FriendID))
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}
