package handler

import (
	"net/http"
	"strconv"
	"time"

	"forknfriends/backend/internal/database"
	"forknfriends/backend/internal/logger"
	"forknfriends/backend/internal/models"
	"forknfriends/backend/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// RestaurantInput defines the structure for creating a restaurant.
type RestaurantInput struct {
	Name       string  `json:"name" binding:"required"`
	Cuisine    string  `json:"cuisine" binding:"required"`
	Location   string  `json:"location" binding:"required"`
	Rating     float64 `json:"rating"`
	IsWishlist bool    `json:"is_wishlist"`
	IsHidden   bool    `json:"is_hidden"`
	GroupID    *uint   `json:"group_id"`
}

// UpdateRestaurantInput defines the structure for a partial update. Absent
// fields are left untouched.
type UpdateRestaurantInput struct {
	Name       *string  `json:"name"`
	Cuisine    *string  `json:"cuisine"`
	Location   *string  `json:"location"`
	Rating     *float64 `json:"rating"`
	IsWishlist *bool    `json:"is_wishlist"`
	IsHidden   *bool    `json:"is_hidden"`
}

// RatingInput carries a bare rating update.
type RatingInput struct {
	Rating *float64 `json:"rating" binding:"required"`
}

// RestaurantResponse is the wire form of a restaurant.
type RestaurantResponse struct {
	ID            uint      `json:"id"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	GroupID       *uint     `json:"group_id,omitempty"`
	Name          string    `json:"name"`
	Cuisine       string    `json:"cuisine"`
	Location      string    `json:"location"`
	Rating        float64   `json:"rating"`
	IsWishlist    bool      `json:"is_wishlist"`
	IsHidden      bool      `json:"is_hidden"`
	CreatedAt     time.Time `json:"created_at"`
}

func newRestaurantResponse(r models.Restaurant) RestaurantResponse {
	resp := RestaurantResponse{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		GroupID:    r.GroupID,
		Name:       r.Name,
		Cuisine:    r.Cuisine,
		Location:   r.Location,
		Rating:     r.Rating,
		IsWishlist: r.IsWishlist,
		IsHidden:   r.IsHidden,
		CreatedAt:  r.CreatedAt,
	}
	if r.Owner.ID != 0 {
		resp.OwnerUsername = r.Owner.Username
	}
	return resp
}

// endregion

// GetRestaurants godoc
// @Summary      List own restaurants
// @Description  Lists every restaurant owned by the caller, hidden ones included.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]RestaurantResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /restaurants [get]
func GetRestaurants(c *gin.Context) {
	userID, _ := c.Get("userID")

	var restaurants []models.Restaurant
	err := database.DB.
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		logger.Log.Error("Failed to fetch restaurants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching restaurants"})
		return
	}

	responses := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		responses = append(responses, newRestaurantResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": responses})
}

// GetRestaurant godoc
// @Summary      Get a single restaurant
// @Description  Visible to the owner, to accepted members for group restaurants, and to accepted friends for non-hidden personal ones.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {object}  map[string]RestaurantResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Access denied"
// @Failure      404  {object}  ErrorResponse "Restaurant not found"
// @Router       /restaurants/{id} [get]
func GetRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, uint(restaurantID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	if !policy.IsOwner(restaurant, userID.(uint)) {
		if restaurant.GroupID != nil {
			// Group scope supersedes the personal hidden/friend rules.
			isMember, err := policy.IsAcceptedMember(database.DB, userID.(uint), *restaurant.GroupID)
			if err != nil {
				logger.Log.Error("Failed to check group membership", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching restaurant"})
				return
			}
			if !isMember {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
		} else {
			isFriend, err := policy.AreFriends(database.DB, userID.(uint), restaurant.OwnerID)
			if err != nil {
				logger.Log.Error("Failed to check friendship", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching restaurant"})
				return
			}
			if !isFriend || restaurant.IsHidden {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": newRestaurantResponse(restaurant)})
}

// CreateRestaurant godoc
// @Summary      Create a restaurant
// @Description  Creates a personal restaurant, or a group one when group_id is given (requires accepted membership with edit permission).
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RestaurantInput true "Restaurant Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Missing fields or rating out of range"
// @Failure      403  {object}  ErrorResponse "No edit permission in target group"
// @Failure      500  {object}  ErrorResponse
// @Router       /restaurants [post]
func CreateRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide name, cuisine, and location"})
		return
	}
	if input.Rating < 0 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	if input.GroupID != nil {
		canEdit, err := policy.CanEditGroup(database.DB, userID.(uint), *input.GroupID)
		if err != nil {
			logger.Log.Error("Failed to check edit permission", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error creating restaurant"})
			return
		}
		if !canEdit {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to add restaurants to this group"})
			return
		}
	}

	restaurant := models.Restaurant{
		OwnerID:    userID.(uint),
		GroupID:    input.GroupID,
		Name:       input.Name,
		Cuisine:    input.Cuisine,
		Location:   input.Location,
		Rating:     input.Rating,
		IsWishlist: input.IsWishlist,
		IsHidden:   input.IsHidden,
	}
	if err := database.DB.Create(&restaurant).Error; err != nil {
		logger.Log.Error("Failed to create restaurant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error creating restaurant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant created successfully",
		"restaurant": newRestaurantResponse(restaurant),
	})
}

// UpdateRestaurant godoc
// @Summary      Update a restaurant (owner only)
// @Description  Partial update of a restaurant the caller owns. Rating is re-validated against [0,5].
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                   true "Restaurant ID"
// @Param        input body UpdateRestaurantInput true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "No fields or rating out of range"
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Restaurant not found"
// @Router       /restaurants/{id} [put]
func UpdateRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, uint(restaurantID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	if !policy.IsOwner(restaurant, userID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own restaurants"})
		return
	}

	var input UpdateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Cuisine != nil {
		updates["cuisine"] = *input.Cuisine
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
			return
		}
		updates["rating"] = *input.Rating
	}
	if input.IsWishlist != nil {
		updates["is_wishlist"] = *input.IsWishlist
	}
	if input.IsHidden != nil {
		updates["is_hidden"] = *input.IsHidden
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := database.DB.Model(&restaurant).Updates(updates).Error; err != nil {
		logger.Log.Error("Failed to update restaurant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error updating restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurant updated successfully",
		"restaurant": newRestaurantResponse(restaurant),
	})
}

// DeleteRestaurant godoc
// @Summary      Delete a restaurant
// @Description  Personal restaurants require ownership; group restaurants require accepted membership with edit permission.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {object}  map[string]string "{"message": "Restaurant deleted successfully"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Restaurant not found"
// @Router       /restaurants/{id} [delete]
func DeleteRestaurant(c *gin.Context) {
	userID, _ := c.Get("userID")
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, uint(restaurantID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	if restaurant.GroupID != nil {
		canEdit, err := policy.CanEditGroup(database.DB, userID.(uint), *restaurant.GroupID)
		if err != nil {
			logger.Log.Error("Failed to check edit permission", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting restaurant"})
			return
		}
		if !canEdit {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to remove restaurants from this group"})
			return
		}
	} else if !policy.IsOwner(restaurant, userID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own restaurants"})
		return
	}

	if err := database.DB.Delete(&restaurant).Error; err != nil {
		logger.Log.Error("Failed to delete restaurant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error deleting restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

// GetFriendsRestaurants godoc
// @Summary      List friends' restaurants
// @Description  Lists all non-hidden restaurants owned by accepted friends, annotated with the owner's username. Empty friend set yields an empty list.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]RestaurantResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /restaurants/friends [get]
func GetFriendsRestaurants(c *gin.Context) {
	userID, _ := c.Get("userID")

	friendIDs, err := policy.AcceptedFriendIDs(database.DB, userID.(uint))
	if err != nil {
		logger.Log.Error("Failed to fetch friend ids", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching friends restaurants"})
		return
	}

	if len(friendIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"restaurants": []RestaurantResponse{}})
		return
	}

	var restaurants []models.Restaurant
	err = database.DB.
		Preload("Owner").
		Where("owner_id IN ? AND is_hidden = ?", friendIDs, false).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		logger.Log.Error("Failed to fetch friends restaurants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching friends restaurants"})
		return
	}

	responses := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		responses = append(responses, newRestaurantResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": responses})
}
