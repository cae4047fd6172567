package handler

import (
	"fmt"
	"net/http"
	"testing"

	"forknfriends/backend/internal/database"
	"forknfriends/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type restaurantBody struct {
	Restaurant RestaurantResponse `json:"restaurant"`
}

type restaurantsBody struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

func createRestaurant(t *testing.T, r *gin.Engine, token string, input RestaurantInput) RestaurantResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/v1/restaurants", token, input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body restaurantBody
	decode(t, w, &body)
	require.NotZero(t, body.Restaurant.ID)
	return body.Restaurant
}

// befriend runs the full request/accept handshake between the two tokens.
func befriend(t *testing.T, r *gin.Engine, tokenFrom, tokenTo string, toID uint) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/v1/friends/request", tokenFrom, SendFriendRequestInput{FriendID: toID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reqs requestsBody
	w = doRequest(t, r, http.MethodGet, "/api/v1/friends/requests", tokenTo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &reqs)
	require.Len(t, reqs.Requests, 1)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/v1/friends/accept/%d", reqs.Requests[0].ID), tokenTo, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCreateAndListRestaurants(t *testing.T) {
	r := setupTest(t)
	aliceID, tokenA := signup(t, r, "alice")

	created := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn", Rating: 4, IsWishlist: true,
	})
	assert.Equal(t, aliceID, created.OwnerID)
	assert.True(t, created.IsWishlist)

	var body restaurantsBody
	w := doRequest(t, r, http.MethodGet, "/api/v1/restaurants", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	require.Len(t, body.Restaurants, 1)
	assert.Equal(t, "Slice House", body.Restaurants[0].Name)
}

func TestCreateRestaurantValidation(t *testing.T) {
	r := setupTest(t)
	_, tokenA := signup(t, r, "alice")

	// Missing required fields.
	w := doRequest(t, r, http.MethodPost, "/api/v1/restaurants", tokenA, map[string]string{"name": "Slice House"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Out-of-range rating.
	w = doRequest(t, r, http.MethodPost, "/api/v1/restaurants", tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn", Rating: 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Restaurant{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateGroupScopedRestaurantNeedsEditPermission(t *testing.T) {
	r := setupTest(t)
	_, tokenA := signup(t, r, "alice")
	bobID, tokenB := signup(t, r, "bob")

	groupID := createGroup(t, r, tokenA, "Pizza Crew")
	inviteTo(t, r, tokenA, groupID, bobID)
	acceptInvite(t, r, tokenB, groupID)

	input := RestaurantInput{Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn", GroupID: &groupID}

	// Bob is accepted but has no edit flag.
	w := doRequest(t, r, http.MethodPost, "/api/v1/restaurants", tokenB, input)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The creator can.
	created := createRestaurant(t, r, tokenA, input)
	require.NotNil(t, created.GroupID)
	assert.Equal(t, groupID, *created.GroupID)
}

func TestUpdateRestaurantOwnerOnly(t *testing.T) {
	r := setupTest(t)
	_, tokenA := signup(t, r, "alice")
	_, tokenB := signup(t, r, "bob")

	created := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn", Rating: 3,
	})

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenB,
		UpdateRestaurantInput{Name: strPtr("Hijacked")})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Partial update: only the sent fields change.
	newRating := 4.5
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenA,
		UpdateRestaurantInput{Rating: &newRating, IsHidden: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Restaurant
	require.NoError(t, database.DB.First(&stored, created.ID).Error)
	assert.Equal(t, "Slice House", stored.Name)
	assert.Equal(t, 4.5, stored.Rating)
	assert.True(t, stored.IsHidden)

	// Empty payload carries nothing to update.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenA, UpdateRestaurantInput{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Out-of-range rating rejected, stored value untouched.
	badRating := -1.0
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenA,
		UpdateRestaurantInput{Rating: &badRating})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, database.DB.First(&stored, created.ID).Error)
	assert.Equal(t, 4.5, stored.Rating)
}

func TestDeleteRestaurant(t *testing.T) {
	r := setupTest(t)
	_, tokenA := signup(t, r, "alice")
	_, tokenB := signup(t, r, "bob")

	created := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn",
	})

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGroupScopedRestaurantByEditor(t *testing.T) {
	r := setupTest(t)
	_, tokenA := signup(t, r, "alice")
	bobID, tokenB := signup(t, r, "bob")

	groupID := createGroup(t, r, tokenA, "Pizza Crew")
	inviteTo(t, r, tokenA, groupID, bobID)
	acceptInvite(t, r, tokenB, groupID)

	created := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn", GroupID: &groupID,
	})

	// Membership without the edit flag is not enough, even for deletion.
	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var bobRow models.GroupMember
	require.NoError(t, database.DB.Where("group_id = ? AND user_id = ?", groupID, bobID).First(&bobRow).Error)
	canEdit := true
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/v1/groups/%d/members/%d", groupID, bobRow.ID), tokenA, MemberPermissionInput{CanEdit: &canEdit})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRestaurantVisibility(t *testing.T) {
	r := setupTest(t)
	aliceID, tokenA := signup(t, r, "alice")
	_, tokenB := signup(t, r, "bob")
	_, tokenC := signup(t, r, "carol")

	visible := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn",
	})
	hidden := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Secret Spot", Cuisine: "Ramen", Location: "Queens", IsHidden: true,
	})

	befriend(t, r, tokenB, tokenA, aliceID)

	// Owner sees everything, hidden included.
	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", hidden.ID), tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Friend sees non-hidden entries only.
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", visible.ID), tokenB, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", hidden.ID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Stranger sees nothing.
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", visible.ID), tokenC, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/restaurants/9999", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGroupRestaurantAsMember(t *testing.T) {
	r := setupTest(t)
	_, tokenA := signup(t, r, "alice")
	bobID, tokenB := signup(t, r, "bob")
	_, tokenC := signup(t, r, "carol")

	groupID := createGroup(t, r, tokenA, "Pizza Crew")
	inviteTo(t, r, tokenA, groupID, bobID)
	acceptInvite(t, r, tokenB, groupID)

	created := createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn", GroupID: &groupID,
	})

	// Any accepted member may view a group restaurant, friendship not required.
	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", created.ID), tokenC, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFriendsRestaurantsFeed(t *testing.T) {
	r := setupTest(t)
	aliceID, tokenA := signup(t, r, "alice")
	_, tokenB := signup(t, r, "bob")
	_, tokenC := signup(t, r, "carol")

	createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Slice House", Cuisine: "Pizza", Location: "Brooklyn",
	})
	createRestaurant(t, r, tokenA, RestaurantInput{
		Name: "Secret Spot", Cuisine: "Ramen", Location: "Queens", IsHidden: true,
	})

	// No friends yet: empty feed, not an error.
	var body restaurantsBody
	w := doRequest(t, r, http.MethodGet, "/api/v1/restaurants/friends", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Empty(t, body.Restaurants)

	befriend(t, r, tokenB, tokenA, aliceID)

	w = doRequest(t, r, http.MethodGet, "/api/v1/restaurants/friends", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	require.Len(t, body.Restaurants, 1)
	assert.Equal(t, "Slice House", body.Restaurants[0].Name)
	assert.Equal(t, "alice", body.Restaurants[0].OwnerUsername)

	// Carol never befriended Alice; her feed stays empty.
	w = doRequest(t, r, http.MethodGet, "/api/v1/restaurants/friends", tokenC, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Empty(t, body.Restaurants)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
