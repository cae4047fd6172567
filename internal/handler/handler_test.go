package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forknfriends/backend/internal/auth"
	"forknfriends/backend/internal/config"
	"forknfriends/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest wires an in-memory sqlite store and a router with the full API
// surface. Each test gets its own database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	return newTestRouter()
}

func newTestRouter() *gin.Engine {
	r := gin.New()

	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/signup", Signup)
		authRoutes.POST("/login", Login)
		authRoutes.GET("/me", auth.AuthMiddleware(), GetMe)
	}

	friendRoutes := r.Group("/api/v1/friends")
	friendRoutes.Use(auth.AuthMiddleware())
	{
		friendRoutes.GET("/search", SearchUsers)
		friendRoutes.GET("", GetFriends)
		friendRoutes.GET("/requests", GetPendingRequests)
		friendRoutes.POST("/request", SendFriendRequest)
		friendRoutes.PUT("/accept/:id", AcceptFriendRequest)
		friendRoutes.DELETE("/decline/:id", DeclineFriendRequest)
		friendRoutes.DELETE("/:id", UnfriendUser)
	}

	restaurantRoutes := r.Group("/api/v1/restaurants")
	restaurantRoutes.Use(auth.AuthMiddleware())
	{
		restaurantRoutes.GET("", GetRestaurants)
		restaurantRoutes.GET("/friends", GetFriendsRestaurants)
		restaurantRoutes.GET("/:id", GetRestaurant)
		restaurantRoutes.POST("", CreateRestaurant)
		restaurantRoutes.PUT("/:id", UpdateRestaurant)
		restaurantRoutes.DELETE("/:id", DeleteRestaurant)
	}

	groupRoutes := r.Group("/api/v1/groups")
	groupRoutes.Use(auth.AuthMiddleware())
	{
		groupRoutes.POST("", CreateGroup)
		groupRoutes.GET("", GetGroups)
		groupRoutes.GET("/invites", GetInvites)
		groupRoutes.GET("/:id", GetGroup)
		groupRoutes.PUT("/:id", UpdateGroup)
		groupRoutes.DELETE("/:id", DeleteGroup)

		groupRoutes.POST("/:id/members", InviteMember)
		groupRoutes.PUT("/:id/members/accept", AcceptInvite)
		groupRoutes.PUT("/:id/members/decline", DeclineInvite)
		groupRoutes.PUT("/:id/members/:memberId", UpdateMemberPermissions)
		groupRoutes.DELETE("/:id/members/:memberId", RemoveMember)

		groupRoutes.POST("/:id/restaurants", AddGroupRestaurant)
		groupRoutes.PUT("/:id/restaurants/:restaurantId", RateGroupRestaurant)
		groupRoutes.DELETE("/:id/restaurants/:restaurantId", RemoveGroupRestaurant)
	}

	placesRoutes := r.Group("/api/v1/places")
	placesRoutes.Use(auth.AuthMiddleware())
	{
		placesRoutes.GET("/search", SearchPlaces)
	}

	return r
}

// doRequest performs one request against the router and returns the recorder.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns its id and token.
func signup(t *testing.T, r *gin.Engine, username string) (uint, string) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", SignupInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

// decode unmarshals the recorder body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
