package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gehna-backend/internal/database"
	"gehna-backend/internal/middleware"
	"gehna-backend/internal/models"
	"gehna-backend/internal/utils"
)

// Same message for unknown email and wrong password so the response never
// leaks which one failed.
const invalidCredentials = "Invalid email or password"

// userByEmail resolves a login email against the users collection. Injected
// so the credential checks are testable without a live database.
var userByEmail = func(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"_id":        user.ID.Hex(),
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role(),
		"profilePic": user.ProfilePic,
	}
}

func register(c *gin.Context, asAdmin bool) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		IsAdmin:   asAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := database.Users().InsertOne(ctx, user)
	if err != nil {
		log.Println("❌ User insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.SendEmailAsync(user.Email, "Welcome to Gehna Jewels 🎉", utils.WelcomeHTML(user.Name))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    userPayload(user),
		"token":   token,
	})
}

// Register creates a regular user account.
func Register(c *gin.Context) {
	register(c, false)
}

// RegisterAdmin creates an admin account. Bootstrap path, same as the
// original register-admin route.
func RegisterAdmin(c *gin.Context) {
	register(c, true)
}

// Login checks the credentials and issues a token.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := userByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
			return
		}
		log.Println("❌ Login lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    userPayload(*user),
		"token":   token,
	})
}

// Me returns the user loaded by the auth middleware.
func Me(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(user)})
}
