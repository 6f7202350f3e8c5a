package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gehna-backend/internal/database"
	"gehna-backend/internal/middleware"
	"gehna-backend/internal/models"
	"gehna-backend/internal/services"
)

const maxProfilePicSize = 5 << 20 // 5 MB

// UploadProfilePic stores the uploaded image in MinIO and points the user's
// profile_pic at its public URL.
func UploadProfilePic(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only images allowed"})
		return
	}
	if fileHeader.Size > maxProfilePicSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 5MB)"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	url, err := services.UploadImage(ctx, "profile-pics", fileHeader)
	if err != nil {
		log.Println("❌ Profile pic upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	after := options.After
	var updated models.User
	err = database.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"profile_pic": url, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"_id":        updated.ID.Hex(),
		"name":       updated.Name,
		"email":      updated.Email,
		"role":       updated.Role(),
		"profilePic": updated.ProfilePic,
	}})
}
