package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/db"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login checks admin credentials against the bcrypt hash and establishes a
// server-side session.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBind(&payload); err != nil || payload.Username == "" || payload.Password == "" {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	var user db.User
	if err := a.db.Where("username = ?", payload.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		logError("session", "save", err)
		respondError(c, http.StatusInternalServerError, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
}

// Logout clears the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logError("session", "clear", err)
		respondError(c, http.StatusInternalServerError, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Dashboard returns entity counts for the admin overview.
func (a *API) Dashboard(c *gin.Context) {
	var memberCount, galleryCount, newsCount, contactCount int64
	a.db.Model(&db.Member{}).Count(&memberCount)
	a.db.Model(&db.GalleryItem{}).Count(&galleryCount)
	a.db.Model(&db.NewsArticle{}).Count(&newsCount)
	a.db.Model(&db.ContactMessage{}).Count(&contactCount)

	unread, err := a.contacts.CountUnread()
	if err != nil {
		logError("contact", "count_unread", err)
		respondError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       sessions.Default(c).Get("username"),
		"members":        memberCount,
		"gallery":        galleryCount,
		"news":           newsCount,
		"contacts":       contactCount,
		"unreadContacts": unread,
	})
}

// AuthRequired rejects requests without an established admin session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			respondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}
