package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"cell_directory/internal/config"
	"cell_directory/internal/middleware"
)

var (
	passphraseOnce sync.Once
	passphraseHash []byte
)

// adminPassphraseHash hashes the configured shared passphrase once, so login
// attempts always go through a bcrypt comparison rather than string equality.
func adminPassphraseHash() []byte {
	passphraseOnce.Do(func() {
		plain := config.GetEnv("ADMIN_PASSPHRASE", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Fatal("could not hash admin passphrase")
		}
		passphraseHash = hash
	})
	return passphraseHash
}

// LoginAdmin exchanges the shared admin passphrase for a session token. The
// directory has a single administrator identity, so there is no user lookup.
func LoginAdmin(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword(adminPassphraseHash(), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta."})
		return
	}

	token, err := middleware.GenerateToken("admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
