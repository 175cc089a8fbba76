package handler

import (
	"errors"
	"log"
	"net/http"

	"chatwire/backend/internal/auth"
	"chatwire/backend/internal/models"
	"chatwire/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenCookie = "accessToken"

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(accessTokenCookie, token, int(h.Issuer.TTL().Seconds()), "/", "", true, true)
}

// Register creates an account, signs a token for it and sets the
// accessToken cookie so the client can open a websocket right away.
func (h *Handler) Register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	account := &models.Account{Username: creds.Username, Password: string(hashed)}
	if err := h.Storage.CreateAccount(account); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account already exists"})
			return
		}
		log.Printf("ERROR: Failed to create account %s: %v", creds.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := h.Issuer.Issue(account.ID, account.Username)
	if err != nil {
		log.Printf("ERROR: Failed to sign token for %s: %v", account.ID, err)
		c.JSON(http.StatusForbidden, gin.H{"error": "Failed to create token"})
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"status": "register success", "result": account})
}

// Login checks the credentials and, on success, sets a fresh token cookie.
func (h *Handler) Login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	account, err := h.Storage.FindAccountByUsername(creds.Username)
	if err != nil {
		if !errors.Is(err, storage.ErrAccountNotFound) {
			log.Printf("ERROR: Failed to look up account %s: %v", creds.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up account"})
			return
		}
		// Unknown user falls through to the same rejection as a bad
		// password, to avoid a username oracle.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong username or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(creds.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong username or password"})
		return
	}

	token, err := h.Issuer.Issue(account.ID, account.Username)
	if err != nil {
		log.Printf("ERROR: Failed to sign token for %s: %v", account.ID, err)
		c.JSON(http.StatusForbidden, gin.H{"error": "Failed to create token"})
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"status": "login success", "result": account})
}

// Logout clears the cookie and denylists the token for its remaining
// lifetime, so the websocket gateway stops accepting it immediately.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		if err := h.Storage.RevokeToken(token, h.Issuer.TTL()); err != nil {
			log.Printf("ERROR: Failed to revoke token: %v", err)
		}
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"status": "logout success"})
}

// Profile returns the identity asserted by the cookie token.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := h.claimsFromCookie(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, claims)
}

// claimsFromCookie verifies the accessToken cookie and rejects revoked
// tokens. On failure it writes the 401 response itself.
func (h *Handler) claimsFromCookie(c *gin.Context) (*auth.Claims, bool) {
	token, err := c.Cookie(accessTokenCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token"})
		return nil, false
	}

	claims, err := h.Verifier.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return nil, false
	}

	revoked, err := h.Storage.IsTokenRevoked(token)
	if err != nil {
		log.Printf("ERROR: Failed to check token revocation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check token"})
		return nil, false
	}
	if revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return nil, false
	}

	return claims, true
}
