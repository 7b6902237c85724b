package handlers

import (
	"musicminds/middleware"
	"musicminds/services/backend"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
)

// requireToken returns the relayed bearer token or answers 401.
func requireToken(c *gin.Context) (string, bool) {
	cred, ok := middleware.CredentialFrom(c)
	if !ok {
		utils.RespondError(c, backend.ErrUnauthenticated)
		return "", false
	}
	return cred.Token, true
}
