package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/civic-reports/pkg/helpers"
	"github.com/oksasatya/civic-reports/pkg/response"
)

const CtxClientRoleKey = "client_role"

// AnonKey requires "Authorization: Bearer <anon key>" signed by this
// deployment. When required is false the header is not checked; when it is
// required and keys is nil every request is rejected.
func AnonKey(keys *helpers.AnonKeyManager, required bool) gin.HandlerFunc {
	if !required {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || keys == nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", map[string]string{"authorization": "missing bearer token"})
			return
		}
		claims, err := keys.Verify(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", map[string]string{"authorization": "invalid anon key"})
			return
		}
		c.Set(CtxClientRoleKey, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
