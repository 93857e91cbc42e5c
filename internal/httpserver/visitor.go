package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) issueVisitor(c *gin.Context) {
	token, visitorID, err := h.visitors.Issue(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"visitorId": visitorID,
		"expiresIn": h.visitors.TTLSeconds(),
	})
}

func (h *handlers) getSession(c *gin.Context) {
	sess := sessionFrom(c)
	resp := gin.H{
		"visitorId": sess.VisitorID,
		"state":     sess.Account.State(),
		"cartCount": sess.Cart.Count(),
		"user":      nil,
	}
	if u, ok := sess.Account.User(); ok {
		resp["user"] = u
	}
	c.JSON(http.StatusOK, resp)
}
