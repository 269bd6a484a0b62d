package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CallerIDHeader    = "X-Caller-ID"
	DisplayNameHeader = "X-Display-Name"

	maxCallerIDLength = 64
)

// ExtractCaller reads the caller identity set by the chat transport in front
// of this service. The display name is optional.
func ExtractCaller(c *gin.Context) (callerID, displayName string, err error) {
	callerID = strings.TrimSpace(c.GetHeader(CallerIDHeader))
	if callerID == "" {
		return "", "", fmt.Errorf("%s header is required", CallerIDHeader)
	}
	if len(callerID) > maxCallerIDLength {
		return "", "", fmt.Errorf("%s header is too long", CallerIDHeader)
	}
	return callerID, strings.TrimSpace(c.GetHeader(DisplayNameHeader)), nil
}
