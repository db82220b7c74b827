package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["ok"] = true
	c.JSON(code, data)
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"ok": false, "error": message})
}
