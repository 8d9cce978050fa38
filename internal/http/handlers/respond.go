package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The error surface is deliberately flat: expected business outcomes are
// renders or redirects and never reach these helpers; anything else — a
// failed query, a malformed submission, an unparsable id — comes out as a
// 500 with the raw message, unsanitized.

func RespondError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func RespondInternal(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
