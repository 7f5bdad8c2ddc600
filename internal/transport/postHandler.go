package transport

import (
	"errors"
	"net/http"

	"github.com/TGartman/SSC/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *PostHandler) ComposePost(c *gin.Context) {
	var req entity.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.NewErrorResponse("bad_request", "invalid JSON body: "+err.Error()))
		return
	}

	resp, err := h.service.Compose(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) BatchCompose(c *gin.Context) {
	var req entity.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.NewErrorResponse("bad_request", "invalid JSON body: "+err.Error()))
		return
	}

	outcomes, err := h.service.Batch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(outcomes), "results": outcomes})
}

func (h *PostHandler) ListImages(c *gin.Context) {
	req := entity.ListRequest{
		Brand:       c.Query("brand"),
		Category:    c.Query("category"),
		ProductLine: c.Query("productLine"),
		FolderType:  c.Query("folderType"),
	}

	images, err := h.service.ListImages(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(images), "images": images})
}

// respondError maps the error taxonomy onto the two structured JSON shapes:
// client-caused validation failures are 400 bad_request, everything else is
// 500 server_error. Upstream auth failures already carry guidance text.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, entity.ErrBadRequest) {
		c.JSON(http.StatusBadRequest, entity.NewErrorResponse("bad_request", err.Error()))
		return
	}

	logrus.WithFields(logrus.Fields{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	}).Error("request failed")

	c.JSON(http.StatusInternalServerError, entity.NewErrorResponse("server_error", err.Error()))
}
