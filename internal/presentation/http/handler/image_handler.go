package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/validation"
	"github.com/labomak/dashboard/internal/presentation/http/dto/request"
	"github.com/labomak/dashboard/internal/presentation/http/dto/response"
)

// ImageHandler tests product image references before they are saved
type ImageHandler struct {
	prober *validation.ImageProber
}

// NewImageHandler creates a new image handler
func NewImageHandler(prober *validation.ImageProber) *ImageHandler {
	return &ImageHandler{prober: prober}
}

// Probe loads the URL or data URI and reports whether it is a usable image.
// An unusable image is still a 200; the state is in the body.
func (h *ImageHandler) Probe(c *gin.Context) {
	var req request.ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Geçersiz istek gövdesi")
		return
	}
	result := h.prober.Probe(c.Request.Context(), req.URL)
	response.OK(c, "Görsel kontrolü: "+result.State.String(), result)
}
