package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/gateway"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/presentation/http/dto/request"
	"github.com/labomak/dashboard/internal/presentation/http/dto/response"
	"github.com/labomak/dashboard/pkg/apperror"
)

// TableHandler is the generic record-level surface of the gateway, for
// admin tooling. Unknown table names are rejected by the gateway.
type TableHandler struct {
	gw *gateway.Gateway
}

// NewTableHandler creates a new table handler
func NewTableHandler(gw *gateway.Gateway) *TableHandler {
	return &TableHandler{gw: gw}
}

// public drops password hashes from kullanici rows.
func public(rec domainRepo.Record) domainRepo.Record {
	delete(rec, "sifre_hash")
	return rec
}

// tableError reports an unregistered table as a 404.
func tableError(err error) error {
	if errors.Is(err, domainRepo.ErrUnknownTable) {
		return apperror.NewNotFoundError("Tablo")
	}
	return err
}

func (h *TableHandler) List(c *gin.Context) {
	rows, err := h.gw.List(c.Request.Context(), c.Param("table"))
	if err != nil {
		response.Error(c, tableError(err))
		return
	}
	for _, rec := range rows {
		public(rec)
	}
	response.OK(c, c.Param("table"), rows)
}

func (h *TableHandler) Get(c *gin.Context) {
	rec, err := h.gw.GetOne(c.Request.Context(), c.Param("table"), c.Param("key"))
	if err != nil {
		response.Error(c, tableError(err))
		return
	}
	response.OK(c, c.Param("table"), public(rec))
}

func (h *TableHandler) Create(c *gin.Context) {
	var req request.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Geçersiz istek gövdesi")
		return
	}
	rec, err := h.gw.Create(c.Request.Context(), c.Param("table"), req.Record())
	if err != nil {
		response.Error(c, tableError(err))
		return
	}
	response.Created(c, "Kayıt eklendi", public(rec))
}

func (h *TableHandler) Update(c *gin.Context) {
	var req request.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Geçersiz istek gövdesi")
		return
	}
	rec, err := h.gw.Update(c.Request.Context(), c.Param("table"), c.Param("key"), req.Record())
	if err != nil {
		response.Error(c, tableError(err))
		return
	}
	response.OK(c, "Kayıt güncellendi", public(rec))
}

func (h *TableHandler) Delete(c *gin.Context) {
	if err := h.gw.Delete(c.Request.Context(), c.Param("table"), c.Param("key")); err != nil {
		response.Error(c, tableError(err))
		return
	}
	response.OK(c, "Kayıt silindi", gin.H{"key": c.Param("key")})
}

// Users lists kullanici rows without password hashes.
func (h *TableHandler) Users(c *gin.Context) {
	response.OK(c, "Kullanıcılar", h.gw.Users(c.Request.Context()))
}
