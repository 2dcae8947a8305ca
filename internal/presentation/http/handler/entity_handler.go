package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/service"
	"github.com/labomak/dashboard/internal/presentation/http/dto/request"
	"github.com/labomak/dashboard/internal/presentation/http/dto/response"
	"github.com/labomak/dashboard/pkg/apperror"
	"github.com/labomak/dashboard/pkg/pagination"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EntityHandler exposes one descriptor-driven module (customers, products
// or offers) over HTTP. Writes go through the same form controller as the
// terminal UI, so field names, validation and payload rules are shared.
type EntityHandler[E any] struct {
	desc   *dashboard.Descriptor[E]
	export *service.ExportService
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler[E any](desc *dashboard.Descriptor[E], export *service.ExportService) *EntityHandler[E] {
	return &EntityHandler[E]{desc: desc, export: export}
}

func (h *EntityHandler[E]) criteria(c *gin.Context) (dashboard.Criteria, error) {
	criteria, err := dashboard.CriteriaFromQuery(h.desc.Filters, c.Query)
	if err != nil {
		return dashboard.Criteria{}, apperror.NewBadRequestError(err.Error())
	}
	return criteria, nil
}

// List returns one page of the filtered list. Query: q, filter columns,
// <column>_min/_max and page.
func (h *EntityHandler[E]) List(c *gin.Context) {
	criteria, err := h.criteria(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Geçersiz sayfa numarası")
		return
	}
	params.Validate()

	list := dashboard.NewListController(h.desc)
	list.Refresh(c.Request.Context())
	list.ApplyFilter(criteria)
	list.SetPage(params.Page)

	response.SuccessWithPagination(c, http.StatusOK, h.desc.Label+" listesi", list.Page())
}

func (h *EntityHandler[E]) Get(c *gin.Context) {
	key, err := paramKey(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.desc.Table.Get(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.desc.Label+" bilgisi", e)
}

// Create submits a create form filled from the body. Fields left out keep
// their defaults, such as the reserved number of an offer.
func (h *EntityHandler[E]) Create(c *gin.Context) {
	var req request.FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Geçersiz istek gövdesi")
		return
	}
	ctx := c.Request.Context()

	form, err := dashboard.NewCreateForm(ctx, h.desc, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Releases whatever number the form still holds: the abandoned one on
	// failure, the one reserved by the post-submit reset on success.
	defer form.Cancel(ctx)

	if err := form.SetAll(req.Values()); err != nil {
		response.Error(c, formError(err))
		return
	}
	saved, err := form.Submit(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.desc.Label+" başarıyla eklendi", saved)
}

// Update submits an edit form. Key and immutable fields may be sent back
// unchanged; changing them is a 400.
func (h *EntityHandler[E]) Update(c *gin.Context) {
	key, err := paramKey(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Geçersiz istek gövdesi")
		return
	}
	ctx := c.Request.Context()

	form, err := dashboard.NewEditForm(ctx, h.desc, nil, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := form.SetAll(req.Values()); err != nil {
		response.Error(c, formError(err))
		return
	}
	saved, err := form.Submit(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.desc.Label+" başarıyla güncellendi", saved)
}

func (h *EntityHandler[E]) Delete(c *gin.Context) {
	key, err := paramKey(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.desc.Table.Delete(c.Request.Context(), key); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.desc.Label+" silindi", gin.H{"key": key})
}

// Export streams the filtered list as an XLSX download.
func (h *EntityHandler[E]) Export(c *gin.Context) {
	criteria, err := h.criteria(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var buf bytes.Buffer
	name, err := h.export.Export(c.Request.Context(), h.desc.Module, criteria, &buf)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Register mounts the module routes under group.
func (h *EntityHandler[E]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/export", h.Export)
	group.GET("/:key", h.Get)
	group.POST("", h.Create)
	group.PUT("/:key", h.Update)
	group.DELETE("/:key", h.Delete)
}
