package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/pkg/apperror"
)

// paramKey parses the :key path parameter of an entity route.
func paramKey(c *gin.Context) (int64, error) {
	key, err := strconv.ParseInt(c.Param("key"), 10, 64)
	if err != nil || key <= 0 {
		return 0, apperror.NewBadRequestError("Geçersiz kayıt kodu: " + c.Param("key"))
	}
	return key, nil
}

// formError maps the form controller's field errors to 400s; everything
// else already carries its status.
func formError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrUnknownField), errors.Is(err, dashboard.ErrReadOnly):
		return apperror.NewBadRequestError(err.Error())
	}
	return err
}

func queryInt(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return n
}
