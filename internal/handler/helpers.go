package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"supplyease/internal/apierror"
	"supplyease/internal/coerce"
	"supplyease/internal/importer"
	"supplyease/internal/middleware"
	"supplyease/internal/repository"
	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch v := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := v.Float64()
			return f
		case coerce.Decimal:
			f, _ := v.Value().Float64()
			return f
		}
		return nil
	}, decimal.Decimal{}, coerce.Decimal{})
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(coerce.Date); ok && d.Ptr() != nil {
			return *d.Ptr()
		}
		return nil
	}, coerce.Date{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgInvalidBody+": "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads the :id path parameter. On failure it writes a 400 and
// returns false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgInvalidID))
		return 0, false
	}
	return uint(id), true
}

// writeError maps domain errors onto HTTP responses. Anything unrecognised is
// handed to the ErrorHandler middleware, which logs it and answers 500.
func writeError(c *gin.Context, err error) {
	status, detail, ok := mapError(c, err)
	if !ok {
		_ = c.Error(err)
		return
	}
	c.JSON(status, apierror.New(detail))
}

// mapError resolves the status and client-facing detail for a domain error.
// ok is false for errors the caller should treat as internal.
func mapError(c *gin.Context, err error) (status int, detail string, ok bool) {
	var cascade *service.CascadeError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, apierror.MsgNotFound, true
	case errors.Is(err, service.ErrUnlinkedReference):
		return http.StatusConflict, err.Error(), true
	case errors.Is(err, service.ErrConstraintViolation), errors.Is(err, repository.ErrDuplicateKey):
		return http.StatusConflict, service.ErrConstraintViolation.Error(), true
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error(), true
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error(), true
	case errors.As(err, &cascade):
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("cascade failed")
		return http.StatusInternalServerError, "update failed at " + cascade.Stage + " stage, no changes were saved", true
	}
	return 0, "", false
}
