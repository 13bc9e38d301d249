package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/app/services"
	"github.com/emirkaya/staffdesk/internal/middleware"
	"github.com/emirkaya/staffdesk/internal/pkg/filestorage"
)

// imageFormField is the multipart field carrying the profile image.
const imageFormField = "image"

// EmployeeController handles the employee CRUD endpoints.
type EmployeeController struct {
	employeeService services.EmployeeService
	fileStorage     filestorage.FileStorage
	logger          zerolog.Logger
}

// NewEmployeeController creates a new EmployeeController
func NewEmployeeController(employeeService services.EmployeeService, fileStorage filestorage.FileStorage, logger zerolog.Logger) *EmployeeController {
	return &EmployeeController{
		employeeService: employeeService,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// imageExtensions and imageMimeTypes restrict uploads to jpeg/jpg/png.
// Extension and declared content type must both match.
var (
	imageExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}
	imageMimeTypes  = map[string]bool{"image/jpeg": true, "image/jpg": true, "image/png": true}
)

// checkImageType validates an uploaded file against the allowed types.
func checkImageType(fileHeader *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !imageExtensions[ext] {
		return fmt.Errorf("unsupported image extension %q", ext)
	}
	if mimeType := fileHeader.Header.Get("Content-Type"); !imageMimeTypes[mimeType] {
		return fmt.Errorf("unsupported image content type %q", mimeType)
	}
	return nil
}

// bindEmployeeForm binds the multipart form and the optional image,
// validating the image type. It writes the error response itself and
// reports success through the bool.
func (c *EmployeeController) bindEmployeeForm(ctx *gin.Context) (*dto.EmployeeForm, *multipart.FileHeader, bool) {
	var form dto.EmployeeForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid employee form")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return nil, nil, false
	}

	fileHeader, err := ctx.FormFile(imageFormField)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid image upload")
			errorDetail = errorDetail.WithField(imageFormField).WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return nil, nil, false
		}
		fileHeader = nil
	}

	if fileHeader != nil {
		if err := checkImageType(fileHeader); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Images only (jpeg, jpg, png)")
			errorDetail = errorDetail.WithField(imageFormField).WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return nil, nil, false
		}
	}

	return &form, fileHeader, true
}

// saveImage stores the uploaded image, if any, and returns its path.
func (c *EmployeeController) saveImage(ctx *gin.Context, fileHeader *multipart.FileHeader) (string, bool) {
	if fileHeader == nil {
		return "", true
	}

	imagePath, err := c.fileStorage.SaveFile(ctx.Request.Context(), fileHeader)
	if err != nil {
		c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store uploaded image")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to store image")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return imagePath, true
}

// CreateEmployee handles POST /api/employees.
func (c *EmployeeController) CreateEmployee(ctx *gin.Context) {
	form, fileHeader, ok := c.bindEmployeeForm(ctx)
	if !ok {
		return
	}

	imagePath, ok := c.saveImage(ctx, fileHeader)
	if !ok {
		return
	}

	employee, err := c.employeeService.Create(ctx.Request.Context(), form, imagePath)
	if err != nil {
		// The record never landed; don't orphan the stored file.
		if imagePath != "" {
			_ = c.fileStorage.DeleteFile(ctx.Request.Context(), imagePath)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      employee,
		Timestamp: time.Now(),
	})
}

// ListEmployees handles GET /api/employees with an optional search
// query filtering on name substring.
func (c *EmployeeController) ListEmployees(ctx *gin.Context) {
	employees, err := c.employeeService.List(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      employees,
		Timestamp: time.Now(),
	})
}

// GetEmployeeByID handles GET /api/employees/:id.
func (c *EmployeeController) GetEmployeeByID(ctx *gin.Context) {
	localID, ok := c.parseLocalID(ctx)
	if !ok {
		return
	}

	employee, err := c.employeeService.GetByLocalID(ctx.Request.Context(), localID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      employee,
		Timestamp: time.Now(),
	})
}

// UpdateEmployee handles PUT /api/employees/:id.
func (c *EmployeeController) UpdateEmployee(ctx *gin.Context) {
	localID, ok := c.parseLocalID(ctx)
	if !ok {
		return
	}

	form, fileHeader, ok := c.bindEmployeeForm(ctx)
	if !ok {
		return
	}

	imagePath, ok := c.saveImage(ctx, fileHeader)
	if !ok {
		return
	}

	employee, err := c.employeeService.Update(ctx.Request.Context(), localID, form, imagePath)
	if err != nil {
		if imagePath != "" {
			_ = c.fileStorage.DeleteFile(ctx.Request.Context(), imagePath)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      employee,
		Timestamp: time.Now(),
	})
}

// DeleteEmployee handles DELETE /api/employees/:id.
func (c *EmployeeController) DeleteEmployee(ctx *gin.Context) {
	localID, ok := c.parseLocalID(ctx)
	if !ok {
		return
	}

	if err := c.employeeService.Delete(ctx.Request.Context(), localID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Employee removed"},
		Timestamp: time.Now(),
	})
}

func (c *EmployeeController) parseLocalID(ctx *gin.Context) (int64, bool) {
	localID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid employee ID")
		errorDetail = errorDetail.WithDetails("Employee ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return localID, true
}
