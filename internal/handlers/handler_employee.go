package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/paylinear/payroll_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{
		employeeService: es,
	}
}

// registerEmployeeRoutes registers routes related to employees.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:employeeID", h.getEmployee)
		employees.PUT("/:employeeID", h.updateEmployee)
		employees.DELETE("/:employeeID", h.deactivateEmployee)
	}
}

// createEmployee adds a new employee record.
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor", actor))
	logger.Info("Received request to create employee", slog.String("email", req.Email))

	createdEmployee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create employee with duplicate email", slog.String("email", req.Email))
			c.JSON(http.StatusConflict, gin.H{"error": "Employee with this email already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating employee", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create employee in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		}
		return
	}

	logger.Info("Employee created successfully", slog.String("employee_id", createdEmployee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(createdEmployee))
}

// getEmployee retrieves a single employee by id.
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	logger = logger.With(slog.String("employee_id", employeeID))
	logger.Info("Received request to get employee")

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Employee not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			logger.Error("Failed to get employee from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	logger.Info("Employee retrieved successfully")
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// listEmployees retrieves employees with limit/offset pagination.
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEmployees", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	logger.Info("Received request to list employees", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list employees from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list employees"})
		return
	}

	logger.Info("Employees listed successfully", slog.Int("count", len(employees)))
	c.JSON(http.StatusOK, dto.ToListEmployeeResponse(employees))
}

// updateEmployee applies a partial update to an employee record.
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("employee_id", employeeID), slog.String("actor", actor))
	logger.Info("Received request to update employee")

	updatedEmployee, err := h.employeeService.UpdateEmployee(c.Request.Context(), employeeID, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Employee not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Updated email already in use")
			c.JSON(http.StatusConflict, gin.H{"error": "Employee with this email already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating employee", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update employee in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		}
		return
	}

	logger.Info("Employee updated successfully")
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(updatedEmployee))
}

// deactivateEmployee marks an employee inactive. Inactive employees keep
// their history but cannot be added to new payroll runs.
func (h *employeeHandler) deactivateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("employee_id", employeeID), slog.String("actor", actor))
	logger.Info("Received request to deactivate employee")

	if err := h.employeeService.DeactivateEmployee(c.Request.Context(), employeeID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Employee not found for deactivation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			logger.Error("Failed to deactivate employee in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate employee"})
		}
		return
	}

	logger.Info("Employee deactivated successfully")
	c.Status(http.StatusNoContent)
}
