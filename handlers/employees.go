package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hrtime/config"
	"hrtime/database"
	"hrtime/middleware"
	"hrtime/models"

	"github.com/go-chi/chi/v5"
)

type EmployeeHandler struct {
	config *config.Config
}

func NewEmployeeHandler(cfg *config.Config) *EmployeeHandler {
	return &EmployeeHandler{config: cfg}
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanManageEmployees() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var employees []models.Employee
	database.GetDB().Preload("Contracts").Order("name asc").Find(&employees)
	respondJSON(w, http.StatusOK, employees)
}

type createEmployeeRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanManageEmployees() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req createEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	employee := models.Employee{Name: req.Name, Active: true}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := database.GetDB().Create(&employee).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	respondJSON(w, http.StatusCreated, employee)
}

type updateEmployeeRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanManageEmployees() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var employee models.Employee
	if err := database.GetDB().First(&employee, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Employee not found")
		return
	}

	var req updateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := database.GetDB().Save(&employee).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

type createContractRequest struct {
	EmployeeID      uint   `json:"employee_id"`
	DateStart       string `json:"date_start"`
	DateEnd         string `json:"date_end"`
	State           string `json:"state"`
	ProbationMonths *int   `json:"probation_months"`
	WorkDays        string `json:"work_days"`
}

func (h *EmployeeHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanManageEmployees() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req createContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var employee models.Employee
	if err := database.GetDB().First(&employee, req.EmployeeID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Employee not found")
		return
	}

	dateStart, err := time.Parse("2006-01-02", req.DateStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid start date format")
		return
	}

	contract := models.Contract{
		EmployeeID:      req.EmployeeID,
		DateStart:       dateStart,
		State:           models.ContractOpen,
		ProbationMonths: models.DefaultProbationMonths,
		WorkDays:        models.DefaultWorkDays,
	}

	if req.DateEnd != "" {
		dateEnd, err := time.Parse("2006-01-02", req.DateEnd)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
		contract.DateEnd = &dateEnd
	}
	if req.State != "" {
		switch models.ContractState(req.State) {
		case models.ContractDraft, models.ContractOpen, models.ContractClosed:
			contract.State = models.ContractState(req.State)
		default:
			respondError(w, http.StatusBadRequest, "Invalid contract state")
			return
		}
	}
	if req.ProbationMonths != nil {
		contract.ProbationMonths = *req.ProbationMonths
	}
	if req.WorkDays != "" {
		contract.WorkDays = req.WorkDays
	}

	if err := contract.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.GetDB().Create(&contract).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create contract")
		return
	}

	respondJSON(w, http.StatusCreated, contract)
}

func (h *EmployeeHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanManageEmployees() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	query := database.GetDB().Preload("Employee")
	if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil && id > 0 {
			query = query.Where("employee_id = ?", id)
		}
	}

	var contracts []models.Contract
	query.Order("date_start desc").Find(&contracts)
	respondJSON(w, http.StatusOK, contracts)
}
