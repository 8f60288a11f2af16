package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hrtime/config"
	"hrtime/database"
	"hrtime/middleware"
	"hrtime/models"
	"hrtime/services"

	"github.com/go-chi/chi/v5"
)

type LeaveHandler struct {
	config *config.Config
}

func NewLeaveHandler(cfg *config.Config) *LeaveHandler {
	return &LeaveHandler{config: cfg}
}

type createLeaveRequest struct {
	EmployeeID    uint   `json:"employee_id"`
	LeaveTypeCode string `json:"leave_type_code"`
	DateFrom      string `json:"date_from"`
	DateTo        string `json:"date_to"`
	Reason        string `json:"reason"`
}

func (h *LeaveHandler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	employeeID := req.EmployeeID
	if employeeID == 0 {
		if user.EmployeeID == nil {
			respondError(w, http.StatusBadRequest, "No employee record linked to this account")
			return
		}
		employeeID = *user.EmployeeID
	}

	if !user.CanManageRecordsFor(employeeID) {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var leaveType models.LeaveType
	if err := database.GetDB().Where("code = ?", req.LeaveTypeCode).First(&leaveType).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Unknown leave type")
		return
	}

	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid start date format")
		return
	}
	dateTo, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid end date format")
		return
	}
	if dateTo.Before(dateFrom) {
		respondError(w, http.StatusBadRequest, "End date precedes start date")
		return
	}

	// No leave during probation
	if err := services.CheckProbation(database.GetDB(), employeeID, dateFrom); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	leave := models.Leave{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveType.ID,
		State:       models.LeaveConfirm,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Reason:      req.Reason,
	}

	if err := database.GetDB().Create(&leave).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create leave request")
		return
	}

	respondJSON(w, http.StatusCreated, leave)
}

func (h *LeaveHandler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.setLeaveState(w, r, models.LeaveValidate)
}

func (h *LeaveHandler) RefuseLeave(w http.ResponseWriter, r *http.Request) {
	h.setLeaveState(w, r, models.LeaveRefuse)
}

func (h *LeaveHandler) setLeaveState(w http.ResponseWriter, r *http.Request, state models.LeaveState) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanViewAllRecords() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid leave ID")
		return
	}

	var leave models.Leave
	if err := database.GetDB().First(&leave, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Leave request not found")
		return
	}

	// Approval re-checks probation; the contract may have changed since
	// the request was filed
	if state == models.LeaveValidate {
		if err := services.CheckProbation(database.GetDB(), leave.EmployeeID, leave.DateFrom); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	leave.State = state
	if err := database.GetDB().Save(&leave).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update leave request")
		return
	}

	respondJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := database.GetDB().Preload("Employee").Preload("LeaveType")

	if !user.CanViewAllRecords() {
		if user.EmployeeID == nil {
			respondJSON(w, http.StatusOK, []models.Leave{})
			return
		}
		query = query.Where("employee_id = ?", *user.EmployeeID)
	} else if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil && id > 0 {
			query = query.Where("employee_id = ?", id)
		}
	}

	var leaves []models.Leave
	query.Order("date_from desc").Limit(500).Find(&leaves)
	respondJSON(w, http.StatusOK, leaves)
}

func (h *LeaveHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := database.GetDB().Preload("Employee").Preload("LeaveType")

	if !user.CanViewAllRecords() {
		if user.EmployeeID == nil {
			respondJSON(w, http.StatusOK, []models.LeaveAllocation{})
			return
		}
		query = query.Where("employee_id = ?", *user.EmployeeID)
	} else if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil && id > 0 {
			query = query.Where("employee_id = ?", id)
		}
	}

	var allocations []models.LeaveAllocation
	query.Order("allocation_date desc").Limit(500).Find(&allocations)
	respondJSON(w, http.StatusOK, allocations)
}
