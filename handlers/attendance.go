package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hrtime/config"
	"hrtime/database"
	"hrtime/middleware"
	"hrtime/models"
)

type AttendanceHandler struct {
	config *config.Config
}

func NewAttendanceHandler(cfg *config.Config) *AttendanceHandler {
	return &AttendanceHandler{config: cfg}
}

type createAttendanceRequest struct {
	EmployeeID  uint   `json:"employee_id"`
	Date        string `json:"date"`
	WorkingType string `json:"working_type"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
}

func (h *AttendanceHandler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createAttendanceRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	workingType := models.WorkingType(req.WorkingType)
	if workingType == "" {
		workingType = models.WorkingOffice
	}
	if !models.ValidWorkingType(workingType) {
		respondError(w, http.StatusBadRequest, "Invalid working type")
		return
	}

	attendance := models.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckIn:     date,
		WorkingType: workingType,
	}

	if req.CheckIn != "" {
		checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid check in time")
			return
		}
		attendance.CheckIn = checkIn
	}
	if req.CheckOut != "" {
		checkOut, err := time.Parse(time.RFC3339, req.CheckOut)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid check out time")
			return
		}
		attendance.CheckOut = &checkOut
	}

	if err := database.GetDB().Create(&attendance).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create attendance record")
		return
	}

	respondJSON(w, http.StatusCreated, attendance)
}

func (h *AttendanceHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := database.GetDB().Preload("Employee")

	// Employees only see their own records
	if !user.CanViewAllRecords() {
		if user.EmployeeID == nil {
			respondJSON(w, http.StatusOK, []models.Attendance{})
			return
		}
		query = query.Where("employee_id = ?", *user.EmployeeID)
	} else if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil && id > 0 {
			query = query.Where("employee_id = ?", id)
		}
	}

	if month := r.URL.Query().Get("month"); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
			return
		}
		query = query.Where("month = ?", month)
	}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			query = query.Where("date >= ?", from)
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			query = query.Where("date <= ?", to)
		}
	}

	var records []models.Attendance
	query.Order("date desc").Limit(500).Find(&records)
	respondJSON(w, http.StatusOK, records)
}
