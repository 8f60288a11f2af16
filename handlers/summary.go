package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hrtime/config"
	"hrtime/database"
	"hrtime/middleware"
	"hrtime/services"

	"github.com/xuri/excelize/v2"
)

type SummaryHandler struct {
	config *config.Config
}

func NewSummaryHandler(cfg *config.Config) *SummaryHandler {
	return &SummaryHandler{config: cfg}
}

// GetSummary is the endpoint the attendance dashboard widget polls. It
// returns one row per employee for the requested range, defaulting to the
// current month to date.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	from, to, employeeIDs, err := parseSummaryParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Employees get their own row only
	if !user.CanViewAllRecords() {
		if user.EmployeeID == nil {
			respondJSON(w, http.StatusOK, []services.SummaryRow{})
			return
		}
		employeeIDs = []uint{*user.EmployeeID}
	}

	rows, err := services.ComputeSummary(database.GetDB(), from, to, employeeIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date_from": from.Format("2006-01-02"),
		"date_to":   to.Format("2006-01-02"),
		"rows":      rows,
	})
}

func (h *SummaryHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanExport() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	from, to, employeeIDs, err := parseSummaryParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := services.ComputeSummary(database.GetDB(), from, to, employeeIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	switch r.URL.Query().Get("format") {
	case "xlsx":
		h.writeXLSX(w, from, to, rows)
	case "", "csv":
		h.writeCSV(w, from, to, rows)
	default:
		respondError(w, http.StatusBadRequest, "Unsupported format")
	}
}

var summaryHeader = []string{
	"Employee", "Working Days", "Worked Days", "Office", "Remote",
	"Leave", "Holiday", "Sick", "Weekend", "Attendance %",
}

func summaryRecord(row services.SummaryRow) []string {
	return []string{
		row.EmployeeName,
		strconv.Itoa(row.TotalWorkingDays),
		strconv.Itoa(row.WorkedDays),
		strconv.Itoa(row.OfficeDays),
		strconv.Itoa(row.RemoteDays),
		strconv.Itoa(row.LeaveDays),
		strconv.Itoa(row.HolidayDays),
		strconv.Itoa(row.SickDays),
		strconv.Itoa(row.WeekendDays),
		fmt.Sprintf("%.2f", row.Percentage),
	}
}

func (h *SummaryHandler) writeCSV(w http.ResponseWriter, from, to time.Time, rows []services.SummaryRow) {
	filename := fmt.Sprintf("attendance_summary_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write(summaryHeader)
	for _, row := range rows {
		writer.Write(summaryRecord(row))
	}
}

func (h *SummaryHandler) writeXLSX(w http.ResponseWriter, from, to time.Time, rows []services.SummaryRow) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		values := []interface{}{
			row.EmployeeName, row.TotalWorkingDays, row.WorkedDays,
			row.OfficeDays, row.RemoteDays, row.LeaveDays, row.HolidayDays,
			row.SickDays, row.WeekendDays, row.Percentage,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("attendance_summary_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(w); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to write spreadsheet")
	}
}

func parseSummaryParams(r *http.Request) (time.Time, time.Time, []uint, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, nil, fmt.Errorf("invalid from date")
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, nil, fmt.Errorf("invalid to date")
		}
		to = parsed
	}
	if to.Before(from) {
		return from, to, nil, fmt.Errorf("to date precedes from date")
	}

	var employeeIDs []uint
	if idsStr := r.URL.Query().Get("employee_ids"); idsStr != "" {
		for _, part := range strings.Split(idsStr, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				return from, to, nil, fmt.Errorf("invalid employee_ids")
			}
			employeeIDs = append(employeeIDs, uint(id))
		}
	}

	return from, to, employeeIDs, nil
}
