package handlers

import (
	"net/http"
	"time"

	"hrtime/config"
	"hrtime/database"
	"hrtime/middleware"
	"hrtime/services"
)

type JobHandler struct {
	config *config.Config
}

func NewJobHandler(cfg *config.Config) *JobHandler {
	return &JobHandler{config: cfg}
}

// RunJob triggers an automation job outside its schedule. The jobs are
// idempotent, so an extra run is always safe.
func (h *JobHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanRunJobs() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	now := time.Now().UTC()
	db := database.GetDB()

	switch r.URL.Query().Get("job") {
	case "allocation":
		report, err := services.RunAnnualAllocation(db, now)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, report)
	case "sick":
		report, err := services.RunSickAllocation(db, now)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, report)
	case "attendance":
		report, err := services.RunAttendanceAutomation(db, now)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, report)
	default:
		respondError(w, http.StatusBadRequest, "Unknown job, expected allocation, sick or attendance")
	}
}
