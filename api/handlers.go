package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/sheets"
	"github.com/ssugameworks/brevets/utils"
)

// API 오류 코드
const (
	CodeInvalidQuery     = "INVALID_QUERY"
	CodeInvalidBody      = "INVALID_REQUEST_BODY"
	CodeInvalidStart     = "INVALID_START_TIME"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

type calcResult struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type submitRequest struct {
	BrevetKm  float64               `json:"brevet_dist_km"`
	BeginDate string                `json:"begin_date"`
	BeginTime string                `json:"begin_time"`
	UTCOffset string                `json:"utc_offset,omitempty"`
	Controls  []models.ControlInput `json:"controls"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleCalcTimes GET /_calc_times 단일 컨트롤의 오픈/마감 시각을 계산합니다
func (s *Server) handleCalcTimes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	km, err := utils.ParseDistance(q.Get("km"))
	if err != nil {
		writeError(w, errors.NewValidationError(CodeInvalidQuery,
			fmt.Sprintf("km: %v", err), fmt.Sprintf(constants.MsgInvalidKm, q.Get("km"))))
		return
	}

	brevetKm, err := utils.ParseDistance(q.Get("brevet_dist_km"))
	if err != nil {
		writeError(w, errors.NewValidationError(CodeInvalidQuery,
			fmt.Sprintf("brevet_dist_km: %v", err), fmt.Sprintf(constants.MsgInvalidKm, q.Get("brevet_dist_km"))))
		return
	}

	start, err := utils.CombineDateTime(q.Get("begin_date"), q.Get("begin_time"), q.Get("utc_offset"))
	if err != nil {
		writeError(w, errors.NewValidationError(CodeInvalidStart, err.Error(), constants.MsgInvalidStart))
		return
	}

	var closeAt time.Time
	openAt, err := s.deps.Calculator.OpenTime(km, brevetKm, start)
	if err == nil {
		closeAt, err = s.deps.Calculator.CloseTime(km, brevetKm, start)
	}
	s.recordCalculation("calc_times", brevetKm, err)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Debug("calc_times km=%g brevet=%g open=%s close=%s", km, brevetKm,
		utils.FormatISO(openAt), utils.FormatISO(closeAt))

	writeJSON(w, http.StatusOK, map[string]calcResult{
		"result": {Open: utils.FormatISO(openAt), Close: utils.FormatISO(closeAt)},
	})
}

// handleSubmit POST /submit 전체 스케줄을 계산해 저장합니다
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, errors.NewValidationError(CodeInvalidBody,
			fmt.Sprintf("decode submit body: %v", err), constants.MsgSubmitUsage))
		return
	}

	start, err := utils.CombineDateTime(req.BeginDate, req.BeginTime, req.UTCOffset)
	if err != nil {
		writeError(w, errors.NewValidationError(CodeInvalidStart, err.Error(), constants.MsgInvalidStart))
		return
	}

	submission, err := s.deps.Calculator.BuildSchedule(req.BrevetKm, start, req.Controls)
	s.recordCalculation("submit", req.BrevetKm, err)
	if err != nil {
		writeError(w, err)
		return
	}
	submission.SubmittedBy = "web"

	id, err := s.deps.Storage.Insert(r.Context(), *submission)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Info("Schedule submitted: id=%s brevet=%gkm controls=%d", id, req.BrevetKm, len(submission.Controls))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleDisplay GET /display 저장된 스케줄을 제출 순서대로 반환합니다
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.deps.Storage.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}

	writeJSON(w, http.StatusOK, map[string][]models.Submission{"submissions": submissions})
}

// handleClear POST /clear 저장된 스케줄을 모두 삭제합니다
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.deps.Storage.DeleteAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Info("Cleared %d stored schedules", deleted)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// handleExport GET /export.xlsx 저장된 스케줄을 엑셀 파일로 내려줍니다
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.deps.Storage.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=brevets.xlsx")
	w.Header().Set("Content-Transfer-Encoding", "binary")
	if err := sheets.WriteWorkbook(w, submissions); err != nil {
		// 헤더가 이미 나갔을 수 있으므로 로그만 남깁니다
		utils.Error("Failed to write xlsx export: %v", err)
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, errors.NewNotFoundError(CodeNotFound, "no route for "+r.URL.Path, ""))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]errorBody{
		"error": {Code: CodeMethodNotAllowed, Message: r.Method + " not allowed on " + r.URL.Path},
	})
}

// statusFor AppError 유형을 HTTP 상태 코드로 변환합니다
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case errors.TypeValidation:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	case errors.TypePermission:
		return http.StatusForbidden
	case errors.TypeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Code: CodeInternal, Message: "internal server error"}

	if appErr, ok := errors.AsAppError(err); ok {
		body.Code = appErr.Code
		body.Message = appErr.Message
		if appErr.Internal != nil {
			utils.Error("%s - %s: %v", appErr.Code, appErr.Message, appErr.Internal)
		} else {
			utils.Debug("%s - %s", appErr.Code, appErr.Message)
		}
	} else {
		utils.Error("UNEXPECTED ERROR: %v", err)
	}

	writeJSON(w, status, map[string]errorBody{"error": body})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Warn("Failed to encode response: %v", err)
	}
}
