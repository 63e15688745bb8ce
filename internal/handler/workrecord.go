// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/teukgeun/teukgeun/internal/metrics"
	"github.com/teukgeun/teukgeun/internal/repository"
	"github.com/teukgeun/teukgeun/pkg/calendar"
	"github.com/teukgeun/teukgeun/pkg/engine"
	"github.com/teukgeun/teukgeun/pkg/errors"
	"github.com/teukgeun/teukgeun/pkg/logger"
	"github.com/teukgeun/teukgeun/pkg/model"
	"github.com/teukgeun/teukgeun/pkg/stats"
	"github.com/teukgeun/teukgeun/pkg/validator"
)

// WorkRecordHandler 特勤工时处理器
type WorkRecordHandler struct {
	generator *engine.Generator
	checker   *validator.ResultChecker
	repo      *repository.WorkRecordRepository // 为nil时跳过持久化
	engineCfg engine.Config
}

// NewWorkRecordHandler 创建工时处理器
func NewWorkRecordHandler(provider calendar.HolidayProvider, cfg engine.Config, repo *repository.WorkRecordRepository) *WorkRecordHandler {
	return &WorkRecordHandler{
		generator: engine.NewWithConfig(provider, cfg),
		checker:   validator.NewResultChecker(provider),
		repo:      repo,
		engineCfg: cfg,
	}
}

// GenerateRequest 工时生成请求
type GenerateRequest struct {
	TargetMonth              string   `json:"target_month"` // YYYY-MM
	TotalHours               int      `json:"total_hours"`
	EmployeeName             string   `json:"employee_name,omitempty"`
	Employees                []string `json:"employees,omitempty"` // 批量生成
	MaxWeeklyOvertimeMinutes int      `json:"max_weekly_overtime_minutes,omitempty"`
	BreakMinutes4h           int      `json:"break_minutes_4h,omitempty"`
	BreakMinutes8h           int      `json:"break_minutes_8h,omitempty"`
	Seed                     *int64   `json:"seed,omitempty"`
	Persist                  bool     `json:"persist,omitempty"`
}

// ShiftOutput 班次输出
type ShiftOutput struct {
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	BreakMinutes      int    `json:"break_minutes"`
	Description       string `json:"description"`
	RecognizedMinutes int    `json:"recognized_minutes"`
}

// EmployeeResult 单个员工的生成结果
type EmployeeResult struct {
	EmployeeName          string                `json:"employee_name"`
	BatchID               string                `json:"batch_id,omitempty"`
	Persona               string                `json:"persona"`
	PersonaLabel          string                `json:"persona_label"`
	TimePreference        string                `json:"time_preference"`
	Shifts                []ShiftOutput         `json:"shifts"`
	TotalAllocatedMinutes int                   `json:"total_allocated_minutes"`
	TargetMinutes         int                   `json:"target_minutes"`
	Shortfall             int                   `json:"shortfall,omitempty"`
	Attempts              int                   `json:"attempts"`
	ErrorMinutes          int                   `json:"error_minutes"`
	Violations            []validator.Violation `json:"violations,omitempty"`
	WeeklyReport          *stats.WeeklyReport   `json:"weekly_report"`
}

// GenerateResponse 工时生成响应
type GenerateResponse struct {
	Success  bool             `json:"success"`
	Results  []EmployeeResult `json:"results"`
	Duration string           `json:"duration"`
}

// Generate 生成特勤工时记录
func (h *WorkRecordHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if err := validateGenerateRequest(&req); err != nil {
		respondError(w, err)
		return
	}

	employees := req.Employees
	if len(employees) == 0 {
		employees = []string{req.EmployeeName}
	}

	start := time.Now()
	results := make([]EmployeeResult, 0, len(employees))

	for _, name := range employees {
		opts := model.GenerationOptions{
			TargetMonth:              req.TargetMonth,
			TotalHours:               req.TotalHours,
			EmployeeName:             name,
			MaxWeeklyOvertimeMinutes: req.MaxWeeklyOvertimeMinutes,
			BreakMinutes4h:           req.BreakMinutes4h,
			BreakMinutes8h:           req.BreakMinutes8h,
			Seed:                     req.Seed,
		}

		genStart := time.Now()
		result, err := h.generator.Generate(opts)
		metrics.RecordGeneration(err == nil, attemptsOf(result), errorMinutesOf(result), time.Since(genStart))
		if err != nil {
			respondError(w, toAppError(err))
			return
		}

		employeeResult := h.buildEmployeeResult(name, opts, result)

		if req.Persist {
			batchID, appErr := h.persistBatch(r, name, result.Shifts)
			if appErr != nil {
				respondError(w, appErr)
				return
			}
			employeeResult.BatchID = batchID.String()
		}

		results = append(results, employeeResult)
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Success:  true,
		Results:  results,
		Duration: time.Since(start).String(),
	})
}

// buildEmployeeResult 组装单员工响应，附带校验和周报
func (h *WorkRecordHandler) buildEmployeeResult(name string, opts model.GenerationOptions, result *model.GenerationResult) EmployeeResult {
	normalized := opts.Normalize()

	violations := h.checker.Check(result.Shifts, validator.CheckConfig{
		TargetMonth:      normalized.TargetMonth,
		MaxShiftMinutes:  h.engineCfg.MaxShiftMinutes,
		WeeklyCapMinutes: normalized.MaxWeeklyOvertimeMinutes,
	})
	for _, v := range violations {
		metrics.RecordValidationViolation(string(v.Type))
		logger.Warn().
			Str("employee", name).
			Str("type", string(v.Type)).
			Str("date", v.Date).
			Msg("生成结果校验违规")
	}

	shifts := make([]ShiftOutput, len(result.Shifts))
	for i, s := range result.Shifts {
		shifts[i] = ShiftOutput{
			Date:              s.Date,
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			BreakMinutes:      s.BreakMinutes,
			Description:       s.Description,
			RecognizedMinutes: s.RecognizedMinutes(),
		}
	}

	return EmployeeResult{
		EmployeeName:          name,
		Persona:               string(result.Persona),
		PersonaLabel:          result.PersonaLabel,
		TimePreference:        string(result.TimePreference),
		Shifts:                shifts,
		TotalAllocatedMinutes: result.TotalAllocatedMinutes,
		TargetMinutes:         normalized.TotalHours * 60,
		Shortfall:             result.Shortfall,
		Attempts:              result.Attempts,
		ErrorMinutes:          result.ErrorMinutes,
		Violations:            violations,
		WeeklyReport:          stats.BuildWeeklyReport(result.Shifts, normalized.MaxWeeklyOvertimeMinutes),
	}
}

// persistBatch 将一次生成结果作为批次落库
func (h *WorkRecordHandler) persistBatch(r *http.Request, name string, shifts []model.GeneratedShift) (uuid.UUID, *errors.AppError) {
	if h.repo == nil {
		return uuid.Nil, errors.New(errors.CodeDatabaseError, "持久化未启用")
	}

	batchID := uuid.New()
	records := make([]*model.WorkRecord, len(shifts))
	for i, s := range shifts {
		records[i] = model.NewWorkRecord(batchID, name, s)
	}

	if err := h.repo.CreateBatch(r.Context(), records); err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CodeDatabaseError, "保存工时记录失败")
	}

	logger.Info().
		Str("employee", name).
		Str("batch_id", batchID.String()).
		Int("records", len(records)).
		Msg("工时记录批次已保存")

	return batchID, nil
}

// CorrectRequest 工时修正请求
type CorrectRequest struct {
	Shifts                   []ShiftInput `json:"shifts"`
	TargetMinutes            int          `json:"target_minutes"`
	MaxWeeklyOvertimeMinutes int          `json:"max_weekly_overtime_minutes,omitempty"`
}

// ShiftInput 班次输入
type ShiftInput struct {
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	Description  string `json:"description,omitempty"`
}

// CorrectResponse 工时修正响应
type CorrectResponse struct {
	Success      bool          `json:"success"`
	Shifts       []ShiftOutput `json:"shifts"`
	TotalMinutes int           `json:"total_minutes"`
	ErrorMinutes int           `json:"error_minutes"`
}

// Correct 将一组班次的认定工时逐分钟修正到目标值
func (h *WorkRecordHandler) Correct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req CorrectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	ve := &errors.ValidationErrors{}
	if len(req.Shifts) == 0 {
		ve.Add("shifts", "班次列表不能为空")
	}
	if req.TargetMinutes <= 0 {
		ve.Add("target_minutes", "目标分钟数必须为正")
	}
	if ve.HasErrors() {
		respondError(w, ve.ToAppError())
		return
	}

	shifts := make([]model.GeneratedShift, len(req.Shifts))
	for i, s := range req.Shifts {
		shifts[i] = model.GeneratedShift{
			Date:         s.Date,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			BreakMinutes: s.BreakMinutes,
			Description:  s.Description,
		}
	}

	cfg := engine.CorrectionConfig{
		MaxShiftMinutes:  h.engineCfg.MaxShiftMinutes,
		MinShiftMinutes:  h.engineCfg.MinShiftMinutes,
		WeeklyCapMinutes: req.MaxWeeklyOvertimeMinutes,
	}
	corrected := engine.Correct(shifts, req.TargetMinutes, cfg)

	outputs := make([]ShiftOutput, len(corrected))
	total := 0
	for i, s := range corrected {
		rec := s.RecognizedMinutes()
		total += rec
		outputs[i] = ShiftOutput{
			Date:              s.Date,
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			BreakMinutes:      s.BreakMinutes,
			Description:       s.Description,
			RecognizedMinutes: rec,
		}
	}

	respondJSON(w, http.StatusOK, CorrectResponse{
		Success:      true,
		Shifts:       outputs,
		TotalMinutes: total,
		ErrorMinutes: absInt(total - req.TargetMinutes),
	})
}

// SummaryResponse 月度周报响应
type SummaryResponse struct {
	Success      bool                `json:"success"`
	EmployeeName string              `json:"employee_name"`
	Month        string              `json:"month"`
	Report       *stats.WeeklyReport `json:"report"`
}

// Summary 查询员工月度工时周报
func (h *WorkRecordHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}
	employeeName := r.URL.Query().Get("employee_name")
	month := r.URL.Query().Get("month")

	ve := &errors.ValidationErrors{}
	if employeeName == "" {
		ve.Add("employee_name", "员工姓名不能为空")
	}
	if month == "" {
		ve.Add("month", "目标月不能为空")
	} else if _, err := time.Parse(model.MonthLayout, month); err != nil {
		ve.Add("month", "目标月格式必须是YYYY-MM")
	}
	if ve.HasErrors() {
		respondError(w, ve.ToAppError())
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeDatabaseError, "持久化未启用"))
		return
	}

	records, err := h.repo.ListByEmployeeMonth(r.Context(), employeeName, month)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询工时记录失败"))
		return
	}

	shifts := make([]model.GeneratedShift, len(records))
	for i, rec := range records {
		shifts[i] = model.GeneratedShift{
			Date:         rec.Date,
			StartTime:    rec.StartTime,
			EndTime:      rec.EndTime,
			BreakMinutes: rec.BreakMinutes,
			Description:  rec.Description,
		}
	}

	respondJSON(w, http.StatusOK, SummaryResponse{
		Success:      true,
		EmployeeName: employeeName,
		Month:        month,
		Report:       stats.BuildWeeklyReport(shifts, model.DefaultWeeklyCapMinutes),
	})
}

// validateGenerateRequest 验证生成请求
func validateGenerateRequest(req *GenerateRequest) *errors.AppError {
	ve := &errors.ValidationErrors{}

	if req.TargetMonth == "" {
		ve.Add("target_month", "目标月不能为空")
	} else if _, err := time.Parse(model.MonthLayout, req.TargetMonth); err != nil {
		ve.Add("target_month", "目标月格式必须是YYYY-MM")
	}
	if req.TotalHours <= 0 {
		ve.Add("total_hours", "目标小时数必须为正")
	}
	if req.EmployeeName == "" && len(req.Employees) == 0 {
		ve.Add("employee_name", "必须提供员工姓名或员工列表")
	}
	for _, name := range req.Employees {
		if name == "" {
			ve.Add("employees", "员工列表不能包含空姓名")
			break
		}
	}
	if req.MaxWeeklyOvertimeMinutes < 0 {
		ve.Add("max_weekly_overtime_minutes", "周上限分钟数不能为负")
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// toAppError 转换为AppError
func toAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Wrap(err, errors.CodeInternal, "工时生成失败")
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}

// attemptsOf 读取尝试次数，生成失败时返回0
func attemptsOf(result *model.GenerationResult) int {
	if result == nil {
		return 0
	}
	return result.Attempts
}

// errorMinutesOf 读取偏差分钟数，生成失败时返回0
func errorMinutesOf(result *model.GenerationResult) int {
	if result == nil {
		return 0
	}
	return result.ErrorMinutes
}

// absInt 取绝对值
func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
