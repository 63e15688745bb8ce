// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teukgeun/teukgeun/pkg/model"
)

// WorkRecordRepository 特勤工时记录仓储
type WorkRecordRepository struct {
	db DB
}

// NewWorkRecordRepository 创建工时记录仓储
func NewWorkRecordRepository(db DB) *WorkRecordRepository {
	return &WorkRecordRepository{db: db}
}

const workRecordColumns = `
	id, batch_id, employee_name, work_date, start_time, end_time,
	break_minutes, description, week_key, created_at, updated_at
`

// Create 创建单条工时记录
func (r *WorkRecordRepository) Create(ctx context.Context, record *model.WorkRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO work_records (
			id, batch_id, employee_name, work_date, start_time, end_time,
			break_minutes, description, week_key, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.BatchID, record.EmployeeName, record.Date,
		record.StartTime, record.EndTime, record.BreakMinutes,
		record.Description, record.WeekKey, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建工时记录失败: %w", err)
	}

	return nil
}

// CreateBatch 批量插入一个生成批次的全部记录
func (r *WorkRecordRepository) CreateBatch(ctx context.Context, records []*model.WorkRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO work_records (
			id, batch_id, employee_name, work_date, start_time, end_time,
			break_minutes, description, week_key, created_at, updated_at
		) VALUES `)

	args := make([]interface{}, 0, len(records)*11)
	for i, record := range records {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		record.CreatedAt = now
		record.UpdatedAt = now

		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 11
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11))
		args = append(args,
			record.ID, record.BatchID, record.EmployeeName, record.Date,
			record.StartTime, record.EndTime, record.BreakMinutes,
			record.Description, record.WeekKey, record.CreatedAt, record.UpdatedAt,
		)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("批量创建工时记录失败: %w", err)
	}

	return nil
}

// ListByBatch 查询指定批次的记录
func (r *WorkRecordRepository) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*model.WorkRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM work_records
		WHERE batch_id = $1 AND deleted_at IS NULL
		ORDER BY work_date ASC
	`, workRecordColumns)

	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("查询批次工时记录失败: %w", err)
	}
	defer rows.Close()

	return scanWorkRecords(rows)
}

// ListByEmployeeMonth 查询员工在目标月的记录
func (r *WorkRecordRepository) ListByEmployeeMonth(ctx context.Context, employeeName, month string) ([]*model.WorkRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM work_records
		WHERE employee_name = $1
		  AND to_char(work_date, 'YYYY-MM') = $2
		  AND deleted_at IS NULL
		ORDER BY work_date ASC
	`, workRecordColumns)

	rows, err := r.db.QueryContext(ctx, query, employeeName, month)
	if err != nil {
		return nil, fmt.Errorf("查询员工月度工时记录失败: %w", err)
	}
	defer rows.Close()

	return scanWorkRecords(rows)
}

// List 按过滤器查询记录
func (r *WorkRecordRepository) List(ctx context.Context, filter ListFilter) ([]*model.WorkRecord, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if filter.EmployeeName != "" {
		conditions = append(conditions, fmt.Sprintf("employee_name = $%d", argIndex))
		args = append(args, filter.EmployeeName)
		argIndex++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("work_date >= $%d", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("work_date <= $%d", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	// 查询总数
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM work_records WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("查询总数失败: %w", err)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "work_date"
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		orderDir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM work_records
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, workRecordColumns, whereClause, orderBy, orderDir, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询工时记录列表失败: %w", err)
	}
	defer rows.Close()

	records, err := scanWorkRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// DeleteByBatch 软删除整个批次
func (r *WorkRecordRepository) DeleteByBatch(ctx context.Context, batchID uuid.UUID) (int, error) {
	query := `UPDATE work_records SET deleted_at = $2 WHERE batch_id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, batchID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("删除批次工时记录失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// scanWorkRecords 扫描多行记录
func scanWorkRecords(rows *sql.Rows) ([]*model.WorkRecord, error) {
	var records []*model.WorkRecord
	for rows.Next() {
		record := &model.WorkRecord{}
		if err := rows.Scan(
			&record.ID, &record.BatchID, &record.EmployeeName, &record.Date,
			&record.StartTime, &record.EndTime, &record.BreakMinutes,
			&record.Description, &record.WeekKey, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描工时记录失败: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历工时记录失败: %w", err)
	}
	return records, nil
}
