package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ReportStatus string

const (
	ReportStatusPending       ReportStatus = "pending"
	ReportStatusApproved      ReportStatus = "approved"
	ReportStatusNeedsRevision ReportStatus = "needs_revision"
)

type Report struct {
	ID             int64        `db:"id"`
	UserID         int64        `db:"user_id"`
	FullName       string       `db:"full_name"`
	PhotoFileID    *string      `db:"photo_file_id"`
	ReportText     *string      `db:"report_text"`
	ReportDate     time.Time    `db:"report_date"`
	Status         ReportStatus `db:"status"`
	RevisionReason *string      `db:"revision_reason"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// ApprovedCount is one row of the weekly rating.
type ApprovedCount struct {
	FullName string `db:"full_name"`
	Count    int    `db:"cnt"`
}

var reportColumns = []string{
	"id", "user_id", "full_name", "photo_file_id", "report_text",
	"report_date", "status", "revision_reason", "created_at", "updated_at",
}

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

func (r *ReportRepository) Create(report *Report) error {
	err := r.db.QueryRow(`
	    INSERT INTO reports (user_id, full_name, photo_file_id, report_text, report_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		report.UserID,
		report.FullName,
		report.PhotoFileID,
		report.ReportText,
		report.ReportDate,
		report.Status,
	).Scan(&report.ID)

	if err != nil {
		return fmt.Errorf("ReportRepository.Create: %w", err)
	}

	return nil
}

// GetByID returns nil without error when the report does not exist.
func (r *ReportRepository) GetByID(reportID int64) (*Report, error) {
	var report Report

	err := r.db.Get(&report, `
	    SELECT * FROM reports
		WHERE id = $1
	`, reportID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("ReportRepository.GetByID: %w", err)
	}

	return &report, nil
}

// GetPendingInRange returns the review queue: pending reports for the period,
// ordered by date then employee name.
func (r *ReportRepository) GetPendingInRange(from, to time.Time) ([]Report, error) {
	query, args, err := psql.Select(reportColumns...).
		From("reports").
		Where(sq.Eq{"status": ReportStatusPending}).
		Where(sq.GtOrEq{"report_date": from}).
		Where(sq.LtOrEq{"report_date": to}).
		OrderBy("report_date ASC", "full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.GetPendingInRange: %w", err)
	}

	var reports []Report
	if err := r.db.Select(&reports, query, args...); err != nil {
		return nil, fmt.Errorf("ReportRepository.GetPendingInRange: %w", err)
	}

	return reports, nil
}

// GetAllInRange returns every report for the period ordered for the digest:
// by employee name, then date.
func (r *ReportRepository) GetAllInRange(from, to time.Time) ([]Report, error) {
	query, args, err := psql.Select(reportColumns...).
		From("reports").
		Where(sq.GtOrEq{"report_date": from}).
		Where(sq.LtOrEq{"report_date": to}).
		OrderBy("full_name ASC", "report_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.GetAllInRange: %w", err)
	}

	var reports []Report
	if err := r.db.Select(&reports, query, args...); err != nil {
		return nil, fmt.Errorf("ReportRepository.GetAllInRange: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) GetByUserInRange(userID int64, from, to time.Time) ([]Report, error) {
	query, args, err := psql.Select(reportColumns...).
		From("reports").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"report_date": from}).
		Where(sq.LtOrEq{"report_date": to}).
		OrderBy("report_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.GetByUserInRange: %w", err)
	}

	var reports []Report
	if err := r.db.Select(&reports, query, args...); err != nil {
		return nil, fmt.Errorf("ReportRepository.GetByUserInRange: %w", err)
	}

	return reports, nil
}

// SetDecision moves a report out of pending. The update is conditioned on the
// row still being pending, so a report already decided elsewhere is left
// untouched; the returned bool reports whether the row was updated.
func (r *ReportRepository) SetDecision(reportID int64, status ReportStatus, reason *string) (bool, error) {
	res, err := r.db.Exec(`
	    UPDATE reports
		SET status = $1, revision_reason = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = 'pending'
	`, status, reason, reportID)

	if err != nil {
		return false, fmt.Errorf("ReportRepository.SetDecision: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ReportRepository.SetDecision: %w", err)
	}

	return n > 0, nil
}

func (r *ReportRepository) CountApprovedInRange(from, to time.Time) ([]ApprovedCount, error) {
	query, args, err := psql.Select("full_name", "COUNT(*) AS cnt").
		From("reports").
		Where(sq.Eq{"status": ReportStatusApproved}).
		Where(sq.GtOrEq{"report_date": from}).
		Where(sq.LtOrEq{"report_date": to}).
		GroupBy("full_name").
		OrderBy("cnt DESC", "full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.CountApprovedInRange: %w", err)
	}

	var counts []ApprovedCount
	if err := r.db.Select(&counts, query, args...); err != nil {
		return nil, fmt.Errorf("ReportRepository.CountApprovedInRange: %w", err)
	}

	return counts, nil
}
