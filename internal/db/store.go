package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicpulse/backend/internal/models"
)

// ErrIssueNotFound is returned for lookups and updates against an id or share
// token that does not exist.
var ErrIssueNotFound = errors.New("issue not found")

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// InsertIssue persists an enriched issue and its seed timeline in one
// transaction, assigning the record id.
func (s *Store) InsertIssue(ctx context.Context, issue models.Issue) (string, error) {
	id := "iss_" + uuid.NewString()
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO issues (id, title, description, category, severity, image_ref, latitude, longitude, address,
				submitted_at, user_id, view_count, share_token, status, ward_id, department, contractor_id, deadline, ai_confidence)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		`, id, issue.Title, issue.Description, issue.Category, issue.Severity, issue.ImageRef,
			issue.Latitude, issue.Longitude, issue.Address, issue.SubmittedAt, issue.UserID,
			issue.ViewCount, issue.ShareToken, nullIfEmpty(string(issue.Status)), nullIfEmpty(issue.WardID),
			nullIfEmpty(issue.Department), nullIfEmpty(issue.ContractorID), issue.Deadline, issue.AIConfidence)
		if err != nil {
			return err
		}
		for _, e := range issue.Timeline {
			if err := insertTimelineEvent(ctx, tx, id, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func insertTimelineEvent(ctx context.Context, tx pgx.Tx, issueID string, e models.TimelineEvent) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO timeline_events (id, issue_id, status, occurred_at, description, updated_by)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.ID, issueID, e.Status, e.Timestamp, e.Description, e.UpdatedBy)
	return err
}

const issueColumns = `id, title, description, category, severity, image_ref, latitude, longitude, address,
	submitted_at, user_id, view_count, share_token, status, ward_id, department, contractor_id, deadline, ai_confidence`

func scanIssue(row pgx.Row) (models.Issue, error) {
	var (
		i            models.Issue
		status       *string
		wardID       *string
		department   *string
		contractorID *string
	)
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Category, &i.Severity, &i.ImageRef,
		&i.Latitude, &i.Longitude, &i.Address, &i.SubmittedAt, &i.UserID, &i.ViewCount,
		&i.ShareToken, &status, &wardID, &department, &contractorID, &i.Deadline, &i.AIConfidence)
	if err != nil {
		return models.Issue{}, err
	}
	if status != nil {
		i.Status = models.Status(*status)
	}
	if wardID != nil {
		i.WardID = *wardID
	}
	if department != nil {
		i.Department = *department
	}
	if contractorID != nil {
		i.ContractorID = *contractorID
	}
	return i, nil
}

func (s *Store) GetIssue(ctx context.Context, id string) (models.Issue, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Issue{}, ErrIssueNotFound
		}
		return models.Issue{}, err
	}
	issue.Timeline, err = s.loadTimeline(ctx, issue.ID)
	return issue, err
}

func (s *Store) GetIssueByShareToken(ctx context.Context, token string) (models.Issue, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE share_token = $1`, token)
	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Issue{}, ErrIssueNotFound
		}
		return models.Issue{}, err
	}
	issue.Timeline, err = s.loadTimeline(ctx, issue.ID)
	return issue, err
}

func (s *Store) loadTimeline(ctx context.Context, issueID string) ([]models.TimelineEvent, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, status, occurred_at, description, updated_by
		FROM timeline_events WHERE issue_id = $1 ORDER BY seq ASC
	`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimelineEvent
	for rows.Next() {
		var e models.TimelineEvent
		if err := rows.Scan(&e.ID, &e.Status, &e.Timestamp, &e.Description, &e.UpdatedBy); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type IssueFilter struct {
	Category models.Category
	Severity models.Severity
	Status   models.Status
	WardID   string
	Limit    int
}

// ListIssues returns issues newest first. The timeline is left unloaded; list
// views only need the summary fields.
func (s *Store) ListIssues(ctx context.Context, f IssueFilter) ([]models.Issue, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `SELECT ` + issueColumns + ` FROM issues`
	var args []any
	var wheres []string
	if f.Category != "" {
		args = append(args, f.Category)
		wheres = append(wheres, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Severity != "" {
		args = append(args, f.Severity)
		wheres = append(wheres, fmt.Sprintf("severity = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.WardID != "" {
		args = append(args, f.WardID)
		wheres = append(wheres, fmt.Sprintf("ward_id = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY submitted_at DESC LIMIT $" + fmt.Sprint(len(args)+1)
	args = append(args, limit)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, issue)
	}
	return out, rows.Err()
}

// UpdateIssueStatus persists a lifecycle transition: the new status plus the
// single appended timeline event, atomically.
func (s *Store) UpdateIssueStatus(ctx context.Context, issueID string, status models.Status, event models.TimelineEvent) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE issues SET status = $1 WHERE id = $2`, status, issueID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrIssueNotFound
		}
		return insertTimelineEvent(ctx, tx, issueID, event)
	})
}

func (s *Store) IncrementViewCount(ctx context.Context, issueID string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE issues SET view_count = view_count + 1 WHERE id = $1`, issueID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIssueNotFound
	}
	return nil
}

func (s *Store) DeleteIssue(ctx context.Context, issueID string) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM timeline_events WHERE issue_id = $1`, issueID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM issues WHERE id = $1`, issueID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrIssueNotFound
		}
		return nil
	})
}

func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	stats := models.Stats{
		IssuesByCategory: map[models.Category]int{},
		IssuesBySeverity: map[models.Severity]int{},
	}

	row := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE severity = 'critical'),
			COUNT(*) FILTER (WHERE status = 'resolved'),
			COUNT(DISTINCT user_id) FILTER (WHERE user_id <> '')
		FROM issues
	`)
	if err := row.Scan(&stats.TotalIssues, &stats.CriticalIssues, &stats.ResolvedIssues, &stats.ActiveUsers); err != nil {
		return models.Stats{}, err
	}

	rows, err := s.Pool.Query(ctx, `SELECT category, COUNT(*) FROM issues GROUP BY category`)
	if err != nil {
		return models.Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var cat models.Category
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return models.Stats{}, err
		}
		stats.IssuesByCategory[cat] = n
	}
	if err := rows.Err(); err != nil {
		return models.Stats{}, err
	}

	sevRows, err := s.Pool.Query(ctx, `SELECT severity, COUNT(*) FROM issues GROUP BY severity`)
	if err != nil {
		return models.Stats{}, err
	}
	defer sevRows.Close()
	for sevRows.Next() {
		var sev models.Severity
		var n int
		if err := sevRows.Scan(&sev, &n); err != nil {
			return models.Stats{}, err
		}
		stats.IssuesBySeverity[sev] = n
	}
	return stats, sevRows.Err()
}

// ListAllForRankings loads the fields the ranking aggregation needs, capped to
// keep the dashboard query bounded.
func (s *Store) ListAllForRankings(ctx context.Context, limit int) ([]models.Issue, error) {
	if limit <= 0 {
		limit = 5000
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, status, ward_id, contractor_id, deadline
		FROM issues WHERE ward_id IS NOT NULL
		ORDER BY submitted_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Issue
	for rows.Next() {
		var (
			i      models.Issue
			status *string
			ward   *string
			cont   *string
		)
		if err := rows.Scan(&i.ID, &status, &ward, &cont, &i.Deadline); err != nil {
			return nil, err
		}
		if status != nil {
			i.Status = models.Status(*status)
		}
		if ward != nil {
			i.WardID = *ward
		}
		if cont != nil {
			i.ContractorID = *cont
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
