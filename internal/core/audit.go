package core

// audit.go records every profile request in Postgres when a database is
// configured. The report itself is never stored: an entry keeps only who
// asked for which path, the outcome and the headline counts.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrAuditDisabled is returned by the no-op recorder when audit entries are
// requested but no database is configured.
var ErrAuditDisabled = errors.New("audit log disabled")

// DefaultAuditLimit is the number of entries returned when no limit is given.
const DefaultAuditLimit = 50

// MaxAuditLimit caps the number of entries returned by one query.
const MaxAuditLimit = 500

// AuditStatus is the outcome of a profile request.
type AuditStatus string

const (
	AuditStatusOK    AuditStatus = "ok"
	AuditStatusError AuditStatus = "error"
)

// AuditEntry is one recorded profile request.
type AuditEntry struct {
	ID         string      `json:"id" yaml:"id"`
	Path       string      `json:"path" yaml:"path"`
	Status     AuditStatus `json:"status" yaml:"status"`
	ErrorCode  string      `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	IPAddress  string      `json:"ip_address,omitempty" yaml:"ip_address,omitempty"`
	UserAgent  string      `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	SizeBytes  int64       `json:"size_bytes" yaml:"size_bytes"`
	NumRows    int         `json:"num_rows" yaml:"num_rows"`
	NumColumns int         `json:"num_columns" yaml:"num_columns"`
	DurationMS int64       `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt  time.Time   `json:"created_at" yaml:"created_at"`
}

// AuditRecorder stores and lists profile request entries.
type AuditRecorder interface {
	RecordProfile(ctx context.Context, entry AuditEntry) error
	RecentProfiles(ctx context.Context, limit int) ([]AuditEntry, error)
}

// NopAuditRecorder drops entries. It is used when no database is configured.
type NopAuditRecorder struct{}

func (NopAuditRecorder) RecordProfile(context.Context, AuditEntry) error { return nil }

func (NopAuditRecorder) RecentProfiles(context.Context, int) ([]AuditEntry, error) {
	return nil, ErrAuditDisabled
}

// pgExecQuerier is the subset of *pgxpool.Pool the audit store uses.
type pgExecQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgAuditStore keeps audit entries in the profile_audit_log table.
type PgAuditStore struct {
	db pgExecQuerier
}

// NewPgAuditStore returns a store backed by db, usually a *pgxpool.Pool.
func NewPgAuditStore(db pgExecQuerier) *PgAuditStore {
	return &PgAuditStore{db: db}
}

const auditSchemaSQL = `
CREATE TABLE IF NOT EXISTS profile_audit_log (
	id          UUID PRIMARY KEY,
	path        TEXT NOT NULL,
	status      TEXT NOT NULL,
	error_code  TEXT,
	ip_address  TEXT,
	user_agent  TEXT,
	size_bytes  BIGINT NOT NULL DEFAULT 0,
	num_rows    INTEGER NOT NULL DEFAULT 0,
	num_columns INTEGER NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS profile_audit_log_created_at_idx
	ON profile_audit_log (created_at DESC);
`

// EnsureSchema creates the audit table and index if they do not exist.
func (s *PgAuditStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, auditSchemaSQL); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// RecordProfile inserts entry. A missing ID or timestamp is filled in.
func (s *PgAuditStore) RecordProfile(ctx context.Context, entry AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO profile_audit_log
			(id, path, status, error_code, ip_address, user_agent,
			 size_bytes, num_rows, num_columns, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		toPgUUID(entry.ID),
		entry.Path,
		string(entry.Status),
		toPgText(entry.ErrorCode),
		toPgText(entry.IPAddress),
		toPgText(entry.UserAgent),
		entry.SizeBytes,
		int32(entry.NumRows),
		int32(entry.NumColumns),
		entry.DurationMS,
		pgtype.Timestamptz{Time: entry.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// RecentProfiles returns up to limit entries, newest first.
func (s *PgAuditStore) RecentProfiles(ctx context.Context, limit int) ([]AuditEntry, error) {
	limit = clampAuditLimit(limit)

	rows, err := s.db.Query(ctx, `
		SELECT id, path, status, error_code, ip_address, user_agent,
		       size_bytes, num_rows, num_columns, duration_ms, created_at
		FROM profile_audit_log
		ORDER BY created_at DESC
		LIMIT $1`, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]AuditEntry, 0, limit)
	for rows.Next() {
		var (
			id                       pgtype.UUID
			status                   string
			errorCode, ip, userAgent pgtype.Text
			numRows, numColumns      int32
			createdAt                pgtype.Timestamptz
			entry                    AuditEntry
		)
		if err := rows.Scan(&id, &entry.Path, &status, &errorCode, &ip, &userAgent,
			&entry.SizeBytes, &numRows, &numColumns, &entry.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.ID = uuidToString(id)
		entry.Status = AuditStatus(status)
		entry.ErrorCode = errorCode.String
		entry.IPAddress = ip.String
		entry.UserAgent = userAgent.String
		entry.NumRows = int(numRows)
		entry.NumColumns = int(numColumns)
		entry.CreatedAt = createdAt.Time
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	return entries, nil
}

func clampAuditLimit(limit int) int {
	if limit <= 0 {
		return DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		return MaxAuditLimit
	}
	return limit
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func toPgUUID(s string) pgtype.UUID {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

func uuidToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
