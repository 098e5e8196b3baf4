package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/csvprofile/internal/config"
	"github.com/JonMunkholm/csvprofile/internal/logging"
)

// defaultAuditWriteTimeout bounds an audit insert when none is configured.
const defaultAuditWriteTimeout = 5 * time.Second

// Service is the entry point transports use to profile files. It applies
// the path policy and size limit, bounds concurrency, enforces a per-call
// timeout and records each request in the audit log.
type Service struct {
	profiler     *Profiler
	limiter      *ProfileLimiter
	audit        AuditRecorder
	allowedRoot  string
	maxFileSize  int64
	timeout      time.Duration
	auditTimeout time.Duration
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithAuditTimeout bounds each audit insert.
func WithAuditTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.auditTimeout = d
		}
	}
}

// NewService creates a Service from the profile settings. A nil audit
// recorder disables auditing.
func NewService(cfg config.ProfileConfig, audit AuditRecorder, opts ...ServiceOption) (*Service, error) {
	comma, err := ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("profile delimiter: %w", err)
	}

	enc, err := ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("profile encoding: %w", err)
	}

	root := cfg.AllowedRoot
	if root != "" {
		if root, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("resolve allowed root: %w", err)
		}
	}

	if audit == nil {
		audit = NopAuditRecorder{}
	}

	s := &Service{
		profiler:     &Profiler{Comma: comma, Encoding: enc},
		limiter:      NewProfileLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		audit:        audit,
		allowedRoot:  root,
		maxFileSize:  cfg.MaxFileSize,
		timeout:      cfg.Timeout,
		auditTimeout: defaultAuditWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Profile profiles the file at path.
//
// Besides the profiler's typed errors it returns ErrPathRequired,
// ErrPathNotAllowed, ErrFileTooLarge, ErrTooManyProfiles, or a context
// error when the deadline passes or the caller goes away.
func (s *Service) Profile(ctx context.Context, path string) (*FileReport, error) {
	start := time.Now()
	path = strings.TrimSpace(path)
	logger := logging.WithFields(ctx, "path", path)

	report, err := s.profile(ctx, path)

	entry := AuditEntry{
		Path:       path,
		Status:     AuditStatusOK,
		IPAddress:  GetIPAddressFromContext(ctx),
		UserAgent:  GetUserAgentFromContext(ctx),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.ErrorCode = MapError(err).Code
		logger.Warn("profile failed", "error", err, "code", entry.ErrorCode, "duration_ms", entry.DurationMS)
	} else {
		entry.SizeBytes = report.SizeBytes
		entry.NumRows = report.NumRows
		entry.NumColumns = report.NumColumns
		logger.Info("profile completed",
			"rows", report.NumRows,
			"columns", report.NumColumns,
			"size_bytes", report.SizeBytes,
			"duration_ms", entry.DurationMS,
		)
	}
	s.recordAudit(ctx, entry)

	return report, err
}

func (s *Service) profile(ctx context.Context, path string) (*FileReport, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	if err := s.checkAllowed(path); err != nil {
		return nil, err
	}

	if info, err := os.Stat(path); err == nil && !info.IsDir() && s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, info.Size(), s.maxFileSize)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return s.profiler.ProfileContext(ctx, path)
}

// checkAllowed rejects paths that lie outside the allowed root, either as
// written or once symlinks are resolved. A path that does not exist is left
// for the profiler to report as not found.
func (s *Service) checkAllowed(path string) error {
	if s.allowedRoot == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil || !within(s.allowedRoot, abs) {
		return fmt.Errorf("%w: %s", ErrPathNotAllowed, path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil
	}
	root, err := filepath.EvalSymlinks(s.allowedRoot)
	if err != nil {
		root = s.allowedRoot
	}
	if !within(root, resolved) {
		return fmt.Errorf("%w: %s resolves to %s", ErrPathNotAllowed, path, resolved)
	}
	return nil
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// recordAudit writes entry without failing the request. The insert gets its
// own timeout so a cancelled request is still recorded.
func (s *Service) recordAudit(ctx context.Context, entry AuditEntry) {
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)
	defer cancel()

	if err := s.audit.RecordProfile(auditCtx, entry); err != nil {
		logging.FromContext(ctx).Error("failed to record audit entry", "path", entry.Path, "error", err)
	}
}

// RecentProfiles lists the newest audit entries. It returns
// ErrAuditDisabled when no audit database is configured.
func (s *Service) RecentProfiles(ctx context.Context, limit int) ([]AuditEntry, error) {
	return s.audit.RecentProfiles(ctx, limit)
}

// LimiterStatus reports current profiling slot usage.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForProfiles blocks until running profiles finish or ctx is done.
func (s *Service) WaitForProfiles(ctx context.Context) error {
	if err := s.limiter.WaitForDrain(ctx); err != nil {
		return errors.Join(fmt.Errorf("%d profiles still running", s.limiter.Active()), err)
	}
	return nil
}
