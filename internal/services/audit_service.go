// internal/services/audit_service.go
package services

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shamaim/admin-dashboard/internal/models"
	"github.com/shamaim/admin-dashboard/internal/productform"
)

// AuditService writes the admin audit trail. Without a database it only logs.
type AuditService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewAuditService(db *gorm.DB, logger *logrus.Logger) *AuditService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuditService{db: db, log: logger.WithField("component", "audit")}
}

// Record stores one audit entry. Failures are logged and never returned.
func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) {
	fields := logrus.Fields{
		"action":        entry.Action,
		"resource_type": entry.ResourceType,
		"resource_id":   entry.ResourceID,
		"outcome":       entry.Outcome,
	}
	if entry.SessionID != nil {
		fields["session_id"] = entry.SessionID.String()
	}

	if s.db == nil {
		s.log.WithFields(fields).Info(entry.Message)
		return
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		s.log.WithFields(fields).WithError(err).Error("Failed to write audit log")
	}
}

// RecordSubmission stores the outcome of a product form submission.
func (s *AuditService) RecordSubmission(ctx context.Context, sub productform.SubmissionAudit) {
	entry := &models.AuditLog{
		SessionID:      parseSessionID(sub.SessionID),
		Action:         "product." + sub.Operation.String(),
		ResourceType:   "product",
		Outcome:        sub.Outcome,
		Message:        sub.Message,
		UploadedAssets: pq.StringArray(sub.Uploaded),
		NewValues:      models.JSONB{"stage": string(sub.Stage)},
	}
	if sub.ProductID > 0 {
		entry.ResourceID = strconv.FormatInt(sub.ProductID, 10)
	}
	s.Record(ctx, entry)
}

// Recent returns the newest audit entries, optionally for one session.
func (s *AuditService) Recent(ctx context.Context, sessionID string, limit int) ([]models.AuditLog, error) {
	if s.db == nil {
		return []models.AuditLog{}, nil
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if id := parseSessionID(sessionID); id != nil {
		query = query.Where("session_id = ?", *id)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func parseSessionID(raw string) *uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
