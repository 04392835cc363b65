package services

import (
	"context"

	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/pkg/logger"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, userID uint, action, entity string, entityID uint, details, ip, userAgent string) error {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// Record is Log for callers that must not fail because auditing failed
func (s *AuditService) Record(ctx context.Context, userID uint, action, entity string, entityID uint, details, ip, userAgent string) {
	if err := s.Log(ctx, userID, action, entity, entityID, details, ip, userAgent); err != nil {
		logger.Warn("audit log failed", "action", action, "entity", entity, "entity_id", entityID, "error", err)
	}
}

// List returns the most recent audit entries, optionally for one entity
func (s *AuditService) List(ctx context.Context, entity string, entityID uint, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var logs []models.AuditLog
	db := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if entity != "" {
		db = db.Where("entity = ?", entity)
		if entityID > 0 {
			db = db.Where("entity_id = ?", entityID)
		}
	}
	err := db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
