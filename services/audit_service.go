package services

import (
	"case_team_app_go/models"
	"encoding/json"
	"log"
	"sync"

	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	ActorID   string
	IPAddress string
	UserAgent string
}

// AuditEvent describes one committed state change
type AuditEvent struct {
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	ResourceName string
	Description  string
	OldValues    interface{}
	NewValues    interface{}
}

// AuditRecorder persists audit events. Recording never fails the caller:
// the state change it describes has already been committed.
type AuditRecorder interface {
	Record(ctx AuditContext, event AuditEvent)
}

// GormAuditRecorder writes audit logs through gorm. Async recorders write
// from a goroutine to avoid blocking the request.
type GormAuditRecorder struct {
	db    *gorm.DB
	async bool
	wg    sync.WaitGroup
}

// NewAuditRecorder creates a recorder that writes asynchronously
func NewAuditRecorder(db *gorm.DB) *GormAuditRecorder {
	return &GormAuditRecorder{db: db, async: true}
}

// NewSyncAuditRecorder creates a recorder that writes before returning
func NewSyncAuditRecorder(db *gorm.DB) *GormAuditRecorder {
	return &GormAuditRecorder{db: db}
}

// Record stores the event
func (r *GormAuditRecorder) Record(ctx AuditContext, event AuditEvent) {
	auditLog := buildAuditLog(ctx, event)
	if !r.async {
		r.write(auditLog)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.write(auditLog)
	}()
}

// Wait blocks until pending asynchronous writes are done
func (r *GormAuditRecorder) Wait() {
	r.wg.Wait()
}

func (r *GormAuditRecorder) write(auditLog *models.AuditLog) {
	if err := r.db.Create(auditLog).Error; err != nil {
		log.Printf("[AUDIT] Failed to create audit log: %v", err)
	}
}

func buildAuditLog(ctx AuditContext, event AuditEvent) *models.AuditLog {
	return &models.AuditLog{
		ActorID:      ctx.ActorID,
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		ResourceName: event.ResourceName,
		Action:       event.Action,
		Description:  event.Description,
		OldValues:    encodeAuditValues(event.OldValues),
		NewValues:    encodeAuditValues(event.NewValues),
		IPAddress:    ctx.IPAddress,
		UserAgent:    ctx.UserAgent,
	}
}

func encodeAuditValues(v interface{}) string {
	if v == nil {
		return ""
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		log.Printf("[AUDIT] Failed to encode audit values: %v", err)
		return ""
	}
	return string(bytes)
}

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
