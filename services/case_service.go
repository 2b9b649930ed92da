package services

import (
	"case_team_app_go/models"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// DefaultCaseNumberPrefix is used when no prefix is configured
const DefaultCaseNumberPrefix = "CASE"

// GenerateCaseNumber generates the next case number for a year
// Format: {PREFIX}-{YEAR}-{SEQUENCE}
// Example: CASE-2026-00042
func GenerateCaseNumber(db *gorm.DB, prefix string, year int) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultCaseNumberPrefix
	}

	// Find the highest sequence number for this prefix and year
	var maxCase models.LegalCase
	err := db.Where("case_number LIKE ?", fmt.Sprintf("%s-%d-%%", prefix, year)).
		Order("case_number DESC").
		First(&maxCase).Error

	sequence := 1
	if err == nil {
		var parsedSeq int
		_, scanErr := fmt.Sscanf(maxCase.CaseNumber, fmt.Sprintf("%s-%d-%%d", prefix, year), &parsedSeq)
		if scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to query max case number: %w", err)
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, year, sequence), nil
}

// EnsureUniqueCaseNumber generates a unique case number with retry logic
// Retries up to maxRetries times if a collision occurs
func EnsureUniqueCaseNumber(db *gorm.DB, prefix string, year int) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		caseNumber, err := GenerateCaseNumber(db, prefix, year)
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.LegalCase{}).Where("case_number = ?", caseNumber).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check case number uniqueness: %w", err)
		}

		if count == 0 {
			return caseNumber, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique case number after %d retries", maxRetries)
}
