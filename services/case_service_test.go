package services

import (
	"case_team_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCaseNumber(t *testing.T) {
	db := setupTestDB(t)

	// 1. First case of the year
	number, err := GenerateCaseNumber(db, "lex", 2026)
	require.NoError(t, err)
	assert.Equal(t, "LEX-2026-00001", number)

	// 2. Create it and test increment
	require.NoError(t, db.Create(&models.LegalCase{CaseNumber: number, Title: "Case 1"}).Error)

	number2, err := GenerateCaseNumber(db, "LEX", 2026)
	require.NoError(t, err)
	assert.Equal(t, "LEX-2026-00002", number2)

	// 3. Sequences restart per year and per prefix
	number3, err := GenerateCaseNumber(db, "LEX", 2027)
	require.NoError(t, err)
	assert.Equal(t, "LEX-2027-00001", number3)

	number4, err := GenerateCaseNumber(db, "", 2026)
	require.NoError(t, err)
	assert.Equal(t, "CASE-2026-00001", number4)
}

func TestEnsureUniqueCaseNumber(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.LegalCase{CaseNumber: "UNI-2026-00009", Title: "Existing"}).Error)

	number, err := EnsureUniqueCaseNumber(db, "UNI", 2026)
	require.NoError(t, err)
	assert.Equal(t, "UNI-2026-00010", number)
}
