package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

func TestContactRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) AS total FROM contacts GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).AddRow("new", 3).AddRow("responded", 1))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.ContactStatusNew])
	assert.Equal(t, 0, counts[models.ContactStatusRead])
	assert.Equal(t, 1, counts[models.ContactStatusResponded])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepositoryCreateDefaultsStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	mock.ExpectExec("INSERT INTO contacts").WillReturnResult(sqlmock.NewResult(1, 1))

	contact := &models.Contact{Name: "Ana", Email: "ana@example.com", Phone: "123", Message: "hi"}
	require.NoError(t, repo.Create(context.Background(), contact))
	assert.Equal(t, models.ContactStatusNew, contact.Status)
	assert.False(t, contact.Date.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
