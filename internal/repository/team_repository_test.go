package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

func TestTeamRepositoryListNormalizesArrays(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "role", "email", "bio", "image", "qualifications", "areas_of_interest", "type", "is_active", "display_order", "skills", "created_at", "updated_at"}).
		AddRow("m1", "Ravi", "Mentor", "r@example.com", "bio", "/r.png", "{B.Sc,M.Sc}", nil, "team", true, 1, "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + teamColumns + " FROM team_members WHERE type = $1 AND is_active = $2 ORDER BY display_order ASC, id ASC")).
		WithArgs(models.TeamMemberTypeTeam, true).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM team_members WHERE type = $1 AND is_active = $2")).
		WithArgs(models.TeamMemberTypeTeam, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	active := true
	members, total, err := repo.List(context.Background(), models.TeamFilter{Type: models.TeamMemberTypeTeam, IsActive: &active})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"B.Sc", "M.Sc"}, []string(members[0].Qualifications))
	assert.NotNil(t, members[0].AreasOfInterest)
	assert.Empty(t, members[0].AreasOfInterest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamRepository(db)

	mock.ExpectExec("INSERT INTO team_members").WillReturnResult(sqlmock.NewResult(1, 1))

	member := &models.TeamMember{Name: "Ravi", Role: "Mentor", Type: models.TeamMemberTypeTeam, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), member))
	assert.NotNil(t, member.Qualifications)
	assert.NotEmpty(t, member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
