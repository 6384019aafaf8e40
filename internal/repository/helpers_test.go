package repository

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "rating DESC, created_at DESC", orderBy("-rating,-createdAt", testimonialSorts, "x"))
	assert.Equal(t, "title ASC", orderBy("title, password", courseSorts, "x"))
	assert.Equal(t, "fallback", orderBy("", courseSorts, "fallback"))
	assert.Equal(t, "fallback", orderBy("id;DROP TABLE", courseSorts, "fallback"))
}

func TestStableOrderEndsOnID(t *testing.T) {
	assert.Equal(t, "featured ASC, id ASC", stableOrder(orderBy("featured", videoSorts, "created_at DESC")))
	assert.Equal(t, "created_at DESC, id ASC", stableOrder(orderBy("", videoSorts, "created_at DESC")))
	assert.Equal(t, "id ASC", stableOrder(""))
}

func TestPageClause(t *testing.T) {
	assert.Equal(t, "", pageClause(models.ListOptions{}))
	assert.Equal(t, " LIMIT 10 OFFSET 20", pageClause(models.ListOptions{Page: 3, Limit: 10}))
}
