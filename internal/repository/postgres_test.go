package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

func TestPostgresLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, username, password, category, notes, date FROM accounts`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "password", "category", "notes", "date"}).
			AddRow("id-1", "Gmail", "sam", "enc:abc", "Websites", "personal", "01/02/2023").
			AddRow("id-2", "Bank", "sam", "enc:def", "Other", "", "2020"))

	records, err := NewPostgres(db).Load()
	require.NoError(t, err)
	assert.Equal(t, []models.Account{
		{ID: "id-1", Name: "Gmail", Username: "sam", Password: "enc:abc",
			Category: "Websites", Notes: "personal", CreatedDate: "01/02/2023"},
		{ID: "id-2", Name: "Bank", Username: "sam", Password: "enc:def",
			Category: "Other", Notes: "", CreatedDate: "2020"},
	}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM accounts`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs("id-1", "Gmail", "sam", "enc:abc", "Websites", "personal", "01/02/2023").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs("id-2", "Bank", "sam", "enc:def", "Other", "", "2020").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewPostgres(db).Save([]models.Account{
		{ID: "id-1", Name: "Gmail", Username: "sam", Password: "enc:abc",
			Category: "Websites", Notes: "personal", CreatedDate: "01/02/2023"},
		{ID: "id-2", Name: "Bank", Username: "sam", Password: "enc:def",
			Category: "Other", Notes: "", CreatedDate: "2020"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave_InsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM accounts`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs("id-1", "Gmail", "sam", "enc:abc", "Websites", "personal", "2023").
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err = NewPostgres(db).Save([]models.Account{
		{ID: "id-1", Name: "Gmail", Username: "sam", Password: "enc:abc",
			Category: "Websites", Notes: "personal", CreatedDate: "2023"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
