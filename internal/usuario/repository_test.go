package usuario

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func novoBancoMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db, mock
}

func TestBuscarPorEmail(t *testing.T) {
	db, mock := novoBancoMock(t)
	repo := NewRepository()

	linhas := sqlmock.NewRows([]string{"id", "nome", "email", "papel", "status", "nivel"}).
		AddRow(7, "Ana", "ana@vendasys.com.br", PapelComercial, StatusAprovado, NivelSenior)
	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email = \$1`).
		WithArgs("ana@vendasys.com.br", 1).
		WillReturnRows(linhas)

	u, err := repo.BuscarPorEmail(db, "ana@vendasys.com.br")
	require.NoError(t, err)
	require.Equal(t, uint(7), u.ID)
	require.Equal(t, NivelSenior, u.Nivel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAtualizarNivelPersisteSoONivel(t *testing.T) {
	db, mock := novoBancoMock(t)
	repo := NewRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "usuarios" SET "nivel"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(NivelLiderEquipe, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.AtualizarNivel(db, 7, NivelLiderEquipe))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContarLiderados(t *testing.T) {
	db, mock := novoBancoMock(t)
	repo := NewRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "usuarios" WHERE lider_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.ContarLiderados(db, 7)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
