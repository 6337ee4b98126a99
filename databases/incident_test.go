package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nyayasetu/legal-aid-api/databases"
	mocksdb "github.com/nyayasetu/legal-aid-api/databases/mocks"
	"github.com/nyayasetu/legal-aid-api/models"
)

func TestIncidentDatabaseGet(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		incident := args.Get(0).(*models.Incident)
		incident.ID = "abc123"
		incident.CaseID = "CASE-2026-0042"
		incident.Status = models.StatusPending
	}).Return(nil)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	got, err := store.Get(context.Background(), "CASE-2026-0042")

	assert.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestIncidentDatabaseGetNotFound(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, databases.ErrNotFound)
}

func TestIncidentDatabaseCreate(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	insertResult := &mocksdb.InsertOneResultHelper{}

	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	created, err := store.Create(context.Background(), models.Incident{
		CaseID:      "CASE-2026-0042",
		Description: "Wallet stolen in the metro",
		Status:      models.StatusPending,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestIncidentDatabaseCreateInsertError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	_, err := store.Create(context.Background(), models.Incident{Description: "x"})

	assert.Error(t, err)
}

func TestIncidentDatabaseList(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	cursor := &mocksdb.CursorHelper{}

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		incidents := args.Get(0).(*[]models.Incident)
		*incidents = []models.Incident{
			{ID: "a", Status: models.StatusPending},
			{ID: "b", Status: models.StatusPending},
		}
	}).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	incidents, err := store.List(context.Background(), models.IncidentFilter{Status: models.StatusPending})

	assert.NoError(t, err)
	assert.Len(t, incidents, 2)
}

func TestIncidentDatabaseListEmpty(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	cursor := &mocksdb.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	incidents, err := store.List(context.Background(), models.IncidentFilter{})

	assert.NoError(t, err)
	assert.NotNil(t, incidents)
	assert.Empty(t, incidents)
}

func TestIncidentDatabaseUpdate(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		incident := args.Get(0).(*models.Incident)
		incident.ID = "abc123"
		incident.Status = models.StatusAccepted
	}).Return(nil)
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	status := models.StatusAccepted
	updated, err := store.Update(context.Background(), "abc123", models.IncidentUpdate{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
}

func TestIncidentDatabaseUpdateNotFound(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "incidents").Return(conn)

	store := databases.NewIncidentDatabase(db)
	status := models.StatusAccepted
	_, err := store.Update(context.Background(), "missing", models.IncidentUpdate{Status: &status})

	assert.ErrorIs(t, err, databases.ErrNotFound)
}
