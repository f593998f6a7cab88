package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

func TestInsertResult(t *testing.T) {
	ok := &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}
	assert.NoError(t, insertResult(ok, nil, "contact submission"))

	assert.ErrorIs(t, insertResult(nil, mongo.ErrUnacknowledgedWrite, "x"), ErrNotAcknowledged)
	assert.ErrorIs(t, insertResult(&mongo.InsertOneResult{}, nil, "x"), ErrNotAcknowledged)

	boom := errors.New("server selection timeout")
	err := insertResult(nil, boom, "status check")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert status check")
}

func contactDoc(id string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "id", Value: id},
		{Key: "name", Value: "Sarah Johnson"},
		{Key: "email", Value: "sarah.johnson@techcorp.com"},
		{Key: "message", Value: "Hi! I'm interested in a project."},
		{Key: "submittedAt", Value: primitive.NewDateTimeFromTime(at)},
		{Key: "status", Value: "new"},
		{Key: "ipAddress", Value: nil},
		{Key: "userAgent", Value: nil},
	}
}

func TestMongoContactRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	newer := time.Date(2026, 10, 19, 11, 48, 0, 120*int(time.Millisecond), time.UTC)
	older := newer.Add(-time.Hour)

	mt.Run("list recent sorts and caps on the server", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ContactCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			contactDoc("c-new", newer),
			contactDoc("c-old", older),
		))

		got, err := NewMongoContactRepo(mt.DB).ListRecent(ctx, 500)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "c-new", got[0].ID)
		assert.Equal(mt, newer, got[0].SubmittedAt.UTC())
		assert.Equal(mt, model.ContactStatusNew, got[1].Status)
		assert.Nil(mt, got[1].IPAddress)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, ContactCollection, cmd.Lookup("find").StringValue())
		assert.Equal(mt, int64(ContactListLimit), cmd.Lookup("limit").AsInt64())
		sortDoc := cmd.Lookup("sort").Document()
		assert.Equal(mt, int64(-1), sortDoc.Lookup("submittedAt").AsInt64())
	})

	mt.Run("insert acknowledged", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		c := model.NewContactSubmission("A", "a@b.co", "1234567890")
		require.NoError(mt, NewMongoContactRepo(mt.DB).Insert(ctx, &c))

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "insert", ev.CommandName)
		assert.Equal(mt, ContactCollection, ev.Command.Lookup("insert").StringValue())
	})

	mt.Run("find error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))
		_, err := NewMongoContactRepo(mt.DB).ListRecent(ctx, 10)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find contact submissions")
	})
}

func TestMongoStatusRepo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("natural order with status cap", func(mt *mtest.T) {
		at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + "." + StatusCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "id", Value: "s1"}, {Key: "client_name", Value: "web"}, {Key: "timestamp", Value: primitive.NewDateTimeFromTime(at)}},
		))

		got, err := NewMongoStatusRepo(mt.DB).List(context.Background(), 0)
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, "web", got[0].ClientName)
		assert.Equal(mt, at, got[0].Timestamp.UTC())

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, int64(StatusListLimit), cmd.Lookup("limit").AsInt64())
		_, err = cmd.LookupErr("sort")
		assert.Error(mt, err)
	})
}
