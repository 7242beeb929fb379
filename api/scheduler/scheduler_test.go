package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carepoint/clinic-api/api/scheduler"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/databases/mocks"
	"github.com/carepoint/clinic-api/models"
)

func TestScheduler_SweepStaleAppointments(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02")

	db := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cur := &mocks.CursorHelper{}

	cur.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Appointment)
		(*arg) = []models.Appointment{
			{ID: "stale", Status: models.AppointmentStatusPending, Date: yesterday},
			{ID: "current", Status: models.AppointmentStatusPending, Date: today},
			{ID: "undated", Status: models.AppointmentStatusPending},
		}
	})
	conn.On("Find", mock.Anything, mock.Anything).Return(cur, nil)

	// only the stale appointment gets swept to no-show
	conn.On("UpdateOne", mock.Anything, bson.M{"_id": "stale"}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["status"] == models.AppointmentStatusNoShow
	})).Return(&mongo.UpdateResult{MatchedCount: 1}, nil).Once()

	db.On("Collection", "appointments").Return(conn)

	s := scheduler.NewScheduler(
		databases.NewAppointmentDatabase(db),
		databases.NewPatientDatabase(db),
		databases.NewDoctorDatabase(db),
	)

	s.SweepStaleAppointments()

	conn.AssertExpectations(t)
	conn.AssertNumberOfCalls(t, "UpdateOne", 1)
}

func TestScheduler_StartAndStop(t *testing.T) {
	db := &mocks.DatabaseHelper{}

	s := scheduler.NewScheduler(
		databases.NewAppointmentDatabase(db),
		databases.NewPatientDatabase(db),
		databases.NewDoctorDatabase(db),
	)

	s.Start()
	s.Stop()
}
