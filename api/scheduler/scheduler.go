// Package scheduler runs the clinic's periodic background jobs
package scheduler

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/logging"
	"github.com/carepoint/clinic-api/models"
	templates "github.com/carepoint/clinic-api/templates/html"
)

// Scheduler handles the periodic jobs: next-day appointment reminders and the
// stale-pending sweep
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.SugaredLogger
	ADB    databases.AppointmentDatabase
	PDB    databases.PatientDatabase
	DDB    databases.DoctorDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(adb databases.AppointmentDatabase, pdb databases.PatientDatabase, ddb databases.DoctorDatabase) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logging.New(),
		ADB:    adb,
		PDB:    pdb,
		DDB:    ddb,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("0 8 * * *", s.SendAppointmentReminders)
	if err != nil {
		s.logger.Errorw("failed to register reminder job", "err", err)
	}
	_, err = s.cron.AddFunc("0 * * * *", s.SweepStaleAppointments)
	if err != nil {
		s.logger.Errorw("failed to register sweep job", "err", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SendAppointmentReminders mails every patient with a pending or confirmed
// appointment tomorrow
func (s *Scheduler) SendAppointmentReminders() {
	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")

	appointments, err := s.ADB.Find(context.Background(), bson.M{
		"date":   tomorrow,
		"status": bson.M{"$in": []string{models.AppointmentStatusPending, models.AppointmentStatusConfirmed}},
	})
	if err != nil {
		s.logger.Errorw("failed to fetch appointments for reminders", "err", err)
		return
	}

	sent := 0
	for _, appointment := range appointments {
		patient, err := s.PDB.FindByID(context.Background(), appointment.PatientID)
		if err != nil || patient.Email == "" {
			continue
		}
		doctor, err := s.DDB.FindByIDOrDefault(context.Background(), appointment.DoctorID)
		if err != nil {
			continue
		}

		body := templates.AppointmentReminder(patient.Name, doctor.Name, appointment.Date, appointment.Time, appointment.Token)
		if err := sendReminderEmail(patient.Email, body); err != nil {
			s.logger.Errorw("failed to send reminder email",
				"appointment_id", appointment.ID,
				"err", err,
			)
			continue
		}
		sent++
	}

	s.logger.Infow("appointment reminders sent",
		"date", tomorrow,
		"count", sent,
	)
}

// SweepStaleAppointments marks pending appointments whose date has passed as
// no-show
func (s *Scheduler) SweepStaleAppointments() {
	today := time.Now().UTC().Format("2006-01-02")

	appointments, err := s.ADB.Find(context.Background(), bson.M{
		"status": models.AppointmentStatusPending,
	})
	if err != nil {
		s.logger.Errorw("failed to fetch pending appointments for sweep", "err", err)
		return
	}

	swept := 0
	for _, appointment := range appointments {
		// ISO dates compare correctly as strings
		if appointment.Date == "" || appointment.Date >= today {
			continue
		}
		if err := s.ADB.UpdateStatus(context.Background(), appointment.ID, models.AppointmentStatusNoShow); err != nil {
			s.logger.Errorw("failed to mark appointment as no-show",
				"appointment_id", appointment.ID,
				"err", err,
			)
			continue
		}
		swept++
	}

	if swept > 0 {
		s.logger.Infow("stale pending appointments marked no-show", "count", swept)
	}
}

func sendReminderEmail(to, body string) error {
	from := mail.NewEmail("Clinic Appointments", os.Getenv("REMINDER_FROM_EMAIL"))
	subject := "Your appointment is tomorrow"
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, "", body)

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
