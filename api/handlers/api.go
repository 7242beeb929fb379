package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/carepoint/clinic-api/api"
	"github.com/carepoint/clinic-api/api/scheduler"
	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Live     *Hub
	dbHelper databases.DatabaseHelper
	jobs     *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	if a.Live == nil {
		a.Live = NewHub()
	}

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	p := Patient{DB: databases.NewPatientDatabase(a.dbHelper)}
	d := Doctor{DB: databases.NewDoctorDatabase(a.dbHelper)}
	appt := Appointment{
		DB:   databases.NewAppointmentDatabase(a.dbHelper),
		PDB:  databases.NewPatientDatabase(a.dbHelper),
		DDB:  databases.NewDoctorDatabase(a.dbHelper),
		Live: a.Live,
	}
	wp := WellnessPackage{DB: databases.NewWellnessPackageDatabase(a.dbHelper)}
	b := Billing{DB: databases.NewBillingDatabase(a.dbHelper), BaseURL: a.Config.BaseURL}
	br := Branch{DB: databases.NewBranchDatabase(a.dbHelper)}
	admin := Admin{
		UDB: databases.NewUserDatabase(a.dbHelper),
		PDB: databases.NewPatientDatabase(a.dbHelper),
		ADB: databases.NewAppointmentDatabase(a.dbHelper),
		BDB: databases.NewBillingDatabase(a.dbHelper),
	}
	uploadHandler := UploadHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/live", a.Live.LiveHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/check-user", http.HandlerFunc(u.UserCheckEmailHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UpdateUserByIDHandler))).Methods("PUT")

	apiCreate.Handle("/patients", api.Middleware(http.HandlerFunc(p.PatientHandler))).Methods("GET")
	apiCreate.Handle("/patients/stats", api.Middleware(http.HandlerFunc(p.PatientStatsHandler))).Methods("GET")
	apiCreate.Handle("/patient", api.Middleware(http.HandlerFunc(p.CreatePatientHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(p.PatientByIDHandler))).Methods("GET")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(p.UpdatePatientHandler))).Methods("PUT")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(p.DeletePatientHandler))).Methods("DELETE")

	apiCreate.Handle("/doctors", api.Middleware(http.HandlerFunc(d.DoctorHandler))).Methods("GET")
	apiCreate.Handle("/doctor", api.Middleware(http.HandlerFunc(d.CreateDoctorHandler))).Methods("POST")
	apiCreate.Handle("/doctor/{doctor_id}", api.Middleware(http.HandlerFunc(d.DoctorByIDHandler))).Methods("GET")
	apiCreate.Handle("/doctor/{doctor_id}", api.Middleware(http.HandlerFunc(d.UpdateDoctorHandler))).Methods("PUT")

	apiCreate.Handle("/appointments", api.Middleware(http.HandlerFunc(appt.AppointmentHandler))).Methods("GET")
	apiCreate.Handle("/appointments/stats", api.Middleware(http.HandlerFunc(appt.AppointmentStatsHandler))).Methods("GET")
	apiCreate.Handle("/appointments/availability", api.Middleware(http.HandlerFunc(appt.AvailabilityHandler))).Methods("GET")
	apiCreate.Handle("/appointments/doctor/{doctor_id}", api.Middleware(http.HandlerFunc(appt.AppointmentsByDoctorIDHandler))).Methods("GET")
	apiCreate.Handle("/appointment", api.Middleware(http.HandlerFunc(appt.CreateAppointmentHandler))).Methods("POST")
	apiCreate.Handle("/appointment/{appointment_id}", api.Middleware(http.HandlerFunc(appt.AppointmentByIDHandler))).Methods("GET")
	apiCreate.Handle("/appointment/{appointment_id}", api.Middleware(http.HandlerFunc(appt.UpdateAppointmentHandler))).Methods("PUT")
	apiCreate.Handle("/appointment/{appointment_id}", api.Middleware(http.HandlerFunc(appt.DeleteAppointmentHandler))).Methods("DELETE")
	apiCreate.Handle("/appointment/{appointment_id}/status", api.Middleware(http.HandlerFunc(appt.UpdateAppointmentStatusHandler))).Methods("PUT")

	apiCreate.Handle("/wellness-packages", api.Middleware(http.HandlerFunc(wp.WellnessPackageHandler))).Methods("GET")
	apiCreate.Handle("/wellness-packages/stats", api.Middleware(http.HandlerFunc(wp.WellnessPackageStatsHandler))).Methods("GET")
	apiCreate.Handle("/wellness-package", api.Middleware(http.HandlerFunc(wp.CreateWellnessPackageHandler))).Methods("POST")
	apiCreate.Handle("/wellness-package/{package_id}", api.Middleware(http.HandlerFunc(wp.WellnessPackageByIDHandler))).Methods("GET")
	apiCreate.Handle("/wellness-package/{package_id}", api.Middleware(http.HandlerFunc(wp.UpdateWellnessPackageHandler))).Methods("PUT")
	apiCreate.Handle("/wellness-package/{package_id}", api.Middleware(http.HandlerFunc(wp.DeleteWellnessPackageHandler))).Methods("DELETE")

	apiCreate.Handle("/billing", api.Middleware(http.HandlerFunc(b.CreateBillingHandler))).Methods("POST")
	apiCreate.Handle("/billing/{billing_id}", api.Middleware(http.HandlerFunc(b.BillingByIDHandler))).Methods("GET")
	apiCreate.Handle("/billing/{billing_id}/create-checkout-session", api.Middleware(http.HandlerFunc(b.CreateCheckoutSessionHandler))).Methods("POST")
	apiCreate.Handle("/billing/{billing_id}/verify-payment", api.Middleware(http.HandlerFunc(b.VerifyPaymentHandler))).Methods("POST")
	apiCreate.Handle("/billings/patient/{patient_id}", api.Middleware(http.HandlerFunc(b.BillingByPatientIDHandler))).Methods("GET")

	apiCreate.Handle("/branches", api.Middleware(http.HandlerFunc(br.BranchHandler))).Methods("GET")
	apiCreate.Handle("/branch/{branch_id}", api.Middleware(http.HandlerFunc(br.BranchByIDHandler))).Methods("GET")

	apiCreate.Handle("/admin/login", http.HandlerFunc(admin.AdminLoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/overview", AdminMiddleware(http.HandlerFunc(admin.AdminOverviewHandler))).Methods("GET")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(uploadHandler.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/success", http.HandlerFunc(b.handleSuccessRedirect)).Methods("GET")
	apiCreate.Handle("/cancel", http.HandlerFunc(b.handleCancelRedirect)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("clinic-api has connected to the database")

	// initialize stripe
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		return fmt.Errorf("stripe secret key is not set")
	}
	stripe.Key = stripeKey

	// initialize api router
	a.initializeRoutes()

	a.jobs = scheduler.NewScheduler(
		databases.NewAppointmentDatabase(a.dbHelper),
		databases.NewPatientDatabase(a.dbHelper),
		databases.NewDoctorDatabase(a.dbHelper),
	)
	a.jobs.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
