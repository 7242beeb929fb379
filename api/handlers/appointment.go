package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/models"
	"github.com/carepoint/clinic-api/query"
)

// Appointment exported for testing purposes
type Appointment struct {
	DB   databases.AppointmentDatabase
	PDB  databases.PatientDatabase
	DDB  databases.DoctorDatabase
	Live *Hub
}

// appointmentView is an appointment enriched with the display names the
// portal list rows need
type appointmentView struct {
	models.Appointment
	PatientName          string `json:"patientName"`
	DoctorName           string `json:"doctorName"`
	DoctorSpecialization string `json:"doctorSpecialization"`
}

// AppointmentHandler returns the filtered, sorted, paginated appointment list
func (a Appointment) AppointmentHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// doctor/patient scoping happens at the store, everything else in memory
	filter := bson.M{}
	if doctorID := q.Get("doctor_id"); doctorID != "" {
		filter["doctorId"] = doctorID
	}
	if patientID := q.Get("patient_id"); patientID != "" {
		filter["patientId"] = patientID
	}

	dbResp, err := a.DB.Find(context.TODO(), filter)
	if err != nil {
		config.ErrorStatus("failed to get appointments", http.StatusInternalServerError, w, err)
		return
	}

	appointments := query.Search(dbResp, q.Get("search"),
		func(ap models.Appointment) string { return ap.Token },
		func(ap models.Appointment) string { return ap.Reason },
		func(ap models.Appointment) string { return ap.ID },
		func(ap models.Appointment) string { return ap.PatientID },
	)
	appointments = query.MatchEqual(appointments, q.Get("status"), func(ap models.Appointment) string { return ap.Status })
	appointments = query.MatchEqual(appointments, q.Get("type"), func(ap models.Appointment) string { return ap.Type })
	appointments = query.MatchEqual(appointments, q.Get("priority"), func(ap models.Appointment) string { return ap.Priority })
	appointments = query.MatchEqual(appointments, q.Get("date"), func(ap models.Appointment) string { return ap.Date })
	appointments = query.Sort(appointments, appointmentSortKey(q.Get("sort")), getDirection(r))

	total := len(appointments)
	page, limit := getPage(r), getLimit(r)
	pageItems := query.Paginate(appointments, page, limit)
	if len(pageItems) == 0 {
		pageItems = []models.Appointment{}
	}

	b, err := json.Marshal(listResponse{Data: pageItems, Total: total, Page: page, Pages: query.Pages(total, limit)})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func appointmentSortKey(field string) query.Key[models.Appointment] {
	switch field {
	case "bookedAt":
		return query.Key[models.Appointment]{Kind: query.Numeric, Value: func(a models.Appointment) string { return strconv.FormatInt(int64(a.BookedAt), 10) }}
	case "previousVisits":
		return query.Key[models.Appointment]{Kind: query.Numeric, Value: func(a models.Appointment) string { return strconv.Itoa(a.PreviousVisits) }}
	case "token":
		return query.Key[models.Appointment]{Kind: query.String, Value: func(a models.Appointment) string { return a.Token }}
	default:
		return query.Key[models.Appointment]{Kind: query.Date, Value: func(a models.Appointment) string { return a.Date }}
	}
}

// AppointmentByIDHandler returns an appointment by ID, enriched with the
// patient and doctor display names
func (a Appointment) AppointmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	zap.S().Debugf("appointment_id: %v", appointmentID)

	dbResp, err := a.DB.FindByID(context.Background(), appointmentID)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to get appointment by ID", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get appointment by ID", http.StatusInternalServerError, w, err)
		return
	}

	view := a.buildView(r.Context(), *dbResp)

	b, err := json.Marshal(view)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// buildView resolves the patient and doctor references for display. Dangling
// references degrade to placeholder names rather than failing the request.
func (a Appointment) buildView(ctx context.Context, appointment models.Appointment) appointmentView {
	view := appointmentView{
		Appointment:          appointment,
		PatientName:          models.DefaultPatientName,
		DoctorName:           models.DefaultDoctorDisplayName,
		DoctorSpecialization: models.DefaultDoctorSpecialization,
	}

	if patient, err := a.PDB.FindByID(ctx, appointment.PatientID); err == nil {
		view.PatientName = patient.Name
	}
	if doctor, err := a.DDB.FindByID(ctx, appointment.DoctorID); err == nil {
		view.DoctorName = doctor.Name
		view.DoctorSpecialization = doctor.Specialization
	}
	return view
}

// AppointmentsByDoctorIDHandler returns a doctor's appointments. The doctor
// flow mutates statuses but never deletes.
func (a Appointment) AppointmentsByDoctorIDHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]
	q := r.URL.Query()

	dbResp, err := a.DB.Find(context.TODO(), bson.M{"doctorId": doctorID})
	if err != nil {
		config.ErrorStatus("failed to get appointments by doctor ID", http.StatusInternalServerError, w, err)
		return
	}

	appointments := query.MatchEqual(dbResp, q.Get("status"), func(ap models.Appointment) string { return ap.Status })
	appointments = query.MatchEqual(appointments, q.Get("date"), func(ap models.Appointment) string { return ap.Date })
	appointments = query.Sort(appointments, appointmentSortKey("date"), query.Ascending)

	if len(appointments) == 0 {
		appointments = []models.Appointment{}
	}
	b, err := json.Marshal(appointments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateAppointmentHandler books an appointment. No double-booking guard
// lives here; callers run the availability check first and tolerate races.
func (a Appointment) CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var appointment models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	created, err := a.DB.Create(context.Background(), appointment)
	if err != nil {
		config.ErrorStatus("failed to create appointment", http.StatusInternalServerError, w, err)
		return
	}

	if a.Live != nil {
		a.Live.Broadcast("appointment_created", created)
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment created successfully",
		"id":      created.ID,
		"token":   created.Token,
	})
}

// UpdateAppointmentHandler updates an appointment's details
func (a Appointment) UpdateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{}
	for key, value := range updatedFields {
		update[key] = value
	}

	err := a.DB.Update(context.Background(), appointmentID, update)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to update appointment", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update appointment", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment updated successfully",
	})
}

// UpdateAppointmentStatusHandler sets the appointment status. Any status
// value is accepted from any caller.
func (a Appointment) UpdateAppointmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	err := a.DB.UpdateStatus(context.Background(), appointmentID, body.Status)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to update appointment status", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update appointment status", http.StatusInternalServerError, w, err)
		return
	}

	if a.Live != nil {
		a.Live.Broadcast("appointment_status_changed", map[string]string{
			"_id":    appointmentID,
			"status": body.Status,
		})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment status updated successfully",
	})
}

// DeleteAppointmentHandler deletes an appointment by ID
func (a Appointment) DeleteAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	if err := a.DB.Delete(context.Background(), appointmentID); err != nil {
		config.ErrorStatus("failed to delete appointment", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment deleted successfully",
	})
}

// AvailabilityHandler reports whether a time slot is free. Advisory only:
// the slot can still be taken between this check and the booking call.
func (a Appointment) AvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doctorID := q.Get("doctor_id")
	branchID := q.Get("branch_id")
	date := q.Get("date")
	timeSlot := q.Get("time")

	available, err := a.DB.CheckTimeSlotAvailability(context.Background(), doctorID, branchID, date, timeSlot)
	if err != nil {
		config.ErrorStatus("failed to check time slot availability", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]bool{"available": available})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AppointmentStatsHandler returns the dashboard counters for the appointment list
func (a Appointment) AppointmentStatsHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if doctorID := r.URL.Query().Get("doctor_id"); doctorID != "" {
		filter["doctorId"] = doctorID
	}

	dbResp, err := a.DB.Find(context.TODO(), filter)
	if err != nil {
		config.ErrorStatus("failed to get appointments", http.StatusInternalServerError, w, err)
		return
	}

	stats := map[string]interface{}{
		"total":         len(dbResp),
		"byStatus":      query.CountBy(dbResp, func(ap models.Appointment) string { return ap.Status }),
		"byType":        query.CountBy(dbResp, func(ap models.Appointment) string { return ap.Type }),
		"byPriority":    query.CountBy(dbResp, func(ap models.Appointment) string { return ap.Priority }),
		"averageVisits": query.AverageString(dbResp, func(ap models.Appointment) float64 { return float64(ap.PreviousVisits) }),
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
