package handlers

import (
	"context"
	"encoding/json"
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

// Patient exported for testing purposes
type Patient struct {
	DB databases.PatientDatabase
}

// PatientHandler returns the filtered, sorted, paginated patient list
func (p Patient) PatientHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := p.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get patients", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	patients := query.Search(dbResp, q.Get("search"),
		func(pt models.Patient) string { return pt.Name },
		func(pt models.Patient) string { return pt.ID },
		func(pt models.Patient) string { return pt.Phone },
		func(pt models.Patient) string { return pt.Email },
	)
	patients = query.MatchEqual(patients, q.Get("gender"), func(pt models.Patient) string { return pt.Gender })
	patients = query.MatchEqual(patients, q.Get("status"), func(pt models.Patient) string { return pt.Status })
	patients = query.MatchEqual(patients, q.Get("bloodGroup"), func(pt models.Patient) string { return pt.BloodGroup })
	patients = query.Sort(patients, patientSortKey(q.Get("sort")), getDirection(r))

	total := len(patients)
	page, limit := getPage(r), getLimit(r)
	pageItems := query.Paginate(patients, page, limit)
	if len(pageItems) == 0 {
		pageItems = []models.Patient{}
	}

	b, err := json.Marshal(listResponse{Data: pageItems, Total: total, Page: page, Pages: query.Pages(total, limit)})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func patientSortKey(field string) query.Key[models.Patient] {
	switch field {
	case "registeredDate":
		return query.Key[models.Patient]{Kind: query.Date, Value: func(p models.Patient) string { return p.RegisteredDate }}
	case "lastVisit":
		return query.Key[models.Patient]{Kind: query.Date, Value: func(p models.Patient) string { return p.LastVisit }}
	case "age":
		return query.Key[models.Patient]{Kind: query.Numeric, Value: func(p models.Patient) string { return strconv.Itoa(p.Age) }}
	default:
		return query.Key[models.Patient]{Kind: query.String, Value: func(p models.Patient) string { return p.Name }}
	}
}

// PatientByIDHandler returns a patient by ID
func (p Patient) PatientByIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	zap.S().Debugf("patient_id: %v", patientID)

	dbResp, err := p.DB.FindByID(context.Background(), patientID)
	if err == databases.ErrNotFound {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreatePatientHandler registers a patient
func (p Patient) CreatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	created, err := p.DB.Create(context.Background(), patient)
	if err != nil {
		config.ErrorStatus("failed to create patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient created successfully",
		"id":      created.ID,
	})
}

// UpdatePatientHandler updates a patient's details
func (p Patient) UpdatePatientHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	// age is derived from dateOfBirth on every read, never written
	delete(updatedFields, "age")

	update := bson.M{}
	for key, value := range updatedFields {
		update[key] = value
	}

	err := p.DB.Update(context.Background(), patientID, update)
	if err == databases.ErrNotFound {
		config.ErrorStatus("failed to update patient", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient updated successfully",
	})
}

// DeletePatientHandler removes a patient from the active set. Appointments
// referencing the patient are not cascaded.
func (p Patient) DeletePatientHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	if err := p.DB.Delete(context.Background(), patientID); err != nil {
		config.ErrorStatus("failed to delete patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient deleted successfully",
	})
}

// PatientStatsHandler returns the dashboard counters for the patient list
func (p Patient) PatientStatsHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := p.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get patients", http.StatusInternalServerError, w, err)
		return
	}

	stats := map[string]interface{}{
		"total":        len(dbResp),
		"byStatus":     query.CountBy(dbResp, func(pt models.Patient) string { return pt.Status }),
		"byGender":     query.CountBy(dbResp, func(pt models.Patient) string { return pt.Gender }),
		"byBloodGroup": query.CountBy(dbResp, func(pt models.Patient) string { return pt.BloodGroup }),
		"averageAge":   query.AverageString(dbResp, func(pt models.Patient) float64 { return float64(pt.Age) }),
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
