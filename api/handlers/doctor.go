package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/models"
	"github.com/carepoint/clinic-api/query"
)

// Doctor exported for testing purposes
type Doctor struct {
	DB databases.DoctorDatabase
}

// DoctorHandler returns all doctors, optionally filtered by specialization or branch
func (d Doctor) DoctorHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := d.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get doctors", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	doctors := query.Search(dbResp, q.Get("search"),
		func(doc models.Doctor) string { return doc.Name },
		func(doc models.Doctor) string { return doc.Specialization },
	)
	doctors = query.MatchEqual(doctors, q.Get("specialization"), func(doc models.Doctor) string { return doc.Specialization })
	doctors = query.MatchEqual(doctors, q.Get("branch"), func(doc models.Doctor) string { return doc.Branch })
	doctors = query.Sort(doctors, query.Key[models.Doctor]{Kind: query.String, Value: func(doc models.Doctor) string { return doc.Name }}, getDirection(r))

	if len(doctors) == 0 {
		doctors = []models.Doctor{}
	}
	b, err := json.Marshal(doctors)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DoctorByIDHandler returns a doctor by ID. A missing id yields the
// placeholder doctor rather than a 404 so portal views always render.
func (d Doctor) DoctorByIDHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]

	zap.S().Debugf("doctor_id: %v", doctorID)

	dbResp, err := d.DB.FindByIDOrDefault(context.Background(), doctorID)
	if err != nil {
		config.ErrorStatus("failed to get doctor by ID", http.StatusInternalServerError, w, err)
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

// CreateDoctorHandler creates a doctor
func (d Doctor) CreateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	created, err := d.DB.Create(context.Background(), doctor)
	if err != nil {
		config.ErrorStatus("failed to create doctor", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor created successfully",
		"id":      created.ID,
	})
}

// UpdateDoctorHandler updates a doctor's details
func (d Doctor) UpdateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{}
	for key, value := range updatedFields {
		update[key] = value
	}

	err := d.DB.Update(context.Background(), doctorID, update)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to update doctor", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update doctor", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor updated successfully",
	})
}
