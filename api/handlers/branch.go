package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/models"
)

// Branch exported for testing purposes
type Branch struct {
	DB databases.BranchDatabase
}

// BranchHandler returns all branches
func (b Branch) BranchHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := b.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get branches", http.StatusInternalServerError, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Branch{}
	}
	out, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// BranchByIDHandler returns a branch by ID
func (b Branch) BranchByIDHandler(w http.ResponseWriter, r *http.Request) {
	branchID := mux.Vars(r)["branch_id"]

	dbResp, err := b.DB.FindByID(context.Background(), branchID)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to get branch by ID", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get branch by ID", http.StatusInternalServerError, w, err)
		return
	}

	out, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
