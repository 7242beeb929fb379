package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/carepoint/clinic-api/config"
	"github.com/carepoint/clinic-api/databases"
	"github.com/carepoint/clinic-api/models"
	"github.com/carepoint/clinic-api/query"
)

// WellnessPackage exported for testing purposes
type WellnessPackage struct {
	DB databases.WellnessPackageDatabase
}

// WellnessPackageHandler returns the filtered, sorted, paginated package list
func (wp WellnessPackage) WellnessPackageHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := wp.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get wellness packages", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	pkgs := query.Search(dbResp, q.Get("search"),
		func(p models.WellnessPackage) string { return p.Name },
		func(p models.WellnessPackage) string { return p.Description },
	)
	pkgs = query.MatchEqual(pkgs, q.Get("type"), func(p models.WellnessPackage) string { return p.Type })
	pkgs = query.MatchEqual(pkgs, q.Get("category"), func(p models.WellnessPackage) string { return p.Category })
	pkgs = query.Sort(pkgs, packageSortKey(q.Get("sort")), getDirection(r))

	total := len(pkgs)
	page, limit := getPage(r), getLimit(r)
	pageItems := query.Paginate(pkgs, page, limit)
	if len(pageItems) == 0 {
		pageItems = []models.WellnessPackage{}
	}

	b, err := json.Marshal(listResponse{Data: pageItems, Total: total, Page: page, Pages: query.Pages(total, limit)})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func packageSortKey(field string) query.Key[models.WellnessPackage] {
	switch field {
	case "price":
		return query.Key[models.WellnessPackage]{Kind: query.Numeric, Value: func(p models.WellnessPackage) string { return strconv.FormatFloat(p.Price, 'f', -1, 64) }}
	case "rating":
		return query.Key[models.WellnessPackage]{Kind: query.Numeric, Value: func(p models.WellnessPackage) string { return strconv.FormatFloat(p.Rating, 'f', -1, 64) }}
	case "popularity":
		return query.Key[models.WellnessPackage]{Kind: query.Numeric, Value: func(p models.WellnessPackage) string { return strconv.Itoa(p.Popularity) }}
	case "salesCount":
		return query.Key[models.WellnessPackage]{Kind: query.Numeric, Value: func(p models.WellnessPackage) string { return strconv.Itoa(p.SalesCount) }}
	default:
		return query.Key[models.WellnessPackage]{Kind: query.String, Value: func(p models.WellnessPackage) string { return p.Name }}
	}
}

// WellnessPackageByIDHandler returns a wellness package by ID
func (wp WellnessPackage) WellnessPackageByIDHandler(w http.ResponseWriter, r *http.Request) {
	packageID := mux.Vars(r)["package_id"]

	dbResp, err := wp.DB.FindByID(context.Background(), packageID)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to get wellness package by ID", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get wellness package by ID", http.StatusInternalServerError, w, err)
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

// CreateWellnessPackageHandler creates a wellness package. The discounted
// price is stored as given; pricing consistency is the admin portal's
// responsibility.
func (wp WellnessPackage) CreateWellnessPackageHandler(w http.ResponseWriter, r *http.Request) {
	var pkg models.WellnessPackage
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	created, err := wp.DB.Create(context.Background(), pkg)
	if err != nil {
		config.ErrorStatus("failed to create wellness package", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Wellness package created successfully",
		"id":      created.ID,
	})
}

// UpdateWellnessPackageHandler updates a wellness package's details
func (wp WellnessPackage) UpdateWellnessPackageHandler(w http.ResponseWriter, r *http.Request) {
	packageID := mux.Vars(r)["package_id"]

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{}
	for key, value := range updatedFields {
		update[key] = value
	}

	err := wp.DB.Update(context.Background(), packageID, update)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("failed to update wellness package", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update wellness package", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Wellness package updated successfully",
	})
}

// DeleteWellnessPackageHandler deletes a wellness package by ID
func (wp WellnessPackage) DeleteWellnessPackageHandler(w http.ResponseWriter, r *http.Request) {
	packageID := mux.Vars(r)["package_id"]

	if err := wp.DB.Delete(context.Background(), packageID); err != nil {
		config.ErrorStatus("failed to delete wellness package", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Wellness package deleted successfully",
	})
}

// WellnessPackageStatsHandler returns the dashboard counters for the package catalogue
func (wp WellnessPackage) WellnessPackageStatsHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := wp.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get wellness packages", http.StatusInternalServerError, w, err)
		return
	}

	stats := map[string]interface{}{
		"total":         len(dbResp),
		"byType":        query.CountBy(dbResp, func(p models.WellnessPackage) string { return p.Type }),
		"byCategory":    query.CountBy(dbResp, func(p models.WellnessPackage) string { return p.Category }),
		"totalSales":    query.Sum(dbResp, func(p models.WellnessPackage) float64 { return float64(p.SalesCount) }),
		"averageRating": query.AverageString(dbResp, func(p models.WellnessPackage) float64 { return p.Rating }),
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
