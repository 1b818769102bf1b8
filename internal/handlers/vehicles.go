package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// Navigation payloads render date ranges as "MM/YY" strings so the
// storefront can show them verbatim; open-ended dates serialize as null.

type brandResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type modelResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	DateStart *string `json:"dateStart"`
	DateEnd   *string `json:"dateEnd"`
}

type typeResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	KW        uint    `json:"kw"`
	CV        uint    `json:"cv"`
	DateStart *string `json:"dateStart"`
	DateEnd   *string `json:"dateEnd"`
}

type motorbikeResponse struct {
	ID           int64 `json:"id"`
	BrandID      int64 `json:"brandId"`
	ModelID      int64 `json:"modelId"`
	Displacement int   `json:"displacement"`
	Years        []int `json:"years"`
}

func monthYear(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("01/06")
	return &s
}

// getBrands lists the brands of one vehicle category
func (r *Router) getBrands(w http.ResponseWriter, req *http.Request) {
	category := models.ParseVehicleCategory(req.Header.Get("Vehicle-Type"))
	if category == "" {
		respondError(w, http.StatusBadRequest, "Invalid or missing Vehicle-Type.")
		return
	}

	var brands []models.Brand
	if err := r.db.Where("category = ?", category).Order("name").Find(&brands).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch brands")
		return
	}

	out := make([]brandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandResponse{ID: b.ID, Name: b.Name})
	}
	respondJSON(w, http.StatusOK, out)
}

// getModels lists the model lines of one brand
func (r *Router) getModels(w http.ResponseWriter, req *http.Request) {
	brandID := req.Header.Get("Brand-Id")
	category := models.ParseVehicleCategory(req.Header.Get("Vehicle-Type"))
	if brandID == "" || category == "" {
		respondError(w, http.StatusBadRequest, "Invalid or missing Brand-Id or Vehicle-Type.")
		return
	}

	var records []models.VehicleModel
	err := r.db.
		Joins("JOIN brands ON brands.id = vehicle_models.brand_id").
		Where("brands.category = ? AND vehicle_models.brand_id = ?", category, brandID).
		Order("vehicle_models.name").
		Find(&records).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch models")
		return
	}

	out := make([]modelResponse, 0, len(records))
	for _, m := range records {
		out = append(out, modelResponse{
			ID:        m.ID,
			Name:      m.Name,
			DateStart: monthYear(m.DateStart),
			DateEnd:   monthYear(m.DateEnd),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// getTypes lists the car or commercial vehicle variants of one model line.
// Bikes go through getMotorbikes instead.
func (r *Router) getTypes(w http.ResponseWriter, req *http.Request) {
	brandID := req.Header.Get("Brand-Id")
	modelID := req.Header.Get("Model-Id")
	category := models.ParseVehicleCategory(req.Header.Get("Vehicle-Type"))
	if brandID == "" || modelID == "" || category == "" {
		respondError(w, http.StatusBadRequest, "Invalid or missing Brand-Id, Model-Id or Vehicle-Type.")
		return
	}

	var out []typeResponse
	switch category {
	case models.CategoryCar:
		var cars []models.Car
		if err := r.db.Where("brand_id = ? AND model_id = ?", brandID, modelID).Order("name").Find(&cars).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch types")
			return
		}
		for _, c := range cars {
			out = append(out, typeResponse{
				ID: c.ID, Name: c.Name, KW: c.KW, CV: c.CV,
				DateStart: monthYear(c.DateStart), DateEnd: monthYear(c.DateEnd),
			})
		}
	case models.CategoryCV:
		var cvs []models.CommercialVehicle
		if err := r.db.Where("brand_id = ? AND model_id = ?", brandID, modelID).Order("name").Find(&cvs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch types")
			return
		}
		for _, c := range cvs {
			out = append(out, typeResponse{
				ID: c.ID, Name: c.Name, KW: c.KW, CV: c.CV,
				DateStart: monthYear(c.DateStart), DateEnd: monthYear(c.DateEnd),
			})
		}
	default:
		respondError(w, http.StatusBadRequest, "Unsupported Vehicle-Type for this endpoint.")
		return
	}

	if out == nil {
		out = []typeResponse{}
	}
	respondJSON(w, http.StatusOK, out)
}

// getMotorbikes lists the displacement variants of one bike model line
func (r *Router) getMotorbikes(w http.ResponseWriter, req *http.Request) {
	brandID := req.Header.Get("Brand-Id")
	modelID := req.Header.Get("Model-Id")
	if brandID == "" || modelID == "" {
		respondError(w, http.StatusBadRequest, "Invalid or missing Brand-Id or Model-Id.")
		return
	}
	if models.ParseVehicleCategory(req.Header.Get("Vehicle-Type")) != models.CategoryBike {
		respondError(w, http.StatusBadRequest, "Vehicle-Type must be 'b' (Motor Bike).")
		return
	}

	var bikes []models.MotorBike
	err := r.db.Preload("Years").
		Where("brand_id = ? AND model_id = ?", brandID, modelID).
		Order("displacement").
		Find(&bikes).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch motorbikes")
		return
	}

	out := make([]motorbikeResponse, 0, len(bikes))
	for _, b := range bikes {
		years := make([]int, 0, len(b.Years))
		for _, y := range b.Years {
			years = append(years, y.Value)
		}
		sort.Ints(years)
		out = append(out, motorbikeResponse{
			ID:           b.ID,
			BrandID:      b.BrandID,
			ModelID:      b.ModelID,
			Displacement: b.Displacement,
			Years:        years,
		})
	}
	respondJSON(w, http.StatusOK, out)
}
