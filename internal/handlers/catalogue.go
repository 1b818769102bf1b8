package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/autoparts-eu/brakecat/internal/models"
)

type catalogueGroup struct {
	Tag      string      `json:"tag"`
	Label    string      `json:"label"`
	Products interface{} `json:"products"`
}

type catalogueResponse struct {
	Brand   string           `json:"brand"`
	Model   string           `json:"model"`
	Vehicle string           `json:"vehicle"`
	Groups  []catalogueGroup `json:"groups"`
}

// getCatalogue resolves one vehicle record from the query parameters and
// returns every available product linked to it, grouped by product type.
// Cars and commercial vehicles are addressed by brand/model/type, bikes by
// brand/model/displacement with an optional year for the display string.
func (r *Router) getCatalogue(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	category := models.ParseVehicleCategory(q.Get("vehicle"))
	if category == "" {
		respondError(w, http.StatusBadRequest, "Invalid or missing vehicle parameter.")
		return
	}
	brandID, err1 := strconv.ParseInt(q.Get("brand"), 10, 64)
	modelID, err2 := strconv.ParseInt(q.Get("model"), 10, 64)
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "Invalid or missing brand or model parameter.")
		return
	}

	vt := models.VehicleTypeByCategory(category)

	var (
		vehicleID   int64
		brandName   string
		modelName   string
		displayName string
	)

	switch category {
	case models.CategoryBike:
		displacement, err := strconv.Atoi(q.Get("displacement"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid or missing displacement parameter.")
			return
		}
		var bike models.MotorBike
		err = r.db.Preload("Brand").Preload("Model").
			Where("brand_id = ? AND model_id = ? AND displacement = ?", brandID, modelID, displacement).
			First(&bike).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to resolve vehicle")
			return
		}
		vehicleID = bike.ID
		brandName = bike.Brand.Name
		modelName = bike.Model.Name
		displayName = fmt.Sprintf("%dcc %s", bike.Displacement, q.Get("year"))

	case models.CategoryCar:
		typeID, err := strconv.ParseInt(q.Get("type"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid or missing type parameter.")
			return
		}
		var car models.Car
		err = r.db.Preload("Brand").Preload("Model").
			Where("brand_id = ? AND model_id = ? AND id = ?", brandID, modelID, typeID).
			First(&car).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to resolve vehicle")
			return
		}
		vehicleID = car.ID
		brandName = car.Brand.Name
		modelName = car.Model.Name
		displayName = rangeName(car.Name, car.DateStart, car.DateEnd)

	default:
		typeID, err := strconv.ParseInt(q.Get("type"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid or missing type parameter.")
			return
		}
		var cv models.CommercialVehicle
		err = r.db.Preload("Brand").Preload("Model").
			Where("brand_id = ? AND model_id = ? AND id = ?", brandID, modelID, typeID).
			First(&cv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found.")
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to resolve vehicle")
			return
		}
		vehicleID = cv.ID
		brandName = cv.Brand.Name
		modelName = cv.Model.Name
		displayName = rangeName(cv.Name, cv.DateStart, cv.DateEnd)
	}

	groups := make([]catalogueGroup, 0, len(models.ProductTypes))
	for _, pt := range models.ProductTypes {
		slice := pt.NewSlice()
		err := r.db.
			Where("code IN (?)",
				r.db.Model(&models.FitmentLink{}).
					Select("product_code").
					Where("product_type = ? AND vehicle_type = ? AND vehicle_id = ?", pt.Tag, vt.Tag, vehicleID)).
			Where("available = ?", true).
			Order("code").
			Find(slice).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		groups = append(groups, catalogueGroup{
			Tag:      pt.Tag,
			Label:    pt.Label,
			Products: slice,
		})
	}

	respondJSON(w, http.StatusOK, catalogueResponse{
		Brand:   brandName,
		Model:   modelName,
		Vehicle: displayName,
		Groups:  groups,
	})
}

// rangeName renders "Name MM/YY - MM/YY"; an open start shows "?" and an
// open end shows "Now".
func rangeName(name string, start, end *time.Time) string {
	s, e := "?", "Now"
	if start != nil {
		s = start.Format("01/06")
	}
	if end != nil {
		e = end.Format("01/06")
	}
	return fmt.Sprintf("%s %s - %s", name, s, e)
}
