// FilePath: internal/parking/service.geo.go
package parking

import (
	"math"

	"github.com/campuscompass/parkhub/internal/models"
)

const earthRadiusMeters = 6371000.0

// FindNearestAvailable returns the closest lot with free spots, or nil when
// none qualify. Distance ties keep the earlier catalog entry.
func (s *Service) FindNearestAvailable(lat, lng float64, lots []models.ParkingLot) *models.ParkingLot {
	var nearest *models.ParkingLot
	best := math.Inf(1)
	for i := range lots {
		if lots[i].AvailableSpots <= 0 {
			continue
		}
		d := haversineMeters(lat, lng, lots[i].Latitude, lots[i].Longitude)
		if d < best {
			best = d
			nearest = &lots[i]
		}
	}
	if nearest == nil {
		return nil
	}
	found := *nearest
	return &found
}

// GetAccessibleLots filters to lots with accessible parking.
func (s *Service) GetAccessibleLots(lots []models.ParkingLot) []models.ParkingLot {
	accessible := make([]models.ParkingLot, 0, len(lots))
	for _, lot := range lots {
		if lot.IsAccessible {
			accessible = append(accessible, lot)
		}
	}
	return accessible
}

// haversineMeters computes the great-circle distance between two
// coordinates.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
