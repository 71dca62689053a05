// FilePath: internal/catalog/catalog.go
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/campuscompass/parkhub/internal/models"
)

// Catalog is the immutable seed list of parking lots loaded at startup.
// Catalog order is stable and serves as the tie-break for distance ranking.
type Catalog struct {
	lots []models.ParkingLot
	byID map[string]int
}

// New builds a catalog from a seed slice. Lots with non-positive TotalSpots
// or duplicate IDs are rejected.
func New(lots []models.ParkingLot) (*Catalog, error) {
	byID := make(map[string]int, len(lots))
	for i, lot := range lots {
		if lot.ID == "" {
			return nil, fmt.Errorf("lot at index %d has no id", i)
		}
		if lot.TotalSpots <= 0 {
			return nil, fmt.Errorf("lot %s: total spots must be positive", lot.ID)
		}
		if lot.AvailableSpots < 0 || lot.AvailableSpots > lot.TotalSpots {
			return nil, fmt.Errorf("lot %s: seed available spots out of range", lot.ID)
		}
		if _, exists := byID[lot.ID]; exists {
			return nil, fmt.Errorf("duplicate lot id %s", lot.ID)
		}
		byID[lot.ID] = i
	}
	seed := make([]models.ParkingLot, len(lots))
	copy(seed, lots)
	return &Catalog{lots: seed, byID: byID}, nil
}

// Load reads a yaml seed file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var seed struct {
		Lots []models.ParkingLot `yaml:"lots"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return New(seed.Lots)
}

// Lots returns a copy of the seed list in catalog order.
func (c *Catalog) Lots() []models.ParkingLot {
	out := make([]models.ParkingLot, len(c.lots))
	copy(out, c.lots)
	return out
}

// Get returns a copy of the lot with the given id.
func (c *Catalog) Get(id string) (models.ParkingLot, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.ParkingLot{}, false
	}
	return c.lots[i], true
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.lots)
}

// Default returns the built-in campus seed catalog.
func Default() (*Catalog, error) {
	return New([]models.ParkingLot{
		{
			ID:             "lot-north",
			Name:           "North Campus Garage",
			Latitude:       40.44352,
			Longitude:      -79.94270,
			TotalSpots:     420,
			AvailableSpots: 180,
			Type:           models.LotTypeMixed,
			IsAccessible:   true,
			OperatingHours: models.OperatingHours{Weekdays: "06:00-23:00", Weekends: "08:00-22:00"},
			PeakHours: []models.PeakHour{
				{DayOfWeek: 1, StartHour: 8, EndHour: 11, AverageOccupancy: 92},
				{DayOfWeek: 3, StartHour: 8, EndHour: 11, AverageOccupancy: 90},
			},
		},
		{
			ID:             "lot-library",
			Name:           "Library Surface Lot",
			Latitude:       40.44101,
			Longitude:      -79.94561,
			TotalSpots:     120,
			AvailableSpots: 45,
			Type:           models.LotTypeStudent,
			IsAccessible:   true,
			OperatingHours: models.OperatingHours{Weekdays: "06:00-02:00", Weekends: "06:00-02:00"},
			PeakHours: []models.PeakHour{
				{DayOfWeek: 2, StartHour: 10, EndHour: 16, AverageOccupancy: 95},
			},
		},
		{
			ID:             "lot-stadium",
			Name:           "Stadium Overflow Lot",
			Latitude:       40.44689,
			Longitude:      -79.93974,
			TotalSpots:     600,
			AvailableSpots: 510,
			Type:           models.LotTypeVisitor,
			IsAccessible:   false,
			OperatingHours: models.OperatingHours{Weekdays: "07:00-22:00", Weekends: "07:00-24:00"},
		},
		{
			ID:             "lot-engineering",
			Name:           "Engineering Quad Deck",
			Latitude:       40.44275,
			Longitude:      -79.94838,
			TotalSpots:     250,
			AvailableSpots: 60,
			Type:           models.LotTypeStaff,
			IsAccessible:   true,
			OperatingHours: models.OperatingHours{Weekdays: "06:00-21:00", Weekends: "closed"},
			PeakHours: []models.PeakHour{
				{DayOfWeek: 1, StartHour: 9, EndHour: 12, AverageOccupancy: 97},
				{DayOfWeek: 4, StartHour: 9, EndHour: 12, AverageOccupancy: 94},
			},
		},
		{
			ID:             "lot-dorms",
			Name:           "Residence Hall Lot",
			Latitude:       40.43901,
			Longitude:      -79.94125,
			TotalSpots:     180,
			AvailableSpots: 25,
			Type:           models.LotTypeResident,
			IsAccessible:   false,
			OperatingHours: models.OperatingHours{Weekdays: "00:00-24:00", Weekends: "00:00-24:00"},
		},
	})
}
