package service

import "github.com/civicpulse/backend/internal/models"

// Static reference tables. These are configuration, not runtime state: wire
// them in at construction so tests can swap them out.

const DefaultWardID = "ward_001"

func DefaultZoneBands() []LatitudeBand {
	// Southern band first so the equator itself routes to ward_001.
	return []LatitudeBand{
		{WardID: "ward_001", MinLat: -90, MaxLat: 0},
		{WardID: "ward_002", MinLat: 0, MaxLat: 90},
	}
}

func DefaultWards() []models.Ward {
	return []models.Ward{
		{
			ID:   "ward_001",
			Name: "Downtown Central",
			Mappings: map[models.Category]models.Responsibility{
				models.CategoryRoadDamage:  {Department: "Public Works", ContractorID: "cont_road_01"},
				models.CategoryGarbage:     {Department: "Sanitation", ContractorID: "cont_waste_01"},
				models.CategoryWaterLeak:   {Department: "Water Supply", ContractorID: "cont_water_01"},
				models.CategoryBrokenInfra: {Department: "Urban Development", ContractorID: "cont_infra_01"},
				models.CategoryOther:       {Department: "General Maintenance", ContractorID: "cont_gen_01"},
			},
		},
		{
			ID:   "ward_002",
			Name: "Suburban North",
			Mappings: map[models.Category]models.Responsibility{
				models.CategoryRoadDamage:  {Department: "Public Works", ContractorID: "cont_road_02"},
				models.CategoryGarbage:     {Department: "Sanitation", ContractorID: "cont_waste_02"},
				models.CategoryWaterLeak:   {Department: "Water Supply", ContractorID: "cont_water_02"},
				models.CategoryBrokenInfra: {Department: "Urban Development", ContractorID: "cont_infra_02"},
				models.CategoryOther:       {Department: "General Maintenance", ContractorID: "cont_gen_02"},
			},
		},
	}
}

func DefaultContractors() []models.Contractor {
	return []models.Contractor{
		{ID: "cont_road_01", Name: "Metro Paving Co."},
		{ID: "cont_waste_01", Name: "CleanCity Solutions"},
		{ID: "cont_water_01", Name: "AquaFlow Utilities"},
		{ID: "cont_infra_01", Name: "Urban Build Ltd."},
		{ID: "cont_gen_01", Name: "CityCare Services"},
		{ID: "cont_road_02", Name: "North Road Maintenance"},
		{ID: "cont_waste_02", Name: "GreenWaste Management"},
		{ID: "cont_water_02", Name: "PureWater Systems"},
		{ID: "cont_infra_02", Name: "Skyline Construction"},
		{ID: "cont_gen_02", Name: "Regional Maintenance"},
	}
}

func DefaultFallbackResponsibility() models.Responsibility {
	return models.Responsibility{Department: "General Services", ContractorID: "default_contractor"}
}

func DefaultSLAPolicy() *SLAPolicy {
	return NewSLAPolicy(24, map[models.Category]int{
		models.CategoryRoadDamage:  72,
		models.CategoryGarbage:     48,
		models.CategoryWaterLeak:   24,
		models.CategoryBrokenInfra: 96,
		models.CategoryOther:       72,
	}, 72)
}

func DefaultZoneResolver() *ZoneResolver {
	return NewZoneResolver(DefaultZoneBands(), DefaultWardID)
}

func DefaultResponsibilityTable() *ResponsibilityTable {
	return NewResponsibilityTable(DefaultWards(), DefaultContractors(), DefaultFallbackResponsibility())
}
