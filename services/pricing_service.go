package services

import (
	"fmt"

	"github.com/careconnect/careconnect-api/models"
)

// Base transport rates by vehicle type, in dollars per trip.
const (
	standardRate   = 50
	wheelchairRate = 75
	stretcherRate  = 120

	// Premium added for medical transport
	medicalPremium = 25
)

// Hourly nursing rates by nurse type.
const (
	registeredRate  = 75
	practicalRate   = 60
	specializedRate = 90

	// Premium added per hour for in-home care
	homeCarePremium = 15
)

// TransportQuote returns the price for a transport booking from the
// fixed rate table. The server is authoritative for pricing; clients
// only see the result.
func TransportQuote(serviceType, transportType string) (float64, error) {
	var base float64
	switch transportType {
	case models.TransportStandard:
		base = standardRate
	case models.TransportWheelchair:
		base = wheelchairRate
	case models.TransportStretcher:
		base = stretcherRate
	default:
		return 0, fmt.Errorf("unknown transport type: %q", transportType)
	}

	switch serviceType {
	case models.ServiceTypeMedical:
		base += medicalPremium
	case models.ServiceTypeNonMedical:
		// no premium
	default:
		return 0, fmt.Errorf("unknown service type: %q", serviceType)
	}

	return base, nil
}

// NursingQuote returns the price for a nursing booking: hourly rate by
// nurse type, plus the in-home premium, times the booked hours.
func NursingQuote(nurseType, careType string, hours int) (float64, error) {
	if hours <= 0 {
		return 0, fmt.Errorf("hours must be positive, got %d", hours)
	}

	var hourly float64
	switch nurseType {
	case models.NurseRegistered:
		hourly = registeredRate
	case models.NursePractical:
		hourly = practicalRate
	case models.NurseSpecialized:
		hourly = specializedRate
	default:
		return 0, fmt.Errorf("unknown nurse type: %q", nurseType)
	}

	switch careType {
	case models.CareHome:
		hourly += homeCarePremium
	case models.CareFacility, models.CareTelehealth:
		// no premium
	default:
		return 0, fmt.Errorf("unknown care type: %q", careType)
	}

	return hourly * float64(hours), nil
}
