package utils

import "math"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateRadius проверяет радиус буфера в метрах: конечное положительное число
func ValidateRadius(radiusM float64) bool {
	return radiusM > 0 && !math.IsInf(radiusM, 0) && !math.IsNaN(radiusM)
}
