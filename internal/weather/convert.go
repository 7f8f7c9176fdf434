package weather

import "github.com/shopspring/decimal"

var absoluteZero = decimal.RequireFromString("273.15")

// ToCelsius converts Kelvin to Celsius rounded to two decimal places,
// half away from zero.
func ToCelsius(kelvin float64) float64 {
	return decimal.NewFromFloat(kelvin).Sub(absoluteZero).Round(2).InexactFloat64()
}

// ToKelvin is the inverse of ToCelsius, used for providers that report Celsius.
func ToKelvin(celsius float64) float64 {
	return decimal.NewFromFloat(celsius).Add(absoluteZero).InexactFloat64()
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
