package convert

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const kmToMiles = 0.6213712

// ToMiles returns the given distance in kilometers to miles
func ToMiles(km float64) float64 {
	return km * kmToMiles
}

// Ftoan formats a float rounded to the nearest integer
func Ftoan(f float64) string {
	return strconv.Itoa(int(math.Round(f)))
}

// Duration formats a ride time as HH:MM:SS, as shown on the watch
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// Delta formats a ghost time difference in seconds as +M:SS (behind) or
// -M:SS (ahead).
func Delta(seconds float64) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	secs := int(math.Round(seconds))
	if secs == 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%d:%02d", sign, secs/60, secs%60)
}

// Distance formats kilometers with two decimals
func Distance(km float64) string {
	return strconv.FormatFloat(km, 'f', 2, 64)
}

// Speed formats km/h with one decimal
func Speed(kmh float64) string {
	return strconv.FormatFloat(kmh, 'f', 1, 64)
}
