package timezone

import "time"

const FallbackTimezone = "America/Sao_Paulo"

var businessTZ = FallbackTimezone

// SetBusiness define o timezone oficial da barbearia (via config).
func SetBusiness(tz string) {
	if IsValid(tz) {
		businessTZ = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location() *time.Location {
	if loc, err := time.LoadLocation(businessTZ); err == nil {
		return loc
	}

	loc, _ := time.LoadLocation(FallbackTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
