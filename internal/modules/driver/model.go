// README: Driver record and availability statuses.
package driver

type Status string

const (
	StatusAvailable Status = "available"
	StatusOnTrip    Status = "on_trip"
	StatusOffline   Status = "offline"
)

// Valid reports whether s is one of the closed status values. Registration
// rejects anything else; no other strings ever reach the table.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOnTrip, StatusOffline:
		return true
	}
	return false
}

// Driver mirrors a row of the drivers table. ID is the store-assigned primary
// key used for foreign-key linkage from requests; DriverID is the externally
// assigned identifier.
type Driver struct {
	ID       int64
	DriverID string
	Name     string
	Status   Status
	Location string
}
