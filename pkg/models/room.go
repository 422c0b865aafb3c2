package models

// RoomStatus is the occupancy state shown on the admin room table.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomFull        RoomStatus = "full"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID         int64      `json:"id"`
	Number     string     `json:"number"`
	Block      string     `json:"block"`
	Capacity   int        `json:"capacity"`
	Occupied   int        `json:"occupied"`
	MonthlyFee int64      `json:"monthlyFee"` // minor currency units
	Status     RoomStatus `json:"status"`
}

// Vacancies returns the number of free beds, never negative.
func (r Room) Vacancies() int {
	return max(r.Capacity-r.Occupied, 0)
}
