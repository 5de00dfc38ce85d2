package models

// RoleType defines the staff/student role stored on a profile
type RoleType string

const (
	RoleAdmin           RoleType = "admin"
	RoleHostelDirector  RoleType = "hostel_director"
	RoleWarden          RoleType = "warden"
	RoleDeputyWarden    RoleType = "deputy_warden"
	RoleAssistantWarden RoleType = "assistant_warden"
	RoleCaretaker       RoleType = "caretaker"
	RoleStudent         RoleType = "student"
)

// AllRoles lists every valid role
var AllRoles = []RoleType{
	RoleAdmin,
	RoleHostelDirector,
	RoleWarden,
	RoleDeputyWarden,
	RoleAssistantWarden,
	RoleCaretaker,
	RoleStudent,
}

// IsValidRole reports whether the given string is a known role
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// RoomType defines the room category
type RoomType string

const (
	RoomTypeSingle    RoomType = "single"
	RoomTypeDouble    RoomType = "double"
	RoomTypeTriple    RoomType = "triple"
	RoomTypeDormitory RoomType = "dormitory"
)

// RoomStatus defines the room lifecycle status
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusReserved    RoomStatus = "reserved"
)

// AllotmentStatus defines the allotment lifecycle status.
// Transitions are monotonic: active -> vacated or active -> transferred.
type AllotmentStatus string

const (
	AllotmentStatusActive      AllotmentStatus = "active"
	AllotmentStatusVacated     AllotmentStatus = "vacated"
	AllotmentStatusTransferred AllotmentStatus = "transferred"
)

// WaitingStatus defines the waiting list entry status
type WaitingStatus string

const (
	WaitingStatusWaiting   WaitingStatus = "waiting"
	WaitingStatusAllotted  WaitingStatus = "allotted"
	WaitingStatusCancelled WaitingStatus = "cancelled"
)

// HostelStatus defines the student's residency status
type HostelStatus string

const (
	HostelStatusResident       HostelStatus = "resident"
	HostelStatusDayScholar     HostelStatus = "day_scholar"
	HostelStatusFormerResident HostelStatus = "former_resident"
)

// EntryType defines the direction of a gate entry log
type EntryType string

const (
	EntryTypeEntry EntryType = "entry"
	EntryTypeExit  EntryType = "exit"
)
