package entity

type ResponseType string

const (
	ResponseTypeAccept  ResponseType = "ACCEPT"
	ResponseTypeMaybe   ResponseType = "MAYBE"
	ResponseTypeDecline ResponseType = "DECLINE"
)

var ResponseTypes = []ResponseType{
	ResponseTypeAccept,
	ResponseTypeMaybe,
	ResponseTypeDecline,
}

func (t ResponseType) IsValid() bool {
	for _, known := range ResponseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Response is a user's answer to an appointment invitation.
type Response struct {
	ID            int          `gorm:"primaryKey"`
	UserID        int          `gorm:"not null;uniqueIndex:idx_response_user_appt"` // References: users(id)
	AppointmentID string       `gorm:"not null;uniqueIndex:idx_response_user_appt"` // References: appointments(id)
	Type          ResponseType `gorm:"not null"`
	CreatedAt     int64        `gorm:"autoCreateTime:milli"`
	UpdatedAt     int64        `gorm:"autoUpdateTime:milli"`
}
