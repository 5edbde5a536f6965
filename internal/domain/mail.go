package domain

type MailType string

const (
	MailNewStaffAccount     MailType = "new_staff_account"
	MailResetPassword       MailType = "reset_password"
	MailBookingConfirmation MailType = "booking_confirmation"
	MailAppointmentReminder MailType = "appointment_reminder"
)

// MailMessage is the JSON body published to the e-mail queue.
// Data is decoded by the mail worker according to Type.
type MailMessage struct {
	Type MailType `json:"type"`
	To   string   `json:"to"`
	Data any      `json:"data"`
}

type NewStaffAccountMailData struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	SalonName string `json:"salonName"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AppointmentMailData struct {
	FullName     string  `json:"fullName"`
	ServiceName  string  `json:"serviceName"`
	StaffName    string  `json:"staffName"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Duration     int32   `json:"duration"`
	Price        float64 `json:"price"`
	SalonName    string  `json:"salonName"`
	SalonAddress string  `json:"salonAddress"`
	SalonPhone   string  `json:"salonPhone"`
}
