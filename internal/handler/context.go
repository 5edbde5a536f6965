package handler

type ContextKey string

var (
	RequestIDCtxKey ContextKey = "requestID"
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	StaffCtx        ContextKey = "staff"
	ServiceCtx      ContextKey = "service"
	CategoryCtx     ContextKey = "category"
	AppointmentCtx  ContextKey = "appointment"
)
