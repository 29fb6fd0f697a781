package handler

// errorEnvelope documents the standard error shape in swagger annotations.
type errorEnvelope struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Users ---

type createUserRequest struct {
	Name            string   `json:"name"     validate:"required"`
	Email           string   `json:"email"    validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	Role            string   `json:"role"     validate:"required,oneof=STAFF CLIENT"`
	AssignedClients []string `json:"assigned_clients,omitempty"`
}

// setUserStatusRequest uses a pointer so an omitted field is distinguishable
// from an explicit false.
type setUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type userResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	IsActive        bool     `json:"is_active"`
	AssignedClients []string `json:"assigned_clients,omitempty"`
	Avatar          string   `json:"avatar,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

// --- Parcels ---

type createParcelRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	Sender         string `json:"sender"          validate:"required"`
	ClientID       string `json:"client_id"       validate:"required"`
	Description    string `json:"description"`
}

type transitionParcelRequest struct {
	Status string `json:"status" validate:"required"`
}

// parcelResponse renders parcel dates at their date-only granularity.
type parcelResponse struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"tracking_number"`
	Sender         string `json:"sender"`
	ClientID       string `json:"client_id"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status"`
	DateCreated    string `json:"date_created"`
	DateUpdated    string `json:"date_updated"`
	HandledBy      string `json:"handled_by,omitempty"`
}

type listParcelsResponse struct {
	Data []parcelResponse `json:"data"`
}

// --- Chat ---

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content"     validate:"required"`
}

type messageResponse struct {
	ID            string `json:"id"`
	SenderID      string `json:"sender_id"`
	ReceiverID    string `json:"receiver_id"`
	Content       string `json:"content"`
	Timestamp     string `json:"timestamp"`
	IsAIGenerated bool   `json:"is_ai_generated,omitempty"`
}

type listMessagesResponse struct {
	Data []messageResponse `json:"data"`
}

// --- Dashboard ---

type dashboardSummaryResponse struct {
	TotalParcels int    `json:"total_parcels"`
	Delivered    int    `json:"delivered"`
	Pending      int    `json:"pending"`
	InTransit    int    `json:"in_transit"`
	ActiveStaff  int    `json:"active_staff,omitempty"`
	Analysis     string `json:"analysis,omitempty"`
}
