package models

type UserRole string
type InvitationStatus string
type PaymentStatus string
type RSVPResponse string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"

	InvitationStatusDraft     InvitationStatus = "draft"
	InvitationStatusPublished InvitationStatus = "published"
	InvitationStatusExpired   InvitationStatus = "expired"

	// Платеж живет по циклу шлюза: created -> captured | failed.
	// captured и failed — терминальные статусы.
	PaymentStatusCreated  PaymentStatus = "created"
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusFailed   PaymentStatus = "failed"

	RSVPResponseAttending    RSVPResponse = "attending"
	RSVPResponseNotAttending RSVPResponse = "not_attending"
	RSVPResponseMaybe        RSVPResponse = "maybe"
	RSVPResponseDeclined     RSVPResponse = "declined"
	RSVPResponsePending      RSVPResponse = "pending"
)

// ValidUserRole reports whether the role is one we issue tokens for.
func ValidUserRole(r UserRole) bool {
	return r == UserRoleCustomer || r == UserRoleAdmin
}

// ValidInvitationStatus reports whether the status is a known workflow state.
func ValidInvitationStatus(s InvitationStatus) bool {
	switch s {
	case InvitationStatusDraft, InvitationStatusPublished, InvitationStatusExpired:
		return true
	}
	return false
}

// ValidRSVPResponse reports whether the response is one a guest may submit.
func ValidRSVPResponse(r RSVPResponse) bool {
	switch r {
	case RSVPResponseAttending, RSVPResponseNotAttending, RSVPResponseMaybe,
		RSVPResponseDeclined, RSVPResponsePending:
		return true
	}
	return false
}
