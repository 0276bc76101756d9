package constants

const (
	ERROR_INPUT              = "Invalid input"
	ERROR_INTERNAL_ERROR     = "Internal server error"
	DATA_INPUT_IS_NOT_NUMBER = "Id param must be a number"

	MISSING_LOGIN_INPUT = "Missing username or password"
	INVALID_USERNAME    = "Username does not exist"
	INVALID_PASSWORD    = "Wrong password"
	ACCOUNT_NOT_ACTIVE  = "Account is deactivated"
	NOT_ADMIN           = "Admin permission required"

	EXHIBITION_NOT_FOUND    = "Exhibition not found"
	EXHIBITION_NOT_BOOKABLE = "Exhibition is not open for registration"
	EXHIBITION_SOLD_OUT     = "Not enough remaining seats"
	SLUG_ALREADY_EXISTS     = "An exhibition with this slug already exists"

	LOCATION_NOT_FOUND     = "Location not found"
	LOCATION_HAS_EXHIBITS  = "Location still has exhibitions attached"
	LOCATION_NAME_REQUIRED = "Location name is required"

	REGISTRATION_NOT_FOUND   = "Registration not found"
	ALREADY_REGISTERED       = "You are already registered for this exhibition"
	TOKEN_NOT_FOUND          = "Ticket not found"
	TICKET_ALREADY_VALIDATED = "Ticket has already been validated"
	CANNOT_CANCEL_VALIDATED  = "A validated ticket can no longer be cancelled"

	USER_NOT_FOUND         = "User not found"
	EMAIL_ALREADY_USED     = "Email is already registered"
	NOT_REGISTRATION_OWNER = "You do not own this registration"
)

// Temporal states reported by the availability endpoint.
const (
	ExhibitionUpcoming = "UPCOMING"
	ExhibitionActive   = "ACTIVE"
	ExhibitionEnded    = "ENDED"
)
