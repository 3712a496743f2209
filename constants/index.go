package constants

const (
	ERROR_INPUT              = "INVALID_INPUT"
	ERROR_INTERNAL_ERROR     = "INTERNAL_SERVER_ERROR"
	DATA_INPUT_IS_NOT_NUMBER = "PARAM_IS_NOT_A_NUMBER"

	MISSING_LOGIN_INPUT = "MISSING_LOGIN_INPUT"
	INVALID_EMAIL       = "INVALID_EMAIL"
	INVALID_PASSWORD    = "INVALID_PASSWORD"
	EMAIL_ALREADY_USED  = "EMAIL_ALREADY_USED"
	ACCOUNT_NOT_ACTIVE  = "ACCOUNT_NOT_ACTIVE"
	NOT_ADMIN           = "NOT_ADMIN"
	UNAUTHORIZED        = "UNAUTHORIZED"

	MOVIE_NOT_FOUND   = "MOVIE_NOT_FOUND"
	THEATER_NOT_FOUND = "THEATER_NOT_FOUND"
	SHOW_NOT_FOUND    = "SHOW_NOT_FOUND"
	BOOKING_NOT_FOUND = "BOOKING_NOT_FOUND"

	MOVIE_HAS_BOOKINGS     = "MOVIE_HAS_BOOKINGS"
	SHOW_HAS_BOOKINGS      = "SHOW_HAS_BOOKINGS"
	THEATER_HAS_SHOWS      = "THEATER_HAS_SHOWS"
	REVIEW_ALREADY_EXISTS  = "REVIEW_ALREADY_EXISTS"
	SEATS_ALREADY_TAKEN    = "SEATS_ALREADY_TAKEN"
	BOOKING_NOT_CONFIRMED  = "BOOKING_NOT_CONFIRMED"
	CROSS_MOVIE_RESCHEDULE = "CROSS_MOVIE_RESCHEDULE"
	SHOW_ALREADY_STARTED   = "SHOW_ALREADY_STARTED"
	INSUFFICIENT_POINTS    = "INSUFFICIENT_POINTS"
)
