package errors

// User-friendly error messages
const (
	MsgInvalidFilter      = "One of the search filters is invalid. Please check your input and try again."
	MsgValidation         = "The provided data is invalid. Please check your input and try again."
	MsgInvalidID          = "The provided identifier is not valid."
	MsgPropertyNotFound   = "Property not found."
	MsgRecipientNotFound  = "No user is registered with that email."
	MsgEntryNotFound      = "Recommendation not found."
	MsgUserNotFound       = "User not found."
	MsgUnauthorized       = "You are not allowed to modify this property."
	MsgUnauthenticated    = "Please sign in to continue."
	MsgAlreadyFavorited   = "Already in favorites."
	MsgEmailTaken         = "An account with this email already exists."
	MsgInvalidCredentials = "Invalid email or password."
	MsgRateLimited        = "You're making requests too quickly! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
