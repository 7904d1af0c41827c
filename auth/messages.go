package auth

const (
	msgInvalidInput       = "Invalid data"
	msgUnexpected         = "Something went wrong. Please try again."
	msgUnauthenticated    = "You must be signed in"
	msgRateLimited        = "Too many failed attempts. Try again later."
	msgAccountExists      = "An account already exists with this email"
	msgInvalidCredentials = "Incorrect email or password"
	msgAccountDisabled    = "This account has been disabled"
	msgCodeInvalid        = "Incorrect or expired code"
	msgLinkExpired        = "This link is invalid or has expired. Request a new one."
	msgWrongCurrent       = "Current password is incorrect"
	msgWrongPassword      = "Incorrect password"
	msgAlreadyVerified    = "Your email is already verified"
	msgEmailInUse         = "This email is already in use"
	msgOAuthState         = "Sign-in could not be verified. Please try again."

	msgSignedUp           = "Account created"
	msgSignedUpVerify     = "Account created. Check your email to verify your address."
	msgSignedIn           = "Signed in"
	msgTwoFactorRequired  = "Enter the code from your authenticator app"
	msgSignedOut          = "Signed out"
	msgResetRequested     = "If an account exists for this email, a reset link has been sent."
	msgPasswordReset      = "Password updated. You can now sign in."
	msgPasswordChanged    = "Password changed"
	msgEmailVerified      = "Email verified"
	msgVerificationResent = "Verification email sent"
	msgProfileUpdated     = "Profile updated"
	msgTwoFactorEnabled   = "Two-factor authentication enabled"
	msgTwoFactorDisabled  = "Two-factor authentication disabled"
	msgAccountDeleted     = "Account deleted"
	msgSessionRefreshed   = "Session refreshed"
	msgOAuthRedirecting   = "Redirecting to provider"
)
