package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages - public
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteSignup         = "/signup"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"
	RouteVerifyEmail    = "/verify-email"

	// Pages - signed in
	RouteDashboard = "/dashboard"
	RouteProjects  = "/projects"
	RouteRecipes   = "/recipes"
	RouteCommunity = "/community"
	RouteSettings  = "/settings"
	RouteAdmin     = "/admin"

	// OAuth browser redirects
	RouteOAuthPrefix   = "/auth"
	RouteOAuthStart    = "/auth/oauth/{provider}"
	RouteOAuthCallback = "/auth/callback/{provider}"

	// API Routes - Auth actions
	RouteAPIPrefix             = "/api"
	RouteAPISignup             = "/api/auth/signup"
	RouteAPILogin              = "/api/auth/login"
	RouteAPIVerifyTwoFactor    = "/api/auth/verify-2fa"
	RouteAPILogout             = "/api/auth/logout"
	RouteAPIForgotPassword     = "/api/auth/forgot-password"
	RouteAPIResetPassword      = "/api/auth/reset-password"
	RouteAPIChangePassword     = "/api/auth/change-password"
	RouteAPIVerifyEmail        = "/api/auth/verify-email"
	RouteAPIResendVerification = "/api/auth/resend-verification"
	RouteAPIRefresh            = "/api/auth/refresh"
	RouteAPIToggleTwoFactor    = "/api/auth/2fa/toggle"
	RouteAPIMe                 = "/api/auth/me"

	// API Routes - Account
	RouteAPIProfile = "/api/users/profile"
	RouteAPIAccount = "/api/users/account"

	// API Routes - Reviews
	RouteAPIReviewDraft = "/api/recipes/{id}/review/draft"
	RouteAPIReview      = "/api/recipes/{id}/review"

	RouteHealth       = "/healthz"
	RouteStaticPrefix = "/static"
)

// Query parameters used on redirects
const (
	QueryCallbackURL = "callbackUrl"
	QueryError       = "error"
)
