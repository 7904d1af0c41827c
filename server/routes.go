package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	// Pages
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.PageHandler("index", "Home"), s.HTMLMiddleWare()...))
	s.registerPage(RouteLogin, "login", "Sign in")
	s.registerPage(RouteSignup, "signup", "Create account")
	s.registerPage(RouteForgotPassword, "forgot-password", "Forgot password")
	s.registerPage(RouteResetPassword, "reset-password", "Reset password")
	s.registerPage(RouteVerifyEmail, "verify-email", "Verify email")
	s.registerPage(RouteDashboard, "dashboard", "Dashboard")
	s.registerPage(RouteRecipes, "recipes", "Recipes")
	s.registerPage(RouteCommunity, "community", "Community")
	s.registerPage(RouteSettings, "settings", "Settings")
	s.registerPage(RouteAdmin, "admin", "Administration")

	// OAuth browser redirects
	s.RegisterRouteHandler("GET "+RouteOAuthStart, ChainMiddleware(s.OAuthStartHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteOAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleWare()...))

	// Auth actions
	s.registerAPI("POST "+RouteAPISignup, storeAction(s, s.auth.Signup))
	s.registerAPI("POST "+RouteAPILogin, storeAction(s, s.auth.Login))
	s.registerAPI("POST "+RouteAPIVerifyTwoFactor, storeAction(s, s.auth.VerifyTwoFactor))
	s.registerAPI("POST "+RouteAPILogout, s.LogoutHandler())
	s.registerAPI("POST "+RouteAPIForgotPassword, inputAction(s.auth.ForgotPassword))
	s.registerAPI("POST "+RouteAPIResetPassword, inputAction(s.auth.ResetPassword))
	s.registerAPI("POST "+RouteAPIChangePassword, storeAction(s, s.auth.ChangePassword))
	s.registerAPI("POST "+RouteAPIVerifyEmail, storeAction(s, s.auth.VerifyEmail))
	s.registerAPI("POST "+RouteAPIResendVerification, s.ResendVerificationHandler())
	s.registerAPI("POST "+RouteAPIRefresh, s.RefreshHandler())
	s.registerAPI("POST "+RouteAPIToggleTwoFactor, storeAction(s, s.auth.ToggleTwoFactor))
	s.registerAPI("GET "+RouteAPIMe, s.MeHandler())

	// Account
	s.registerAPI("PATCH "+RouteAPIProfile, storeAction(s, s.auth.UpdateProfile))
	s.registerAPI("DELETE "+RouteAPIAccount, storeAction(s, s.auth.DeleteAccount))

	// Reviews
	s.registerAPI("PUT "+RouteAPIReviewDraft, s.ReviewDraftHandler())
	s.registerAPI("POST "+RouteAPIReview, s.ReviewSubmitHandler())

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteStaticPrefix+"/", ChainMiddleware(FileServerHandler().ServeHTTP, s.CacheMiddleware))
}

func (s *Server) registerPage(path, name, title string) {
	s.RegisterRouteHandler("GET "+path, ChainMiddleware(s.PageHandler(name, title), s.HTMLMiddleWare()...))
}

func (s *Server) registerAPI(pattern string, handler http.HandlerFunc) {
	s.RegisterRouteHandler(pattern, ChainMiddleware(handler, s.APIMiddleware()...))
}
