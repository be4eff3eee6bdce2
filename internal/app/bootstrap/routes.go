// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/leadhub/internal/app/features/health"
	leadsfeature "github.com/dalemusser/leadhub/internal/app/features/leads"
	loginfeature "github.com/dalemusser/leadhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/leadhub/internal/app/features/logout"
	signupfeature "github.com/dalemusser/leadhub/internal/app/features/signup"
	"github.com/dalemusser/leadhub/internal/app/system/auth"
	"github.com/dalemusser/leadhub/internal/app/system/mailer"
	"github.com/dalemusser/leadhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// LeadHub mounts a JSON API: account sign-up/sign-in/sign-out, the
// owner-scoped leads CRUD with outreach email, and a health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	outreachMailer := mailer.New(mailer.Config{
		Host:        appCfg.MailSMTPHost,
		Port:        appCfg.MailSMTPPort,
		User:        appCfg.MailSMTPUser,
		Password:    appCfg.MailSMTPPass,
		From:        appCfg.MailFrom,
		FromName:    appCfg.MailFromName,
		SendEnabled: appCfg.MailSendEnabled,
	}, logger)

	loginLimiter := ratelimit.NewLoginLimiterWithConfig(
		appCfg.LoginIPLimit, appCfg.LoginIPWindow,
		appCfg.LoginEmailLimit, appCfg.LoginEmailWindow,
	)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.LeadHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account + authentication
	signupHandler := signupfeature.NewHandler(deps.LeadHubMongoDatabase, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	loginHandler := loginfeature.NewHandler(deps.LeadHubMongoDatabase, sessionMgr, loginLimiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Leads CRUD + outreach email
	leadsHandler := leadsfeature.NewHandler(deps.LeadHubMongoDatabase, outreachMailer, appCfg.SiteName, logger)
	r.Mount("/leads", leadsfeature.Routes(leadsHandler, sessionMgr))

	return r, nil
}
