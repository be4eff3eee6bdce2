// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: leadhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost    string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort    int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser    string // SMTP username (empty for Mailpit)
	MailSMTPPass    string // SMTP password
	MailFrom        string // From email address (e.g., noreply@leadhub.app)
	MailFromName    string // From display name (e.g., LeadHub)
	MailSendEnabled bool   // When false, outreach emails are drafted + logged only

	// Site identity used in outgoing email footers
	SiteName string

	// Sign-in rate limiting
	LoginIPLimit     int           // Attempts allowed per IP per window
	LoginIPWindow    time.Duration // IP window duration
	LoginEmailLimit  int           // Attempts allowed per email per window
	LoginEmailWindow time.Duration // Email window duration
}
