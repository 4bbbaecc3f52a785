package config

// Sections of the container configuration document.
const (
	SectionEnv       = "env"
	SectionParams    = "params"
	SectionTemplates = "templates"
)

// Keys written by the wizard.
const (
	KeyHostname         = "DISCOURSE_HOSTNAME"
	KeyDeveloperEmails  = "DISCOURSE_DEVELOPER_EMAILS"
	KeySMTPAddress      = "DISCOURSE_SMTP_ADDRESS"
	KeySMTPUserName     = "DISCOURSE_SMTP_USER_NAME"
	KeySMTPPassword     = "DISCOURSE_SMTP_PASSWORD"
	KeyLetsEncryptEmail = "LETSENCRYPT_ACCOUNT_EMAIL"
	KeySharedBuffers    = "db_shared_buffers"
	KeyUnicornWorkers   = "UNICORN_WORKERS"
)

// Templates enabled together with a Let's Encrypt account email.
const (
	TemplateSSL         = "templates/web.ssl.template.yml"
	TemplateLetsEncrypt = "templates/web.letsencrypt.ssl.template.yml"
)

// PlaceholderDomain marks values still carrying the template's sample data.
const PlaceholderDomain = "example.com"

// LetsEncryptOff disables Let's Encrypt when entered as the account email.
const LetsEncryptOff = "off"

// Ports the web container publishes on the host.
const (
	HTTPPort  = 80
	HTTPSPort = 443
)

// RequiredKeys lists the env fields that must hold real values after setup.
var RequiredKeys = []string{
	KeyHostname,
	KeyDeveloperEmails,
	KeySMTPAddress,
	KeySMTPUserName,
	KeySMTPPassword,
}
