package wizard

import (
	"strings"

	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/config/document"
)

// Stock answers used when the document holds no value.
const (
	DefaultHostname         = "discourse.example.com"
	DefaultDeveloperEmails  = "me@example.com"
	DefaultSMTPAddress      = "smtp.example.com"
	DefaultSMTPUserName     = "user@example.com"
	DefaultSMTPPassword     = "pa$$word"
	DefaultLetsEncryptEmail = ""
)

// ProviderOption is a mail provider whose SMTP user name is fixed.
type ProviderOption struct {
	Address  string
	UserName string
}

// Providers contains the SMTP providers with a well-known user name.
var Providers = []ProviderOption{
	{Address: "smtp.sparkpostmail.com", UserName: "SMTP_Injection"},
	{Address: "smtp.sendgrid.net", UserName: "apikey"},
}

// ProviderUserName returns the fixed user name for a known SMTP address.
func ProviderUserName(address string) (string, bool) {
	address = strings.ToLower(strings.TrimSpace(address))
	for _, p := range Providers {
		if p.Address == address {
			return p.UserName, true
		}
	}
	return "", false
}

// StockDefaults returns the answers offered on a fresh template.
func StockDefaults() config.Deployment {
	return config.Deployment{
		Hostname:         DefaultHostname,
		DeveloperEmails:  DefaultDeveloperEmails,
		SMTPAddress:      DefaultSMTPAddress,
		SMTPUserName:     DefaultSMTPUserName,
		SMTPPassword:     DefaultSMTPPassword,
		LetsEncryptEmail: DefaultLetsEncryptEmail,
	}
}

// DefaultsFrom reads the current env values of doc, falling back to the
// stock answers for fields the document does not set.
func DefaultsFrom(doc *document.Document) config.Deployment {
	d := StockDefaults()

	fields := []struct {
		key string
		dst *string
	}{
		{config.KeyHostname, &d.Hostname},
		{config.KeyDeveloperEmails, &d.DeveloperEmails},
		{config.KeySMTPAddress, &d.SMTPAddress},
		{config.KeySMTPUserName, &d.SMTPUserName},
		{config.KeySMTPPassword, &d.SMTPPassword},
		{config.KeyLetsEncryptEmail, &d.LetsEncryptEmail},
	}
	for _, f := range fields {
		if v, ok := doc.Get(config.SectionEnv, f.key); ok && strings.TrimSpace(v) != "" {
			*f.dst = v
		}
	}

	return d
}
