package wizard

import (
	"errors"

	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/config/document"
)

// Apply writes the operator's answers into doc. Every field is attempted;
// the returned error wraps ErrSubstitutionFailed and one SubstitutionError
// per field that could not be written. doc is not saved.
func Apply(doc *document.Document, d config.Deployment) error {
	var errs []error

	set := func(key, value string) {
		if err := doc.Set(config.SectionEnv, key, value, document.MatchAny); err != nil {
			errs = append(errs, &SubstitutionError{Field: key, Err: err})
		}
	}

	set(config.KeyHostname, d.Hostname)
	set(config.KeyDeveloperEmails, d.DeveloperEmails)
	set(config.KeySMTPAddress, d.SMTPAddress)
	set(config.KeySMTPUserName, d.SMTPUserName)
	set(config.KeySMTPPassword, d.SMTPPassword)

	if d.LetsEncryptEnabled() {
		set(config.KeyLetsEncryptEmail, d.LetsEncryptEmail)

		for _, tmpl := range []string{config.TemplateSSL, config.TemplateLetsEncrypt} {
			if err := doc.EnableItem(config.SectionTemplates, tmpl); err != nil {
				errs = append(errs, &SubstitutionError{Field: tmpl, Err: err})
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrSubstitutionFailed}, errs...)...)
	}
	return nil
}

// FailedFields lists the fields named by the SubstitutionErrors inside err.
func FailedFields(err error) []string {
	var fields []string

	var walk func(error)
	walk = func(e error) {
		if se, ok := e.(*SubstitutionError); ok {
			fields = append(fields, se.Field)
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
		}
	}
	if err != nil {
		walk(err)
	}

	return fields
}
