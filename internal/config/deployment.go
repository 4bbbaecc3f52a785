package config

import "strings"

// Deployment holds the operator's answers and the host-derived tuning for one
// container configuration.
type Deployment struct {
	Hostname         string
	DeveloperEmails  string
	SMTPAddress      string
	SMTPUserName     string
	SMTPPassword     string
	LetsEncryptEmail string

	// Tuning derived from host capacity. Zero means "not set".
	SharedBuffersMB int
	UnicornWorkers  int
}

// LetsEncryptEnabled reports whether a certificate email was given and not switched off.
func (d Deployment) LetsEncryptEnabled() bool {
	email := strings.TrimSpace(d.LetsEncryptEmail)
	return email != "" && !strings.EqualFold(email, LetsEncryptOff)
}
