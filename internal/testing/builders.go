package testing

import (
	"github.com/imamik/discourse-setup/internal/config"
)

// DeploymentBuilder provides a fluent interface for constructing test deployments.
// Each method returns a new builder (immutable) for chaining.
type DeploymentBuilder struct {
	d config.Deployment
}

// NewDeploymentBuilder creates a new DeploymentBuilder with answers that pass validation.
func NewDeploymentBuilder() *DeploymentBuilder {
	return &DeploymentBuilder{
		d: config.Deployment{
			Hostname:        "forum.example.org",
			DeveloperEmails: "admin@forum.org",
			SMTPAddress:     "smtp.mailgun.org",
			SMTPUserName:    "postmaster@forum.org",
			SMTPPassword:    "s3cret",
		},
	}
}

// WithHostname sets the hostname.
func (b *DeploymentBuilder) WithHostname(hostname string) *DeploymentBuilder {
	nb := b.clone()
	nb.d.Hostname = hostname
	return nb
}

// WithDeveloperEmails sets the admin emails.
func (b *DeploymentBuilder) WithDeveloperEmails(emails string) *DeploymentBuilder {
	nb := b.clone()
	nb.d.DeveloperEmails = emails
	return nb
}

// WithSMTP sets address, user name and password.
func (b *DeploymentBuilder) WithSMTP(address, user, password string) *DeploymentBuilder {
	nb := b.clone()
	nb.d.SMTPAddress = address
	nb.d.SMTPUserName = user
	nb.d.SMTPPassword = password
	return nb
}

// WithLetsEncrypt sets the certificate account email.
func (b *DeploymentBuilder) WithLetsEncrypt(email string) *DeploymentBuilder {
	nb := b.clone()
	nb.d.LetsEncryptEmail = email
	return nb
}

// WithTuning sets the host-derived values.
func (b *DeploymentBuilder) WithTuning(sharedBuffersMB, workers int) *DeploymentBuilder {
	nb := b.clone()
	nb.d.SharedBuffersMB = sharedBuffersMB
	nb.d.UnicornWorkers = workers
	return nb
}

// Build returns the constructed deployment.
func (b *DeploymentBuilder) Build() config.Deployment {
	return b.d
}

// Answers returns the six prompt answers that reproduce the deployment.
func (b *DeploymentBuilder) Answers() []string {
	return []string{
		b.d.Hostname,
		b.d.DeveloperEmails,
		b.d.SMTPAddress,
		b.d.SMTPUserName,
		b.d.SMTPPassword,
		b.d.LetsEncryptEmail,
	}
}

func (b *DeploymentBuilder) clone() *DeploymentBuilder {
	return &DeploymentBuilder{d: b.d}
}
