package handlers

import (
	"context"
	"errors"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/preflight"
	tu "github.com/imamik/discourse-setup/internal/testing"
)

var _ = Describe("Setup pipeline", func() {
	var (
		env *fakeEnv
		ctx context.Context
		out string
		err error
	)

	run := func() {
		out = captureOutput(func() {
			err = Setup(ctx, env.settings)
		})
	}

	BeforeEach(func() {
		ctx = context.Background()

		var setupErr error
		env, setupErr = newFakeEnv(GinkgoT().TempDir())
		Expect(setupErr).NotTo(HaveOccurred())
		DeferCleanup(env.install())
	})

	Context("when the operator rejects the first summary", func() {
		BeforeEach(func() {
			first := tu.NewDeploymentBuilder().WithHostname("wrong.forum.org").Answers()
			second := []string{"forum.example.org", "", "", "", "", ""}

			answers := append(first, "n")
			answers = append(answers, second...)
			answers = append(answers, "")
			env.prompter = tu.NewScriptedPrompter(answers...)
		})

		It("asks again with the previous answers as defaults", func() {
			run()
			Expect(err).NotTo(HaveOccurred())
			Expect(env.prompter.Asked).To(HaveLen(14))
			Expect(env.prompter.Asked[7].Default).To(Equal("wrong.forum.org"))
			Expect(env.prompter.Asked[8].Default).To(Equal("admin@forum.org"))
		})

		It("writes only the confirmed answers", func() {
			run()
			Expect(env.configText()).To(ContainSubstring("DISCOURSE_HOSTNAME: forum.example.org\n"))
			Expect(env.configText()).NotTo(ContainSubstring("wrong.forum.org"))
		})
	})

	Context("when a Let's Encrypt email is given", func() {
		BeforeEach(func() {
			b := tu.NewDeploymentBuilder().WithLetsEncrypt("ops@forum.org")
			env.prompter = tu.NewScriptedPrompter(answersFor(b)...)
		})

		It("enables both SSL templates and the account email", func() {
			run()
			Expect(err).NotTo(HaveOccurred())

			text := env.configText()
			Expect(text).To(ContainSubstring("\n  - \"templates/web.ssl.template.yml\"\n"))
			Expect(text).To(ContainSubstring("\n  - \"templates/web.letsencrypt.ssl.template.yml\"\n"))
			Expect(text).To(ContainSubstring("\n  LETSENCRYPT_ACCOUNT_EMAIL: ops@forum.org\n"))
			Expect(out).To(ContainSubstring("Visit https://forum.example.org"))
		})
	})

	Context("when the Let's Encrypt email is OFF", func() {
		BeforeEach(func() {
			b := tu.NewDeploymentBuilder().WithLetsEncrypt("OFF")
			env.prompter = tu.NewScriptedPrompter(answersFor(b)...)
		})

		It("leaves the SSL templates disabled", func() {
			run()
			Expect(err).NotTo(HaveOccurred())
			Expect(env.configText()).To(ContainSubstring("#- \"templates/web.ssl.template.yml\""))
			Expect(env.configText()).To(ContainSubstring("#LETSENCRYPT_ACCOUNT_EMAIL"))
		})
	})

	Context("when the SMTP provider is known", func() {
		BeforeEach(func() {
			env.prompter = tu.NewScriptedPrompter(
				"forum.example.org", "admin@forum.org", "smtp.sendgrid.net", "", "SG.key", "", "",
			)
		})

		It("pre-seeds the provider user name", func() {
			run()
			Expect(err).NotTo(HaveOccurred())
			Expect(env.prompter.Asked[3].Default).To(Equal("apikey"))
			Expect(env.configText()).To(ContainSubstring("DISCOURSE_SMTP_USER_NAME: apikey\n"))
		})
	})

	Context("when the host fails more than one check", func() {
		BeforeEach(func() {
			env.host = tu.NewMockHost().WithResources(512, 0, 1000, 1).WithBoundPorts(80, 443)
		})

		It("stops at the first failing step", func() {
			run()
			Expect(err).To(MatchError(preflight.ErrInsufficientDisk))
			env.host.AssertNotCalled(GinkgoT(), "IsPortBound", mock.Anything, mock.Anything)
			Expect(env.settings.ConfigPath).NotTo(BeAnExistingFile())
		})

		It("still reports every resource warning", func() {
			run()
			Expect(out).To(ContainSubstring("requires 1GB RAM"))
			Expect(out).To(ContainSubstring("free disk space"))
		})
	})

	Context("when every port is bound", func() {
		BeforeEach(func() {
			env.host = tu.NewMockHost().WithResources(4096, 2048, 20000, 4).WithBoundPorts(80, 443)
		})

		It("reports both ports and never asks a question", func() {
			run()
			Expect(err).To(MatchError(preflight.ErrPortInUse))
			Expect(err.Error()).To(ContainSubstring("80, 443"))
			Expect(env.prompter.Asked).To(BeEmpty())
		})
	})

	Context("when validation finds placeholders", func() {
		BeforeEach(func() {
			env.prompter = tu.NewScriptedPrompter("", "", "", "", "", "", "")
		})

		It("names every offending field and does not bootstrap", func() {
			run()

			var verr *config.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Keys()).To(ConsistOf(
				config.KeyHostname, config.KeyDeveloperEmails, config.KeySMTPAddress, config.KeySMTPUserName,
			))
			Expect(env.bootstraps).To(BeEmpty())
		})
	})

	Context("when the tuning placeholders are missing from the template", func() {
		BeforeEach(func() {
			t := strings.Replace(tu.StandaloneTemplate, "  #UNICORN_WORKERS: 3\n", "", 1)
			Expect(os.WriteFile(env.settings.TemplatePath, []byte(t), 0o600)).To(Succeed())
		})

		It("skips that setting and still completes", func() {
			run()
			Expect(err).NotTo(HaveOccurred())
			Expect(env.configText()).To(ContainSubstring("db_shared_buffers: \"1024MB\""))
			Expect(env.configText()).NotTo(ContainSubstring("UNICORN_WORKERS"))
			Expect(env.bootstraps).To(HaveLen(1))
		})
	})
})
