package wizard_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/config/wizard"
	tu "github.com/imamik/discourse-setup/internal/testing"
)

func TestCollect_EmptyAnswersKeepDefaults(t *testing.T) {
	p := tu.NewScriptedPrompter("", "", "", "", "", "")

	d, err := wizard.Collect(context.Background(), p, wizard.StockDefaults())
	require.NoError(t, err)

	assert.Equal(t, wizard.StockDefaults(), d)
	require.Len(t, p.Asked, 6)
	assert.Equal(t, "discourse.example.com", p.Asked[0].Default)
	assert.Equal(t, "pa$$word", p.Asked[4].Default)
	assert.Empty(t, p.Asked[5].Default)
}

func TestCollect_AnswersOverwriteDefaults(t *testing.T) {
	want := tu.NewDeploymentBuilder().WithLetsEncrypt("ops@forum.org")
	p := tu.NewScriptedPrompter(want.Answers()...)

	d, err := wizard.Collect(context.Background(), p, wizard.StockDefaults())
	require.NoError(t, err)
	assert.Equal(t, want.Build(), d)
}

func TestCollect_TrimsAnswers(t *testing.T) {
	p := tu.NewScriptedPrompter("  forum.org ", "", "", "", "", "")

	d, err := wizard.Collect(context.Background(), p, wizard.StockDefaults())
	require.NoError(t, err)
	assert.Equal(t, "forum.org", d.Hostname)
}

func TestCollect_KeepsTuning(t *testing.T) {
	previous := wizard.StockDefaults()
	previous.SharedBuffersMB = 1024
	previous.UnicornWorkers = 4

	d, err := wizard.Collect(context.Background(), tu.NewScriptedPrompter("", "", "", "", "", ""), previous)
	require.NoError(t, err)
	assert.Equal(t, 1024, d.SharedBuffersMB)
	assert.Equal(t, 4, d.UnicornWorkers)
}

func TestCollect_ProviderUserName(t *testing.T) {
	tests := []struct {
		name        string
		prevAddress string
		address     string
		previous    string
		wantDefault string
	}{
		{name: "sparkpost", address: "smtp.sparkpostmail.com", previous: wizard.DefaultSMTPUserName, wantDefault: "SMTP_Injection"},
		{name: "sendgrid", address: "smtp.sendgrid.net", previous: wizard.DefaultSMTPUserName, wantDefault: "apikey"},
		{name: "case insensitive", address: "SMTP.SendGrid.net", previous: "", wantDefault: "apikey"},
		{name: "other provider", address: "smtp.mailgun.org", previous: wizard.DefaultSMTPUserName, wantDefault: wizard.DefaultSMTPUserName},
		{name: "switch to provider replaces custom name", address: "smtp.sendgrid.net", previous: "custom", wantDefault: "apikey"},
		{name: "same provider keeps custom name", prevAddress: "smtp.sendgrid.net", address: "smtp.sendgrid.net", previous: "custom", wantDefault: "custom"},
		{name: "same provider any case keeps custom name", prevAddress: "smtp.sendgrid.net", address: "SMTP.SENDGRID.NET", previous: "custom", wantDefault: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := wizard.StockDefaults()
			if tt.prevAddress != "" {
				previous.SMTPAddress = tt.prevAddress
			}
			previous.SMTPUserName = tt.previous
			p := tu.NewScriptedPrompter("", "", tt.address, "", "", "")

			d, err := wizard.Collect(context.Background(), p, previous)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDefault, p.Asked[3].Default)
			assert.Equal(t, tt.wantDefault, d.SMTPUserName)
		})
	}
}

func TestRun_RejectedRoundSwitchesToProvider(t *testing.T) {
	p := tu.NewScriptedPrompter(
		"forum.org", "admin@forum.org", "smtp.mailgun.org", "postmaster@forum.org", "s3cret", "", "n",
		"", "", "smtp.sendgrid.net", "", "", "", "",
	)

	d, err := wizard.Run(context.Background(), p, io.Discard, wizard.StockDefaults())
	require.NoError(t, err)
	assert.Equal(t, "apikey", p.Asked[10].Default)
	assert.Equal(t, "apikey", d.SMTPUserName)
	assert.Equal(t, "s3cret", d.SMTPPassword)
}

func TestCollect_Aborted(t *testing.T) {
	p := tu.NewScriptedPrompter("forum.org")

	_, err := wizard.Collect(context.Background(), p, wizard.StockDefaults())
	assert.ErrorIs(t, err, wizard.ErrAborted)
	assert.Len(t, p.Asked, 2)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{answer: "", want: true},
		{answer: "y", want: true},
		{answer: "yes", want: true},
		{answer: "sure", want: true},
		{answer: "n", want: false},
		{answer: "N", want: false},
		{answer: " no ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			ok, err := wizard.Confirm(context.Background(), tu.NewScriptedPrompter(tt.answer))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestConfirm_Aborted(t *testing.T) {
	_, err := wizard.Confirm(context.Background(), tu.NewScriptedPrompter())
	assert.ErrorIs(t, err, wizard.ErrAborted)
}

func TestRun_RestartUsesPreviousAnswers(t *testing.T) {
	p := tu.NewScriptedPrompter(
		"first.org", "", "", "", "", "", "n",
		"", "admin@forum.org", "", "", "", "", "",
	)
	var out bytes.Buffer

	d, err := wizard.Run(context.Background(), p, &out, wizard.StockDefaults())
	require.NoError(t, err)

	assert.Equal(t, "first.org", d.Hostname, "rejected answers become defaults")
	assert.Equal(t, "admin@forum.org", d.DeveloperEmails)
	require.Len(t, p.Asked, 14)
	assert.Equal(t, "first.org", p.Asked[7].Default)
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Hostname")), "summary shown per round")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wizard.Run(ctx, tu.NewScriptedPrompter(), &bytes.Buffer{}, wizard.StockDefaults())
	assert.ErrorIs(t, err, wizard.ErrAborted)
}

func TestRun_PrompterError(t *testing.T) {
	boom := errors.New("terminal gone")
	p := &tu.ScriptedPrompter{Err: boom}

	_, err := wizard.Run(context.Background(), p, &bytes.Buffer{}, wizard.StockDefaults())
	assert.ErrorIs(t, err, boom)
}

func TestSummary(t *testing.T) {
	var out bytes.Buffer
	d := tu.NewDeploymentBuilder().
		WithSMTP("smtp.sendgrid.net", "apikey", "pa:ss#word").
		WithTuning(512, 4).
		Build()

	wizard.Summary(&out, d)

	s := out.String()
	assert.Contains(t, s, "forum.example.org")
	assert.Contains(t, s, "pa:ss#word", "password shown in plaintext")
	assert.Contains(t, s, "(disabled)")
	assert.Contains(t, s, "512MB")
	assert.Contains(t, s, "UNICORN_WORKERS")
}

func TestSummary_LetsEncrypt(t *testing.T) {
	var out bytes.Buffer
	wizard.Summary(&out, tu.NewDeploymentBuilder().WithLetsEncrypt("ops@forum.org").Build())
	assert.Contains(t, out.String(), "ops@forum.org")
	assert.NotContains(t, out.String(), "(disabled)")
	assert.NotContains(t, out.String(), "db_shared_buffers")
}

func TestLetsEncryptEnabled(t *testing.T) {
	for email, want := range map[string]bool{
		"":              false,
		"  ":            false,
		"OFF":           false,
		"off":           false,
		"ops@forum.org": true,
	} {
		d := config.Deployment{LetsEncryptEmail: email}
		assert.Equal(t, want, d.LetsEncryptEnabled(), "email %q", email)
	}
}
