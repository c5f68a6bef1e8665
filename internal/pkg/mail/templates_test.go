package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcomeTemplate(t *testing.T) {
	html, err := renderTemplate(welcomeTpl, WelcomeData{Username: "alice", LoginURL: "https://safespace.example/login"})
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to SafeSpace, alice!")
	assert.Contains(t, html, "https://safespace.example/login")
}

func TestRenderWarningTemplate(t *testing.T) {
	html, err := renderTemplate(warningTpl, WarningData{
		Username:       "bob",
		AbuseRatePct:   45,
		SuspendRatePct: 60,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "bob")
	assert.Contains(t, html, "45%")
	assert.Contains(t, html, "60%")
}

func TestRenderSuspensionTemplate(t *testing.T) {
	html, err := renderTemplate(suspensionTpl, SuspensionData{
		Username:    "carol",
		Reason:      "Automatic suspension: 70% of your recent comments were flagged as abusive",
		AppealEmail: "moderation@safespace.example",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "carol")
	assert.Contains(t, html, "70%")
	assert.Contains(t, html, "moderation@safespace.example")
}

func TestSendDisabledIsNoop(t *testing.T) {
	s := New(Config{Enable: false})
	err := s.SendWelcome("nobody@example.com", WelcomeData{Username: "nobody"})
	assert.NoError(t, err)
}
