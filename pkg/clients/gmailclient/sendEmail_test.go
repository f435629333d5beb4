package gmailclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("Guild Bot <bot@example.com>", "lead@example.com", "Troops schedule", "46 of 50 assigned")

	assert.Equal(t,
		"From: Guild Bot <bot@example.com>\r\n"+
			"To: lead@example.com\r\n"+
			"Subject: Troops schedule\r\n"+
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n"+
			"46 of 50 assigned",
		msg)
}

func TestBuildMessage_NoSender(t *testing.T) {
	msg := BuildMessage("", "lead@example.com", "Hi", "body")

	assert.NotContains(t, msg, "From:")
	assert.Contains(t, msg, "To: lead@example.com\r\n")
}
