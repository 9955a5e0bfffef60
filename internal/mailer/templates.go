package mailer

import (
	"fmt"

	"github.com/doganiot/mywordismyword/models"
)

// Subject/body builders for the three lifecycle mails. Plain text, same
// shape as the platform has always sent.

func InvitationSubject(c *models.Contract) string {
	return fmt.Sprintf("Contract invitation: %s", c.Title)
}

func InvitationBody(c *models.Contract, inviter *models.User, baseURL string) string {
	return fmt.Sprintf(`Hello,

%s invited you to take part in the contract "%s".

Contract details:
- Start date: %s
- Term: %s
- Created by: %s

Review and sign it here:
%s/contracts/%s

MyWordIsMyWord
`, inviter.FullName(), c.Title,
		c.StartDate.Format("02.01.2006"), c.DurationDisplay(), inviter.FullName(),
		baseURL, c.ID)
}

func SignatureCodeSubject(c *models.Contract) string {
	return fmt.Sprintf("Signature code for: %s", c.Title)
}

func SignatureCodeBody(c *models.Contract, code string) string {
	return fmt.Sprintf(`Hello,

Use the code below to sign the contract "%s":

Signature code: %s

Enter it on the contract page to record your signature.

MyWordIsMyWord
`, c.Title, code)
}

func DeclinedSubject(c *models.Contract) string {
	return fmt.Sprintf("Contract invitation declined: %s", c.Title)
}

func DeclinedBody(c *models.Contract, decliner string, reason string, baseURL string) string {
	reasonBlock := ""
	if reason != "" {
		reasonBlock = fmt.Sprintf("\nReason given:\n%s\n", reason)
	}
	return fmt.Sprintf(`Hello,

Your invitation for the contract "%s" was declined by %s.
%s
Contract details:
- Start date: %s
- Term: %s

You can review your declined contracts, invite someone else or recreate
the contract here:
%s/contracts/declined

MyWordIsMyWord
`, c.Title, decliner, reasonBlock,
		c.StartDate.Format("02.01.2006"), c.DurationDisplay(), baseURL)
}
