package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/doganiot/mywordismyword/models"
)

const contentHeader = "MYWORDISMYWORD CONTRACT PLATFORM"

// buildContent wraps the user's text with the platform header, the
// parties section and the signature block that appear on every contract.
// Content that already carries the header (a recreated contract) is
// passed through untouched.
func buildContent(base string, creator *models.User, second *models.User, now time.Time) string {
	if strings.HasPrefix(base, contentHeader) {
		return base
	}

	var b strings.Builder

	fmt.Fprintf(&b, `MYWORDISMYWORD CONTRACT PLATFORM
================================

Contract date: %s
Platform: MyWordIsMyWord

`, now.Format("02/01/2006 15:04"))

	b.WriteString("PARTIES:\n========\n\n")
	fmt.Fprintf(&b, `1. Party (contract creator):
   Name: %s
   Email: %s
   Role: creating party

`, creator.FullName(), creator.Email)
	if second != nil {
		fmt.Fprintf(&b, `2. Party:
   Name: %s
   Email: %s
   Role: counterparty

`, second.FullName(), second.Email)
	}

	fmt.Fprintf(&b, "CONTRACT TERMS:\n===============\n\n%s\n\n", strings.TrimSpace(base))

	b.WriteString(`SIGNATURES:
===========

This contract is signed electronically on the MyWordIsMyWord platform.
It takes effect once every party has reviewed and signed it.

`)
	fmt.Fprintf(&b, "1. Party: %s\n", creator.FullName())
	if second != nil {
		fmt.Fprintf(&b, "2. Party: %s\n", second.FullName())
	}
	fmt.Fprintf(&b, "\nPlatform: MyWordIsMyWord\nDate: %s\n", now.Format("02/01/2006 15:04"))

	return b.String()
}
