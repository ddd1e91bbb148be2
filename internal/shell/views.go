package shell

import (
	"strconv"
	"strings"
)

// View is a rendered page: a stable name for dispatch tests, the heading
// shown to the user, and the text body.
type View struct {
	Name  string
	Title string
	Body  string
}

// Static page copy. Informational only; the workflow never branches on it.
const (
	homeTitle = "The web's best pizza"
	homeBody  = "Pizza is not just a food; it is a life experience. Order a pizza from one of our many stores and see for yourself."

	aboutTitle = "The secret sauce"
	aboutBody  = "At JWT Pizza, our amazing employees are the secret to our delicious pizza."

	historyTitle = "Mama Rucci, my my"
	historyBody  = "It all started in Mama Rucci's kitchen. The rest is history."

	menuTitle = "Awesome is a click away"

	paymentTitle = "So worth it"

	deliveryTitle = "Here is your JWT Pizza!"

	loginTitle    = "Welcome back"
	registerTitle = "Welcome to the party"

	dinerTitle = "Your pizza kitchen"

	franchiseTitle      = "Your pizza franchise"
	franchisePitchTitle = "So you want a piece of the pie?"

	adminTitle = "Mama Ricci's kitchen"

	oopsTitle = "Oops"
	oopsBody  = "It looks like we have dropped a pizza on the floor. Please try another page."
)

// FormatPrice renders a bitcoin amount the way the receipts show it:
// decimal, trailing zeros trimmed.
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
