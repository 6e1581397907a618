package app

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/al1ce23/shitshop/internal/order/domain"
	"github.com/al1ce23/shitshop/pkg/sanitize"
)

const (
	MsgNameRequired  = "Customer name is required"
	MsgEmailInvalid  = "A valid email address is required"
	MsgPhoneInvalid  = "Phone number is invalid"
	MsgAddressTooBig = "Address must be 500 characters or fewer"
	MsgItemsRequired = "Order must contain at least one item"
	MsgTooManyItems  = "Order cannot contain more than 50 items"
	MsgTotalInvalid  = "Order total is invalid"
)

var emailPattern = regexp.MustCompile(`^[^\s@\x00-\x1f\x7f]+@[^\s@\x00-\x1f\x7f]+\.[^\s@\x00-\x1f\x7f]+$`)

// ValidationError lists every reason a payload was rejected.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate reports problems with p in a fixed order. An empty result
// means p is acceptable.
func Validate(p domain.Payload) []string {
	var problems []string

	if sanitize.Text(p.CustomerName.Value, MaxNameLen) == "" {
		problems = append(problems, MsgNameRequired)
	}

	if !ValidEmail(sanitize.Email(p.CustomerEmail.Value)) {
		problems = append(problems, MsgEmailInvalid)
	}

	if p.CustomerPhone.Present() && sanitize.Text(p.CustomerPhone.Value, MaxPhoneLen) == "" {
		problems = append(problems, MsgPhoneInvalid)
	}

	if utf8.RuneCountInString(sanitize.Text(p.CustomerAddress.Value, 0)) > MaxAddressLen {
		problems = append(problems, MsgAddressTooBig)
	}

	switch n := len(p.Items.Items); {
	case !p.Items.IsArray || n == 0:
		problems = append(problems, MsgItemsRequired)
	case n > MaxItems:
		problems = append(problems, MsgTooManyItems)
	}

	if !p.Total.Valid || p.Total.Value.IsNegative() || p.Total.Value.GreaterThan(MaxClientTotal) {
		problems = append(problems, MsgTotalInvalid)
	}

	return problems
}

// ValidEmail requires a bare addr-spec: it must match emailPattern and
// parse with net/mail to exactly itself.
func ValidEmail(email string) bool {
	if len(email) > MaxEmailLen || !emailPattern.MatchString(email) {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
