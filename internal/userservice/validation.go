package userservice

import (
	"regexp"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	EmailRX     = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)
	UppercaseRX = regexp.MustCompile("[A-Z]")
	LowercaseRX = regexp.MustCompile("[a-z]")
	NumberRX    = regexp.MustCompile("[0-9]")
)

func validateFullname(v *common.Validator, fullname string) {
	v.Check(v.CheckStringLength(fullname, 3, 1<<16), "fullname", "Fullname must be at least 3 letters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "Enter Email")
	v.Check(EmailRX.MatchString(email), "email", "Enter Valid Email")
}

func validatePassword(v *common.Validator, password string) {
	value := v.CheckStringLength(password, 6, 20) && UppercaseRX.MatchString(password) && LowercaseRX.MatchString(password) && NumberRX.MatchString(password)
	v.Check(value, "password", "Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters")
}

func validateCredentials(v *common.Validator, email, password string) {
	v.Check(email != "", "email", "Enter Email")
	v.Check(password != "", "password", "Enter Password")
}
