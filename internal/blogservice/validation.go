package blogservice

import (
	"regexp"

	"inkpost/internal/common"
)

var (
	TitleRX = regexp.MustCompile(`^[a-zA-Z0-9 .,:'!?-]+$`)
	TagRX   = regexp.MustCompile("^[a-z0-9]*$")
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 100), "title", "must be between 3 and 100 characters long")
	v.Check(v.CheckMatches(title, TitleRX), "title", "must only contain letters, numbers, spaces, and basic punctuation")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateTag(v *common.Validator, tag string) {
	v.Check(v.CheckStringLength(tag, 0, 20), "tag", "must be at most 20 characters long")
	v.Check(v.CheckMatches(tag, TagRX), "tag", "must only contain lowercase letters and numbers")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
