package blogservice

import (
	"bytes"
	"encoding/json"

	"github.com/sushihentaime/inkwell/internal/common"
)

const (
	maxDesLength = 200
	maxTags      = 10
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "Title cannot be empty")
}

// validatePublishable applies the rules a blog must meet before it leaves draft.
func validatePublishable(v *common.Validator, req *UpsertBlogRequest) {
	v.Check(req.Des != "" && len(req.Tags) > 0 && !contentEmpty(req.Content), "blog", "Incomplete blog data")
	v.Check(v.CheckStringLength(req.Des, 1, maxDesLength), "des", "Description must be between 1 to 200 characters")
	v.Check(len(req.Tags) >= 1 && len(req.Tags) <= maxTags, "tags", "Provide 1 to 10 tags for the blog")
	v.Check(!contentEmpty(req.Content), "content", "There must be some blog content to publish it")
}

// contentEmpty reports whether content is missing or carries no editor blocks. Accepted
// shapes are an editor document {"blocks": [...]} or an array of them.
func contentEmpty(content json.RawMessage) bool {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return true
	}

	var value any
	if err := json.Unmarshal(content, &value); err != nil {
		return true
	}

	return valueEmpty(value)
}

func valueEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		for _, item := range v {
			if !valueEmpty(item) {
				return false
			}
		}
		return true
	case map[string]any:
		if len(v) == 0 {
			return true
		}
		if blocks, ok := v["blocks"]; ok {
			list, ok := blocks.([]any)
			return !ok || len(list) == 0
		}
		return false
	default:
		return false
	}
}
