package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	template := &Template{}

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "contact form",
			templateName: contactFormTemplate,
			data: ContactMessage{
				FirstName: "Jane",
				Phone:     "555-0100",
				Email:     "jane@example.com",
				Message:   "<b>Hello</b>",
			},
			expectedErr: false,
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.tmpl",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p, h, err := template.ParseTemplate(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.Equal(t, "New Form Submission", s.String())
				assert.Contains(t, p.String(), "Name: Jane")
				assert.Contains(t, p.String(), "Phone: 555-0100")
				assert.Contains(t, h.String(), "&lt;b&gt;Hello&lt;/b&gt;")
			}
		})
	}
}

func TestParseTemplateEscaping(t *testing.T) {
	msg := ContactMessage{
		FirstName: "O'Brien",
		Phone:     "555-0100",
		Email:     "obrien@example.com",
		Message:   `a < b & "c"`,
	}

	s, p, h, err := NewTemplate().ParseTemplate(contactFormTemplate, msg)
	assert.NoError(t, err)

	assert.Equal(t, "New Form Submission", s.String())
	assert.Contains(t, p.String(), "Name: O'Brien")
	assert.Contains(t, p.String(), `Message: a < b & "c"`)
	assert.NotContains(t, p.String(), "&amp;")

	assert.Contains(t, h.String(), "O&#39;Brien")
	assert.Contains(t, h.String(), "a &lt; b &amp; &#34;c&#34;")
}
