package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	template := NewTemplate()

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "activation email",
			templateName: "activation_email.html",
			data: struct {
				ActivationToken string
			}{
				ActivationToken: "Y3QMGX3PJ3WLRL2YRTQGQ6KRHU",
			},
			expectedErr: false,
		},
		{
			name:         "unknown template",
			templateName: "missing_template.html",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p, h, err := template.ParseTemplate(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.NotEmpty(t, s.String())
				assert.Contains(t, p.String(), "Y3QMGX3PJ3WLRL2YRTQGQ6KRHU")
				assert.Contains(t, h.String(), "Y3QMGX3PJ3WLRL2YRTQGQ6KRHU")
			}
		})
	}
}
