package checkout

import (
	"testing"

	"localconnect/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateContact(t *testing.T) {
	valid := models.ContactInfo{FullName: "Asha Rao", MobileNumber: "9876543210", Email: "asha.rao@mail.example.in"}
	assert.NoError(t, ValidateContact(&valid))

	cases := []struct {
		name  string
		edit  func(*models.ContactInfo)
		field string
	}{
		{"blank name", func(c *models.ContactInfo) { c.FullName = "  " }, "fullName"},
		{"blank mobile", func(c *models.ContactInfo) { c.MobileNumber = "" }, "mobileNumber"},
		{"short mobile", func(c *models.ContactInfo) { c.MobileNumber = "98765432" }, "mobileNumber"},
		{"letters in mobile", func(c *models.ContactInfo) { c.MobileNumber = "98765abc10" }, "mobileNumber"},
		{"blank email", func(c *models.ContactInfo) { c.Email = "" }, "email"},
		{"no domain", func(c *models.ContactInfo) { c.Email = "asha@example" }, "email"},
		{"long tld", func(c *models.ContactInfo) { c.Email = "asha@example.travel" }, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.edit(&c)
			err := ValidateContact(&c)
			var verr *ValidationError
			if assert.ErrorAs(t, err, &verr) {
				assert.Equal(t, tc.field, verr.Field)
			}
		})
	}
}
