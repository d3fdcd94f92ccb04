package user_test

import (
	"testing"

	"go-flexile/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestUser_BillingEntityName(t *testing.T) {
	business := "Sweet Holdings LLC"
	blank := "  "

	tests := []struct {
		name string
		u    user.User
		want string
	}{
		{"individual uses legal name", user.User{LegalName: "Jane Doe", BusinessName: &business, CountryCode: "US"}, "Jane Doe"},
		{"business entity uses business name", user.User{LegalName: "Jane Doe", BusinessName: &business, BusinessEntity: true, CountryCode: "US"}, business},
		{"indian business entity uses legal name", user.User{LegalName: "Priya Rao", BusinessName: &business, BusinessEntity: true, CountryCode: "IN"}, "Priya Rao"},
		{"business entity without business name", user.User{LegalName: "Jane Doe", BusinessName: &blank, BusinessEntity: true, CountryCode: "DE"}, "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.BillingEntityName())
		})
	}
}
