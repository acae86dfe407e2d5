package user

import (
	"testing"

	"justfood/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddressRequest() models.AddressRequest {
	return models.AddressRequest{
		Label:   "Work",
		Line1:   "4th Floor, Prestige Tower",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560025",
		Phone:   "+919812345678",
	}
}

func TestValidateAddress(t *testing.T) {
	require.NoError(t, validateAddress(validAddressRequest()))

	tests := []struct {
		name   string
		mutate func(*models.AddressRequest)
	}{
		{"missing line1", func(r *models.AddressRequest) { r.Line1 = "" }},
		{"missing city", func(r *models.AddressRequest) { r.City = "" }},
		{"missing state", func(r *models.AddressRequest) { r.State = "" }},
		{"missing pincode", func(r *models.AddressRequest) { r.Pincode = "" }},
		{"missing phone", func(r *models.AddressRequest) { r.Phone = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validAddressRequest()
			tc.mutate(&req)
			assert.ErrorIs(t, validateAddress(req), ErrInvalidAddress)
		})
	}
}

func TestValidateAddressLabelAndLine2Optional(t *testing.T) {
	req := validAddressRequest()
	req.Label = ""
	req.Line2 = ""
	assert.NoError(t, validateAddress(req))
}
