package checkout

import (
	"strings"

	"github.com/yashrajoria/storefront/common/validation"
	"github.com/yashrajoria/storefront/models"
)

var formValidator = validation.New()

func normalize(data models.PaymentData) models.PaymentData {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.TrimSpace(data.Email)
	data.Phone = strings.TrimSpace(data.Phone)
	data.Address = strings.TrimSpace(data.Address)
	data.PaymentMethod = models.PaymentMethod(strings.TrimSpace(string(data.PaymentMethod)))
	return data
}

// Validate checks the checkout form for the given delivery method.
// The address is only required when the method delivers to one.
func Validate(data models.PaymentData, method models.DeliveryMethod) error {
	data = normalize(data)
	verr := formValidator.Struct(data)
	if method.RequiresAddress() && data.Address == "" {
		verr.Add("address", "is required")
	}
	return verr.OrNil()
}
