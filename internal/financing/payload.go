package financing

// Wire field names for the provider's transaction-initiation request.
const (
	FieldAmount         = "amount"
	FieldCurrency       = "currency"
	FieldOrderReference = "order_reference"
	FieldSuccessURL     = "success_url"
	FieldFailureURL     = "failure_url"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldEmail          = "email"
	FieldMobile         = "mobile"
	FieldVehicleReg     = "vehicle_reg"
	FieldFlatNumber     = "flat_number"
	FieldBuildingName   = "building_name"
	FieldBuildingNumber = "building_number"
	FieldStreet         = "street"
	FieldTown           = "town"
	FieldCounty         = "county"
	FieldPostcode       = "postcode"
	FieldCountry        = "country"
	FieldProductID      = "product_id"
	FieldSendSMS        = "send_sms"
	FieldSendEmail      = "send_email"

	// Fields the provider defines as outside the signed scope.
	FieldAPIKey             = "api_key"
	FieldSignature          = "signature"
	FieldProductDescription = "product_description"
	FieldPreferredMethod    = "preferred_payment_method"
	FieldAdditionalData     = "additional_data"
)

// Payload is the ephemeral view over one transaction used to build a
// single signed provider request. It is derived, never persisted.
type Payload struct {
	Amount         string // pre-formatted with two decimal places
	Currency       string
	OrderReference string
	SuccessURL     string
	FailureURL     string

	FirstName string
	LastName  string
	Email     string
	Mobile    string

	VehicleReg string

	FlatNumber     string
	BuildingName   string
	BuildingNumber string
	Street         string
	Town           string
	County         string
	Postcode       string
	Country        string

	ProductID string
	SendSMS   bool
	SendEmail bool

	// Convenience fields sent with the request but excluded from signing.
	ProductDescription string
	PreferredMethod    string
	AdditionalData     map[string]any
}

// SignedFields returns the flat field map covered by the signature.
func (p Payload) SignedFields() map[string]any {
	return map[string]any{
		FieldAmount:         p.Amount,
		FieldCurrency:       p.Currency,
		FieldOrderReference: p.OrderReference,
		FieldSuccessURL:     p.SuccessURL,
		FieldFailureURL:     p.FailureURL,
		FieldFirstName:      p.FirstName,
		FieldLastName:       p.LastName,
		FieldEmail:          p.Email,
		FieldMobile:         p.Mobile,
		FieldVehicleReg:     p.VehicleReg,
		FieldFlatNumber:     p.FlatNumber,
		FieldBuildingName:   p.BuildingName,
		FieldBuildingNumber: p.BuildingNumber,
		FieldStreet:         p.Street,
		FieldTown:           p.Town,
		FieldCounty:         p.County,
		FieldPostcode:       p.Postcode,
		FieldCountry:        p.Country,
		FieldProductID:      p.ProductID,
		FieldSendSMS:        p.SendSMS,
		FieldSendEmail:      p.SendEmail,
	}
}

// RequestFields returns the full outbound field set: the signed fields
// plus the excluded convenience fields, the auth key and the signature.
func (p Payload) RequestFields(apiKey, signature string) map[string]any {
	fields := p.SignedFields()
	fields[FieldAPIKey] = apiKey
	fields[FieldSignature] = signature
	if p.ProductDescription != "" {
		fields[FieldProductDescription] = p.ProductDescription
	}
	if p.PreferredMethod != "" {
		fields[FieldPreferredMethod] = p.PreferredMethod
	}
	if len(p.AdditionalData) > 0 {
		fields[FieldAdditionalData] = p.AdditionalData
	}
	return fields
}
