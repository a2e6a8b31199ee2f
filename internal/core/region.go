package core

import (
	"errors"
	"strings"
)

// Parse-time sentinel errors, re-exported at the package root.
var (
	// ErrUnresolvedCountry indicates no supported country matched the input.
	ErrUnresolvedCountry = errors.New("unresolved country")

	// ErrInvalidPhoneFormat indicates the number failed country validation.
	ErrInvalidPhoneFormat = errors.New("invalid phone format")
)

// PhoneValidator is a country-specific validation strategy. It receives the
// number with its "+<idd>" prefix still attached when the input was in
// international format, and the caller's required classification (nil when
// the classification should be computed from the number itself). It returns
// the normalized domestic number, the actual classification, and whether
// the number is acceptable.
type PhoneValidator func(phoneNumber string, requireMobile *bool, idd string) (normalized string, isMobile bool, ok bool)

// Country describes a supported country and its dialing rules.
// Countries are compiled-in constants looked up by id or by IDD;
// the catalog is never mutated at runtime.
type Country struct {
	// ID is the ISO 3166-1 alpha-2 code, e.g. "CN".
	ID string

	// ID3 is the ISO 3166-1 alpha-3 code, e.g. "CHN".
	ID3 string

	// NumericID is the ISO 3166-1 numeric code, e.g. "156".
	NumericID string

	// Continent is the two-letter continent code.
	Continent string

	// ExitCode is the prefix dialed domestically to place an
	// international call, e.g. "00".
	ExitCode string

	// IDD is the international direct-dial code, e.g. "86".
	IDD string

	// Currency is the ISO 4217 currency code.
	Currency string

	// Language is the primary language tag, e.g. "zh-CN".
	Language string

	// PhoneValidator is the optional country-specific validation rule.
	// Countries without one accept any number surviving the shared checks.
	PhoneValidator PhoneValidator
}

// validateCNPhone applies China's numbering rules: mobile numbers start
// with 13 or 15 and are exactly 11 digits; landline numbers carry a trunk
// zero and are 11 to 12 digits.
func validateCNPhone(phoneNumber string, requireMobile *bool, idd string) (string, bool, bool) {
	intl := strings.HasPrefix(phoneNumber, "+")
	if intl {
		phoneNumber = phoneNumber[len(idd)+1:]
	}

	mobile := strings.HasPrefix(phoneNumber, "13") || strings.HasPrefix(phoneNumber, "15")
	if requireMobile != nil && *requireMobile != mobile {
		return phoneNumber, mobile, false
	}

	if intl && !mobile {
		// Re-add the trunk zero dropped from the international form.
		phoneNumber = "0" + phoneNumber
	}

	if mobile {
		return phoneNumber, true, len(phoneNumber) == 11
	}
	if !strings.HasPrefix(phoneNumber, "0") {
		return phoneNumber, false, false
	}
	return phoneNumber, false, len(phoneNumber) >= 11 && len(phoneNumber) <= 12
}

// validateNZPhone applies New Zealand's numbering plan
// (https://www.tnzi.com/numbering-plan): all domestic numbers carry a
// leading zero, mobiles sit in the 02x range except 0240, and both
// classes are 9 to 11 digits.
func validateNZPhone(phoneNumber string, requireMobile *bool, idd string) (string, bool, bool) {
	if strings.HasPrefix(phoneNumber, "+") {
		phoneNumber = "0" + phoneNumber[len(idd)+1:]
	}

	mobile := strings.HasPrefix(phoneNumber, "02") && !strings.HasPrefix(phoneNumber, "0240")
	if requireMobile != nil && *requireMobile != mobile {
		return phoneNumber, mobile, false
	}

	return phoneNumber, mobile, len(phoneNumber) >= 9 && len(phoneNumber) <= 11
}

// countries is the supported catalog, in declaration order. Order matters:
// IDD prefix matching returns the first hit, so "+1..." resolves to US, not CA.
var countries = []Country{
	{ID: "CN", ID3: "CHN", NumericID: "156", Continent: "AS", ExitCode: "00", IDD: "86", Currency: "CNY", Language: "zh-CN", PhoneValidator: validateCNPhone},
	{ID: "HK", ID3: "HKG", NumericID: "344", Continent: "AS", ExitCode: "001", IDD: "852", Currency: "HKD", Language: "zh-HK"},
	{ID: "SG", ID3: "SGP", NumericID: "702", Continent: "AS", ExitCode: "000", IDD: "65", Currency: "SGD", Language: "zh-sg"},
	{ID: "JP", ID3: "JPN", NumericID: "392", Continent: "AS", ExitCode: "010", IDD: "81", Currency: "JPY", Language: "ja-JP"},
	{ID: "US", ID3: "USA", NumericID: "840", Continent: "NA", ExitCode: "011", IDD: "1", Currency: "USD", Language: "en-US"},
	{ID: "CA", ID3: "CAN", NumericID: "124", Continent: "NA", ExitCode: "011", IDD: "1", Currency: "USD", Language: "en-US"},
	{ID: "AU", ID3: "AUS", NumericID: "036", Continent: "OC", ExitCode: "0011", IDD: "61", Currency: "AUD", Language: "en-AU"},
	{ID: "NZ", ID3: "NZL", NumericID: "554", Continent: "OC", ExitCode: "00", IDD: "64", Currency: "NZD", Language: "en-NZ", PhoneValidator: validateNZPhone},
	{ID: "GB", ID3: "GBR", NumericID: "826", Continent: "EU", ExitCode: "00", IDD: "44", Currency: "GBP", Language: "en-GB"},
	{ID: "IE", ID3: "IRL", NumericID: "372", Continent: "EU", ExitCode: "00", IDD: "353", Currency: "IEP", Language: "en-IE"},
	{ID: "DE", ID3: "DEU", NumericID: "276", Continent: "EU", ExitCode: "00", IDD: "49", Currency: "EUR", Language: "de-DE"},
	{ID: "FR", ID3: "FRA", NumericID: "250", Continent: "EU", ExitCode: "00", IDD: "33", Currency: "EUR", Language: "fr-FR"},
}

// Countries returns the supported catalog in declaration order.
// The returned slice must not be modified.
func Countries() []Country {
	return countries
}

// GetCountry looks up a country by its two-letter code.
func GetCountry(id string) *Country {
	for i := range countries {
		if countries[i].ID == id {
			return &countries[i]
		}
	}
	return nil
}

// GetCountryByIDD looks up a country by international direct-dial code,
// returning the first match in declaration order.
func GetCountryByIDD(idd string) *Country {
	for i := range countries {
		if countries[i].IDD == idd {
			return &countries[i]
		}
	}
	return nil
}

// matchCountryByPrefix resolves a "+"-prefixed number to the first country
// whose IDD is a prefix of the digits following the plus sign.
func matchCountryByPrefix(phoneNumber string) *Country {
	for i := range countries {
		if strings.HasPrefix(phoneNumber, "+"+countries[i].IDD) {
			return &countries[i]
		}
	}
	return nil
}

// Phone is a country-validated phone number. Construct via CreatePhone or
// Country.FormatPhone; never build one by hand. Phone is comparable: two
// phones are equal when all three fields match, which drives deduplication.
type Phone struct {
	// PhoneNumber is the normalized domestic number, digits only.
	PhoneNumber string

	// IsMobile reports whether the number is classified as mobile.
	IsMobile bool

	// CountryID is the two-letter code of the owning country.
	CountryID string
}

// ToInternationalFormat renders the number for international dialing:
// the exit code (default "+"), the country's IDD, then the number with
// its trunk zero removed.
func (p Phone) ToInternationalFormat(exitCode ...string) string {
	exit := "+"
	if len(exitCode) > 0 {
		exit = exitCode[0]
	}

	idd := ""
	if country := GetCountry(p.CountryID); country != nil {
		idd = country.IDD
	}

	return exit + idd + strings.TrimLeft(p.PhoneNumber, "0")
}

// FormatPhone validates and normalizes a raw number against this country.
// requireMobile, when given, rejects numbers whose computed classification
// disagrees with it.
func (c *Country) FormatPhone(phoneNumber string, requireMobile ...bool) (*Phone, error) {
	var required *bool
	if len(requireMobile) > 0 {
		required = &requireMobile[0]
	}

	normalized, mobile, err := c.isValid(phoneNumber, required)
	if err != nil {
		return nil, err
	}

	return &Phone{PhoneNumber: normalized, IsMobile: mobile, CountryID: c.ID}, nil
}

// isValid applies the shared checks (minimum length, character stripping,
// IDD prefix) then delegates to the country's validator when one exists.
func (c *Country) isValid(phoneNumber string, requireMobile *bool) (string, bool, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)

	// All phone numbers are at least 7 characters long.
	if len(phoneNumber) < 7 {
		return "", false, ErrInvalidPhoneFormat
	}

	// Keep digits and the leading plus only.
	var b strings.Builder
	for _, r := range phoneNumber {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	phoneNumber = b.String()

	if strings.HasPrefix(phoneNumber, "+") && !strings.HasPrefix(phoneNumber, "+"+c.IDD) {
		// Wrong country code.
		return "", false, ErrInvalidPhoneFormat
	}

	if c.PhoneValidator != nil {
		normalized, mobile, ok := c.PhoneValidator(phoneNumber, requireMobile, c.IDD)
		if !ok {
			return "", false, ErrInvalidPhoneFormat
		}
		return normalized, mobile, nil
	}

	// No custom rule: strip the international prefix and take the caller's
	// classification, defaulting to landline.
	phoneNumber = strings.TrimPrefix(phoneNumber, "+"+c.IDD)
	mobile := false
	if requireMobile != nil {
		mobile = *requireMobile
	}
	return phoneNumber, mobile, nil
}

// CreatePhone parses a raw number into a Phone. Without a default country
// the input must be in international "+" format; a "+" prefix always wins
// over the default country.
func CreatePhone(phoneNumber string, defaultCountry ...string) (*Phone, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)

	var country *Country
	switch {
	case len(defaultCountry) == 0 || defaultCountry[0] == "":
		if !strings.HasPrefix(phoneNumber, "+") {
			return nil, ErrUnresolvedCountry
		}
		country = matchCountryByPrefix(phoneNumber)
	case strings.HasPrefix(phoneNumber, "+"):
		country = matchCountryByPrefix(phoneNumber)
	default:
		country = GetCountry(defaultCountry[0])
	}

	if country == nil {
		return nil, ErrUnresolvedCountry
	}

	return country.FormatPhone(phoneNumber)
}

// CreatePhones parses a batch of raw numbers, stopping at the first entry
// that fails to parse: the invalid entry and everything after it are
// dropped. Callers that need per-entry errors should call CreatePhone.
func CreatePhones(phoneNumbers []string, defaultCountry ...string) []Phone {
	phones := make([]Phone, 0, len(phoneNumbers))
	for _, n := range phoneNumbers {
		phone, err := CreatePhone(n, defaultCountry...)
		if err != nil {
			break
		}
		phones = append(phones, *phone)
	}
	return phones
}

// UniquePhones removes duplicates, keeping the first occurrence of each
// phone in order.
func UniquePhones(phones []Phone) []Phone {
	seen := make(map[Phone]struct{}, len(phones))
	unique := make([]Phone, 0, len(phones))
	for _, p := range phones {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
