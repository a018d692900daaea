package payment

import "strings"

const customDelimiter = "|"

// EncodeCustom packs the purchase context into the provider's custom field.
// Fields containing the delimiter are rejected up front so the encoded value
// always decodes back to the original pair.
func EncodeCustom(username, productName string) (string, error) {
	if strings.Contains(username, customDelimiter) || strings.Contains(productName, customDelimiter) {
		return "", ErrReservedDelimiter
	}
	return username + customDelimiter + productName, nil
}

// DecodeCustom splits the custom field on the first delimiter. Input without
// one, or with an empty side, is treated as a data-integrity failure rather
// than a crash.
func DecodeCustom(custom string) (username, productName string, err error) {
	username, productName, found := strings.Cut(custom, customDelimiter)
	if !found || username == "" || productName == "" {
		return "", "", ErrMalformedCustomData
	}
	return username, productName, nil
}
